package handlers

import (
	"log"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for admin view
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /api/metrics/dashboard [get]
func (h *Handler) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := h.metrics.GetDashboardMetrics(r.Context())
	if err != nil {
		log.Printf("could not fetch dashboard metrics: %v", err)
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
