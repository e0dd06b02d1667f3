package http

import (
	"encoding/json"
	"net/http"
)

func writeStatic(w http.ResponseWriter, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
