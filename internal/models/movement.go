package models

import "time"

// Movement types recorded in the inventory ledger.
const (
	MovementReceive = "receive"
	MovementAdjust  = "adjust"
	MovementSet     = "set"
)

// Movement is one entry of the append-only stock ledger. DeltaQty is the
// signed change applied by the event and ResultingQty the product's stock
// level immediately after it, so history can be read without replaying
// from zero.
type Movement struct {
	ID           int       `json:"id"`
	ProductID    int       `json:"product_id"`
	Type         string    `json:"type"`
	DeltaQty     int       `json:"delta_qty"`
	ResultingQty int       `json:"resulting_qty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
