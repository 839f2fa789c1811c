package models

import "time"

// MoveRequest describes one relocation. A nil From treats the move as a
// first-time placement; a nil To treats it as a pure removal. The request is
// transient, it lives only for the duration of one engine call.
type MoveRequest struct {
	ItemID         int       `json:"item_id"`
	FromStorageID  *int      `json:"from_storage_id,omitempty"`
	FromPosition   *Position `json:"from_position,omitempty"`
	ToStorageID    *int      `json:"to_storage_id,omitempty"`
	ToPosition     *Position `json:"to_position,omitempty"`
	RequestedBy    string    `json:"requested_by"`
	RequestDate    time.Time `json:"request_date"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

type MovePhase string

const (
	MovePending  MovePhase = "pending"
	MoveRemoved  MovePhase = "removed"
	MoveAssigned MovePhase = "assigned"
	MoveFailed   MovePhase = "failed"
)

// MoveState is the recorded progress of one move, keyed by idempotency key.
// A retry consults it so neither leg can apply twice.
type MoveState struct {
	Key       string    `json:"key"`
	ItemID    int       `json:"item_id"`
	FromID    *int      `json:"from_id,omitempty"`
	ToID      *int      `json:"to_id,omitempty"`
	Phase     MovePhase `json:"phase"`
	ItemType  string    `json:"item_type,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
