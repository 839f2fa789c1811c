package models

import (
	"encoding/json"
	"time"
)

type AllocationLogEntry struct {
	ID            int                    `json:"id" db:"id"`
	Action        string                 `json:"action" db:"action"` // assign, remove, move, move_failed
	ItemID        int                    `json:"item_id" db:"item_id"`
	FromStorageID *int                   `json:"from_storage_id,omitempty" db:"from_storage_id"`
	ToStorageID   *int                   `json:"to_storage_id,omitempty" db:"to_storage_id"`
	Actor         string                 `json:"actor" db:"actor"`
	DataRaw       string                 `json:"-" db:"data"`
	Data          map[string]interface{} `json:"data" db:"-"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
}

func (e *AllocationLogEntry) LoadFromDB() {
	if e.DataRaw != "" {
		_ = json.Unmarshal([]byte(e.DataRaw), &e.Data)
	}
}
