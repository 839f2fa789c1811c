package models

import "time"

// Material is an inventory item held somewhere in storage. StorageID is nil
// while the material is unassigned.
type Material struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	StorageID *int      `json:"storage_id,omitempty" db:"storage_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Unit      string    `json:"unit" db:"unit"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type MaterialFilters struct {
	Categories []string `form:"categories" json:"categories"`
	StorageID  *int     `form:"storageId" json:"storageId"`
	Search     string   `form:"search" json:"search"`
}

type MaterialPage struct {
	Data     []Material `json:"data"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// ImportRowError records a single rejected CSV row; the import continues past it.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}
