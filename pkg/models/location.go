package models

import "time"

type LocationType string

const (
	LocationCabinet LocationType = "cabinet"
	LocationDrawer  LocationType = "drawer"
	LocationShelf   LocationType = "shelf"
	LocationRack    LocationType = "rack"
)

type Location struct {
	ID           int          `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Type         LocationType `json:"type" db:"type"`
	Section      string       `json:"section" db:"section"`
	Capacity     int          `json:"capacity" db:"capacity"`
	Utilized     int          `json:"utilized" db:"utilized"`
	Status       string       `json:"status" db:"status"`
	LastModified time.Time    `json:"last_modified" db:"last_modified"`
}

// UtilizationPercent is rounded to the nearest integer and never divides by zero.
func (l *Location) UtilizationPercent() int {
	if l.Capacity <= 0 {
		return 0
	}
	return int(float64(l.Utilized)/float64(l.Capacity)*100 + 0.5)
}

// LocationPatch carries a partial update; nil fields are left untouched.
type LocationPatch struct {
	Name     *string       `json:"name"`
	Type     *LocationType `json:"type"`
	Section  *string       `json:"section"`
	Capacity *int          `json:"capacity"`
	Utilized *int          `json:"utilized"`
	Status   *string       `json:"status"`
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type Pagination struct {
	Page     int           `form:"page" json:"page"`
	PageSize int           `form:"pageSize" json:"pageSize"`
	SortBy   string        `form:"sortBy" json:"sortBy"`
	SortDir  SortDirection `form:"sortDir" json:"sortDir"`
}

func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 25
	}
	if p.SortBy == "" {
		p.SortBy = "id"
	}
	if p.SortDir != SortDesc {
		p.SortDir = SortAsc
	}
}

// LocationFilters narrows a listing; empty slices mean no constraint.
type LocationFilters struct {
	Types    []LocationType `form:"types" json:"types"`
	Sections []string       `form:"sections" json:"sections"`
	Statuses []string       `form:"statuses" json:"statuses"`
	// Utilization percentage range, inclusive. Nil means unbounded.
	MinUtilization *int `form:"minUtilization" json:"minUtilization"`
	MaxUtilization *int `form:"maxUtilization" json:"maxUtilization"`
}

type LocationPage struct {
	Data     []Location `json:"data"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}
