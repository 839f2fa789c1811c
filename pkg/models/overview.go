package models

import "time"

// LowSpaceEntry ranks a location by how little free space it has left.
type LowSpaceEntry struct {
	StorageID   int    `json:"storage_id"`
	Name        string `json:"name"`
	Utilization int    `json:"utilization"`
}

type Overview struct {
	TotalCapacity         int             `json:"total_capacity"`
	TotalUtilized         int             `json:"total_utilized"`
	UtilizationPercentage int             `json:"utilization_percentage"`
	ItemBreakdown         map[string]int  `json:"item_breakdown"`
	LowSpace              []LowSpaceEntry `json:"low_space"`
	LastUpdated           time.Time       `json:"last_updated"`
}
