package models

import "encoding/json"

// Position is an integer grid coordinate inside a location.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RawPosition is the wire form of a position as the persistence boundary
// returns it. Older rows use {row, col}, newer ones {x, y}; both decode here
// and are converted in one place (cellindex.NormalizePosition).
type RawPosition struct {
	X   *int `json:"x,omitempty"`
	Y   *int `json:"y,omitempty"`
	Row *int `json:"row,omitempty"`
	Col *int `json:"col,omitempty"`
}

type Cell struct {
	StorageID int      `json:"storage_id" db:"storage_id"`
	Position  Position `json:"position"`
	Occupied  bool     `json:"occupied" db:"occupied"`
	ItemID    *int     `json:"item_id,omitempty" db:"item_id"`
	ItemType  string   `json:"item_type" db:"item_type"`
}

// CellRecord is the flat row shape of a cell at the persistence boundary,
// position still in its raw encoding.
type CellRecord struct {
	StorageID   int    `db:"storage_id"`
	PositionRaw []byte `db:"position"`
	Occupied    bool   `db:"occupied"`
	ItemID      *int   `db:"item_id"`
	ItemType    string `db:"item_type"`
}

func (c *CellRecord) DecodePosition() (RawPosition, error) {
	var raw RawPosition
	if err := json.Unmarshal(c.PositionRaw, &raw); err != nil {
		return RawPosition{}, err
	}
	return raw, nil
}
