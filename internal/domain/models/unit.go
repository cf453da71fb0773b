package models

import "fmt"

// PriceUnit is the quantity a price refers to.
type PriceUnit string

const (
	UnitPiece  PriceUnit = "piece"
	UnitKg     PriceUnit = "kg"
	UnitHalfKg PriceUnit = "half_kg"
	UnitPound  PriceUnit = "pound"
	UnitDozen  PriceUnit = "dozen"
	UnitBox    PriceUnit = "box"
	UnitSlice  PriceUnit = "slice"
	UnitPack   PriceUnit = "pack"
)

var priceUnits = []PriceUnit{
	UnitPiece, UnitKg, UnitHalfKg, UnitPound, UnitDozen, UnitBox, UnitSlice, UnitPack,
}

func PriceUnits() []PriceUnit {
	return append([]PriceUnit(nil), priceUnits...)
}

func (u PriceUnit) Valid() bool {
	for _, v := range priceUnits {
		if u == v {
			return true
		}
	}
	return false
}

// ParsePriceUnit returns UnitPiece for an empty string.
func ParsePriceUnit(s string) (PriceUnit, error) {
	if s == "" {
		return UnitPiece, nil
	}

	u := PriceUnit(s)
	if !u.Valid() {
		return "", fmt.Errorf("invalid unit '%s', must be one of: %v", s, priceUnits)
	}

	return u, nil
}
