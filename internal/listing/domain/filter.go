package domain

import "strconv"

// FilterAll is the wildcard value for the city, type and rooms selectors.
const FilterAll = "all"

// RoomsFourPlus matches any listing with 4 or more rooms.
const RoomsFourPlus = "4+"

// Criteria is the ephemeral, UI-held filter state. It has no identity and is
// recomputed per render; it is never persisted.
type Criteria struct {
	Query    string
	City     string
	Type     string
	Rooms    string
	PriceMin float64
	PriceMax float64
}

// DefaultCriteria mirrors the initial filter state of the web UI.
func DefaultCriteria() Criteria {
	return Criteria{
		City:     FilterAll,
		Type:     FilterAll,
		Rooms:    FilterAll,
		PriceMin: 10,
		PriceMax: 200,
	}
}

// MatchRooms reports whether a room count satisfies the rooms selector.
func (c Criteria) MatchRooms(rooms int) bool {
	switch c.Rooms {
	case FilterAll, "":
		return true
	case RoomsFourPlus:
		return rooms >= 4
	default:
		n, err := strconv.Atoi(c.Rooms)
		if err != nil {
			return false
		}
		return rooms == n
	}
}

// MatchPrice reports inclusive range membership.
func (c Criteria) MatchPrice(price float64) bool {
	return price >= c.PriceMin && price <= c.PriceMax
}
