package model

import (
	"slices"
	"time"
)

// DateRange is the span a point occupies on the itinerary.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End-Start, never negative.
func (d DateRange) Duration() time.Duration {
	if d.End.Before(d.Start) {
		return 0
	}
	return d.End.Sub(d.Start)
}

// Point is a single itinerary entry.
type Point struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	BasePrice   int       `json:"base_price"`
	Date        DateRange `json:"date"`
	Destination string    `json:"destination"`
	IsFavorite  bool      `json:"is_favorite"`
	Offers      []string  `json:"offers"`
}

// Clone returns a copy that shares no memory with p.
func (p Point) Clone() Point {
	c := p
	c.Offers = slices.Clone(p.Offers)
	return c
}

// HasOffer reports whether the offer id is selected.
func (p Point) HasOffer(id string) bool {
	return slices.Contains(p.Offers, id)
}

// ToggleOffer selects or deselects an offer id.
func (p *Point) ToggleOffer(id string) {
	if i := slices.Index(p.Offers, id); i >= 0 {
		p.Offers = slices.Delete(p.Offers, i, i+1)
		return
	}
	p.Offers = append(p.Offers, id)
}

// Equal compares every field, offers included in order.
func (p Point) Equal(o Point) bool {
	return p.ID == o.ID &&
		p.Type == o.Type &&
		p.BasePrice == o.BasePrice &&
		p.Date.Start.Equal(o.Date.Start) &&
		p.Date.End.Equal(o.Date.End) &&
		p.Destination == o.Destination &&
		p.IsFavorite == o.IsFavorite &&
		slices.Equal(p.Offers, o.Offers)
}

// PointTypes lists the categories a point can take, in display order.
var PointTypes = []string{
	"taxi", "bus", "train", "ship", "drive", "flight", "check-in", "sightseeing", "restaurant",
}
