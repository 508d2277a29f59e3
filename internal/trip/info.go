package trip

import (
	"cmp"
	"slices"
	"strings"

	"github.com/idilsaglam/trip/internal/model"
)

// SortMode orders the itinerary.
type SortMode int

const (
	SortDay SortMode = iota
	SortTime
	SortPrice
	sortModeCount
)

func (s SortMode) String() string {
	switch s {
	case SortTime:
		return "time"
	case SortPrice:
		return "price"
	}
	return "day"
}

// SortPoints orders points in place. Day is ascending by start; time and
// price put the longest and the most expensive first.
func SortPoints(points []model.Point, mode SortMode) {
	slices.SortStableFunc(points, func(a, b model.Point) int {
		switch mode {
		case SortTime:
			return cmp.Compare(b.Date.Duration(), a.Date.Duration())
		case SortPrice:
			return cmp.Compare(b.BasePrice, a.BasePrice)
		}
		return a.Date.Start.Compare(b.Date.Start)
	})
}

// TotalCost sums base prices and the prices of selected offers.
func TotalCost(points []model.Point, offers model.OfferCatalog) int {
	total := 0
	for _, p := range points {
		total += p.BasePrice
		for _, o := range offers.Selected(p.Type, p.Offers) {
			total += o.Price
		}
	}
	return total
}

// Route names the destinations in travel order, collapsing the middle
// when there are more than three.
func Route(points []model.Point, destinations model.DestinationCatalog) string {
	byDay := slices.Clone(points)
	SortPoints(byDay, SortDay)

	var names []string
	for _, p := range byDay {
		d, ok := destinations.ByID(p.Destination)
		if !ok {
			continue
		}
		if len(names) > 0 && names[len(names)-1] == d.Name {
			continue
		}
		names = append(names, d.Name)
	}
	if len(names) > 3 {
		names = []string{names[0], "...", names[len(names)-1]}
	}
	return strings.Join(names, " — ")
}

// Dates spans the first start and the last end.
func Dates(points []model.Point) string {
	if len(points) == 0 {
		return ""
	}
	first, last := points[0].Date.Start, points[0].Date.End
	for _, p := range points[1:] {
		if p.Date.Start.Before(first) {
			first = p.Date.Start
		}
		if p.Date.End.After(last) {
			last = p.Date.End
		}
	}
	const layout = "Jan 02"
	return first.Format(layout) + " — " + last.Format(layout)
}
