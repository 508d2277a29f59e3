package model

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)
	base := Point{
		ID:          "1",
		Type:        "taxi",
		BasePrice:   100,
		Date:        DateRange{Start: t0, End: t1},
		Destination: "5",
		Offers:      []string{"o1"},
	}

	tests := []struct {
		name   string
		mutate func(p *Point)
		want   UpdateType
	}{
		{name: "unchanged", mutate: func(p *Point) {}, want: UpdateMinor},
		{name: "price", mutate: func(p *Point) { p.BasePrice = 101 }, want: UpdateMajor},
		{name: "start date", mutate: func(p *Point) { p.Date.Start = t0.Add(time.Minute) }, want: UpdateMajor},
		{name: "type", mutate: func(p *Point) { p.Type = "bus" }, want: UpdateMajor},
		{name: "favorite", mutate: func(p *Point) { p.IsFavorite = true }, want: UpdateMinor},
		{name: "offers", mutate: func(p *Point) { p.Offers = nil }, want: UpdateMinor},
		{name: "destination", mutate: func(p *Point) { p.Destination = "6" }, want: UpdateMinor},
		{name: "end date", mutate: func(p *Point) { p.Date.End = t1.Add(time.Hour) }, want: UpdateMinor},
		{name: "same instant other zone", mutate: func(p *Point) { p.Date.Start = t0.In(time.FixedZone("X", 3600)) }, want: UpdateMinor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := base.Clone()
			tt.mutate(&after)
			if got := Classify(base, after); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPointClone(t *testing.T) {
	p := Point{ID: "1", Offers: []string{"a", "b"}}
	c := p.Clone()
	c.Offers[0] = "z"
	if p.Offers[0] != "a" {
		t.Fatalf("expected original offers untouched, got %v", p.Offers)
	}
}

func TestPointToggleOffer(t *testing.T) {
	p := Point{Offers: []string{"a"}}
	p.ToggleOffer("b")
	if !p.HasOffer("b") {
		t.Fatalf("expected b selected, got %v", p.Offers)
	}
	p.ToggleOffer("a")
	if p.HasOffer("a") || len(p.Offers) != 1 {
		t.Fatalf("expected only b selected, got %v", p.Offers)
	}
}

func TestDestinationCatalogByID(t *testing.T) {
	c := DestinationCatalog{{ID: "5", Name: "Geneva"}, {ID: "6", Name: "Chamonix"}}
	d, ok := c.ByID("6")
	if !ok || d.Name != "Chamonix" {
		t.Fatalf("expected Chamonix, got %+v (ok=%v)", d, ok)
	}
	if _, ok := c.ByID("7"); ok {
		t.Fatalf("expected unknown id to miss")
	}
}

func TestOfferCatalogSelected(t *testing.T) {
	c := OfferCatalog{"taxi": {{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	got := c.Selected("taxi", []string{"c", "a"})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("expected [a c] in catalog order, got %+v", got)
	}
	if c.ForType("bus") != nil {
		t.Fatalf("expected no offers for bus")
	}
}
