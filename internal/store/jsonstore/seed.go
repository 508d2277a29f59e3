package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/trip/internal/model"
)

// Seed writes a small demo itinerary starting at from and returns it.
func (s *Store) Seed(from time.Time) (Document, error) {
	doc := DemoDocument(from)
	if err := s.Save(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// DemoDocument builds the demo itinerary with fresh point ids.
func DemoDocument(from time.Time) Document {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	at := func(d, h, m int) time.Time { return day.AddDate(0, 0, d).Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	offers := model.OfferCatalog{
		"taxi": {
			{ID: "taxi-business", Title: "Upgrade to a business class", Price: 120},
			{ID: "taxi-radio", Title: "Choose the radio station", Price: 60},
		},
		"bus":    {{ID: "bus-seat", Title: "Choose seats", Price: 5}},
		"train":  {{ID: "train-meal", Title: "Add meal", Price: 15}, {ID: "train-comfort", Title: "Switch to comfort", Price: 80}},
		"flight": {{ID: "flight-luggage", Title: "Add luggage", Price: 50}, {ID: "flight-seat", Title: "Choose seats", Price: 5}},
		"check-in": {
			{ID: "checkin-breakfast", Title: "Add breakfast", Price: 50},
		},
		"sightseeing": {{ID: "sight-guide", Title: "Book a guide", Price: 40}},
		"restaurant":  {{ID: "rest-table", Title: "Reserve a table", Price: 10}},
	}
	destinations := model.DestinationCatalog{
		{ID: "geneva", Name: "Geneva", Description: "Geneva is a city in Switzerland that lies at the southern tip of Lake Geneva.",
			Pictures: []model.Picture{{Src: "img/geneva-1.jpg", Description: "Jet d'Eau"}}},
		{ID: "chamonix", Name: "Chamonix", Description: "Chamonix-Mont-Blanc is a resort area near the junction of France, Switzerland and Italy.",
			Pictures: []model.Picture{{Src: "img/chamonix-1.jpg", Description: "Aiguille du Midi"}, {Src: "img/chamonix-2.jpg", Description: "Mer de Glace"}}},
		{ID: "amsterdam", Name: "Amsterdam", Description: "Amsterdam is the capital of the Netherlands, known for its canals."},
	}
	points := []model.Point{
		{ID: uuid.NewString(), Type: "flight", BasePrice: 420, Date: model.DateRange{Start: at(0, 8, 30), End: at(0, 10, 15)}, Destination: "geneva", Offers: []string{"flight-luggage"}},
		{ID: uuid.NewString(), Type: "taxi", BasePrice: 60, Date: model.DateRange{Start: at(0, 10, 40), End: at(0, 11, 10)}, Destination: "geneva"},
		{ID: uuid.NewString(), Type: "check-in", BasePrice: 600, Date: model.DateRange{Start: at(0, 14, 0), End: at(2, 11, 0)}, Destination: "chamonix", IsFavorite: true, Offers: []string{"checkin-breakfast"}},
		{ID: uuid.NewString(), Type: "sightseeing", BasePrice: 80, Date: model.DateRange{Start: at(1, 9, 0), End: at(1, 13, 30)}, Destination: "chamonix"},
		{ID: uuid.NewString(), Type: "train", BasePrice: 140, Date: model.DateRange{Start: at(2, 12, 5), End: at(2, 19, 50)}, Destination: "amsterdam", Offers: []string{"train-meal"}},
	}
	return Document{Points: points, Offers: offers, Destinations: destinations}
}
