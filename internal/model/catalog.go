package model

// Offer is a purchasable add-on for a point type.
type Offer struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

// OfferCatalog maps a point type to the offers valid for it.
type OfferCatalog map[string][]Offer

// ForType returns the offers for typ, nil when the type has none.
func (c OfferCatalog) ForType(typ string) []Offer {
	return c[typ]
}

// Selected returns the offers of typ whose ids appear in ids, in catalog order.
func (c OfferCatalog) Selected(typ string, ids []string) []Offer {
	var out []Offer
	for _, o := range c[typ] {
		for _, id := range ids {
			if o.ID == id {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// Picture illustrates a destination.
type Picture struct {
	Src         string `json:"src"`
	Description string `json:"description"`
}

// Destination is a place a point can lead to.
type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Pictures    []Picture `json:"pictures"`
}

// DestinationCatalog is the ordered set of known destinations.
type DestinationCatalog []Destination

// ByID resolves a destination reference.
func (c DestinationCatalog) ByID(id string) (Destination, bool) {
	for _, d := range c {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// IndexOf returns the position of id in the catalog, or -1.
func (c DestinationCatalog) IndexOf(id string) int {
	for i, d := range c {
		if d.ID == id {
			return i
		}
	}
	return -1
}
