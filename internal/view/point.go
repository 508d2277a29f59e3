package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/trip/internal/model"
)

// KeyHandler is a node that reacts to key presses while focused.
type KeyHandler interface {
	HandleKey(msg tea.KeyMsg) tea.Cmd
}

// PointParams builds a read-only point row.
type PointParams struct {
	Point       model.Point
	Offers      []model.Offer // offers valid for Point.Type
	Destination model.Destination

	OnEditClick     func()
	OnFavoriteClick func()
	OnSubmit        func(update *model.Point)
}

type pointKeyMap struct {
	Edit     key.Binding
	Favorite key.Binding
	Rollup   key.Binding
}

var pointKeys = pointKeyMap{
	Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("e", "edit")),
	Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	Rollup:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "roll up")),
}

// PointHelp lists the bindings a point row answers to.
func PointHelp() []key.Binding {
	return []key.Binding{pointKeys.Edit, pointKeys.Favorite}
}

// PointView is the read-only row of a point.
type PointView struct {
	p PointParams
}

func NewPointView(p PointParams) *PointView {
	return &PointView{p: p}
}

func (v *PointView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, pointKeys.Edit):
		if v.p.OnEditClick != nil {
			v.p.OnEditClick()
		}
	case key.Matches(msg, pointKeys.Favorite):
		if v.p.OnFavoriteClick != nil {
			v.p.OnFavoriteClick()
		}
	case key.Matches(msg, pointKeys.Rollup):
		if v.p.OnSubmit != nil {
			v.p.OnSubmit(nil)
		}
	}
	return nil
}

func (v *PointView) View() string {
	pt := v.p.Point
	star := mutedStyle.Render(starOff)
	if pt.IsFavorite {
		star = favoriteStyle.Render(starOn)
	}

	name := v.p.Destination.Name
	if name == "" {
		name = "?"
	}

	line := fmt.Sprintf("%s  %s %s  %s-%s (%s)  %s %s",
		mutedStyle.Render(pt.Date.Start.Format(dayLayout)),
		titleStyle.Render(capitalize(pt.Type)),
		accentStyle.Render(name),
		pt.Date.Start.Format(clockLayout),
		pt.Date.End.Format(clockLayout),
		formatDuration(pt.Date.Duration()),
		priceStyle.Render(fmt.Sprintf("€ %d", pt.BasePrice)),
		star,
	)

	selected := selectedOffers(v.p.Offers, pt.Offers)
	if len(selected) == 0 {
		return line
	}
	offers := make([]string, 0, len(selected))
	for _, o := range selected {
		offers = append(offers, fmt.Sprintf("+ %s € %d", o.Title, o.Price))
	}
	return line + "\n" + mutedStyle.Render("    "+strings.Join(offers, "  "))
}

func selectedOffers(offers []model.Offer, ids []string) []model.Offer {
	var out []model.Offer
	for _, o := range offers {
		for _, id := range ids {
			if o.ID == id {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
