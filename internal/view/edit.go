package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/trip/internal/model"
)

// EditParams builds an edit form.
type EditParams struct {
	Point           model.Point
	AllOffers       model.OfferCatalog
	AllDestinations model.DestinationCatalog
	Destination     model.Destination

	// OnSubmit receives the edited point, or nil when the form is rolled up.
	OnSubmit func(update *model.Point)
	OnDelete func(p model.Point)
}

// FormState carries the in-flight flags of the form.
type FormState struct {
	IsDisabled bool
	IsSaving   bool
	IsDeleting bool
}

// FormPatch is a partial FormState; nil fields are left alone.
type FormPatch struct {
	IsDisabled *bool
	IsSaving   *bool
	IsDeleting *bool
}

// Bool is a helper for building patches.
func Bool(b bool) *bool { return &b }

func (s FormState) Apply(p FormPatch) FormState {
	if p.IsDisabled != nil {
		s.IsDisabled = *p.IsDisabled
	}
	if p.IsSaving != nil {
		s.IsSaving = *p.IsSaving
	}
	if p.IsDeleting != nil {
		s.IsDeleting = *p.IsDeleting
	}
	return s
}

type field int

const (
	fieldStart field = iota
	fieldEnd
	fieldPrice
	fieldOffers
	fieldCount
)

type editKeyMap struct {
	Submit      key.Binding
	Rollup      key.Binding
	Delete      key.Binding
	Next        key.Binding
	Prev        key.Binding
	Type        key.Binding
	Destination key.Binding
}

var editKeys = editKeyMap{
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Rollup:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "roll up")),
	Delete:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
	Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:        key.NewBinding(key.WithKeys("shift+tab")),
	Type:        key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "type")),
	Destination: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "destination")),
}

// EditHelp lists the bindings the edit form answers to.
func EditHelp() []key.Binding {
	return []key.Binding{
		editKeys.Submit, editKeys.Rollup, editKeys.Delete,
		editKeys.Next, editKeys.Type, editKeys.Destination,
	}
}

var (
	errBadStart = errors.New("start date must look like " + InputLayout)
	errBadEnd   = errors.New("end date must look like " + InputLayout)
	errEndFirst = errors.New("end date is before start date")
	errBadPrice = errors.New("price must be a positive whole number")
	errNoDest   = errors.New("pick a destination")
)

// EditView is the edit form of a point.
type EditView struct {
	p       EditParams
	working model.Point
	state   FormState
	focus   field
	err     error

	start, end, price textinput.Model

	shake shakeState
}

func NewEditView(p EditParams) *EditView {
	v := &EditView{p: p}
	v.start = newInput("dd/mm/yy hh:mm", 14)
	v.end = newInput("dd/mm/yy hh:mm", 14)
	v.price = newInput("0", 7)
	v.Reset(p.Point)
	return v
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit + 1
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Reset throws away edits and shows pt again, unlocked.
func (v *EditView) Reset(pt model.Point) {
	v.working = pt.Clone()
	v.state = FormState{}
	v.err = nil
	v.start.SetValue(formatInput(pt.Date.Start))
	v.end.SetValue(formatInput(pt.Date.End))
	v.price.SetValue(strconv.Itoa(pt.BasePrice))
	v.setFocus(fieldStart)
}

// UpdateElement applies a partial state patch.
func (v *EditView) UpdateElement(patch FormPatch) {
	v.state = v.state.Apply(patch)
}

func (v *EditView) State() FormState { return v.state }

// Working returns a copy of the point as currently edited. When an input
// does not validate, the error is returned along with the copy synced up
// to that input.
func (v *EditView) Working() (model.Point, error) {
	w := v.working.Clone()
	err := v.sync(&w)
	return w, err
}

// Err is the last validation error shown on the form.
func (v *EditView) Err() error { return v.err }

func (v *EditView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if v.state.IsDisabled {
		return nil
	}
	switch {
	case key.Matches(msg, editKeys.Submit):
		v.submit()
		return nil
	case key.Matches(msg, editKeys.Rollup):
		if v.p.OnSubmit != nil {
			v.p.OnSubmit(nil)
		}
		return nil
	case key.Matches(msg, editKeys.Delete):
		if v.p.OnDelete != nil {
			v.p.OnDelete(v.p.Point.Clone())
		}
		return nil
	case key.Matches(msg, editKeys.Next):
		v.setFocus((v.focus + 1) % fieldCount)
		return nil
	case key.Matches(msg, editKeys.Prev):
		v.setFocus((v.focus + fieldCount - 1) % fieldCount)
		return nil
	case key.Matches(msg, editKeys.Type):
		v.cycleType()
		return nil
	case key.Matches(msg, editKeys.Destination):
		v.cycleDestination()
		return nil
	}

	var cmd tea.Cmd
	switch v.focus {
	case fieldStart:
		v.start, cmd = v.start.Update(msg)
	case fieldEnd:
		v.end, cmd = v.end.Update(msg)
	case fieldPrice:
		v.price, cmd = v.price.Update(msg)
	case fieldOffers:
		v.toggleOffer(msg)
	}
	return cmd
}

func (v *EditView) submit() {
	upd := v.working.Clone()
	if err := v.sync(&upd); err != nil {
		v.err = err
		return
	}
	v.err = nil
	if v.p.OnSubmit != nil {
		v.p.OnSubmit(&upd)
	}
}

// sync copies the text inputs into pt. Inputs that still show the
// formatted value of pt are left alone so sub-minute precision survives.
func (v *EditView) sync(pt *model.Point) error {
	if s := strings.TrimSpace(v.start.Value()); s != formatInput(pt.Date.Start) {
		t, err := time.ParseInLocation(InputLayout, s, location(pt.Date.Start))
		if err != nil {
			return errBadStart
		}
		pt.Date.Start = t
	}
	if s := strings.TrimSpace(v.end.Value()); s != formatInput(pt.Date.End) {
		t, err := time.ParseInLocation(InputLayout, s, location(pt.Date.End))
		if err != nil {
			return errBadEnd
		}
		pt.Date.End = t
	}
	if pt.Date.End.Before(pt.Date.Start) {
		return errEndFirst
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.price.Value()))
	if err != nil || n <= 0 {
		return errBadPrice
	}
	pt.BasePrice = n
	if _, ok := v.p.AllDestinations.ByID(pt.Destination); !ok {
		return errNoDest
	}
	return nil
}

func location(t time.Time) *time.Location {
	if t.IsZero() {
		return time.Local
	}
	return t.Location()
}

func (v *EditView) setFocus(f field) {
	v.focus = f
	v.start.Blur()
	v.end.Blur()
	v.price.Blur()
	switch f {
	case fieldStart:
		v.start.Focus()
	case fieldEnd:
		v.end.Focus()
	case fieldPrice:
		v.price.Focus()
	}
}

// cycleType moves to the next point type. Selected offers belong to the
// old type and are dropped.
func (v *EditView) cycleType() {
	next := 0
	for i, t := range model.PointTypes {
		if t == v.working.Type {
			next = (i + 1) % len(model.PointTypes)
			break
		}
	}
	v.working.Type = model.PointTypes[next]
	v.working.Offers = nil
}

func (v *EditView) cycleDestination() {
	if len(v.p.AllDestinations) == 0 {
		return
	}
	i := v.p.AllDestinations.IndexOf(v.working.Destination)
	v.working.Destination = v.p.AllDestinations[(i+1)%len(v.p.AllDestinations)].ID
}

func (v *EditView) toggleOffer(msg tea.KeyMsg) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return
	}
	offers := v.p.AllOffers.ForType(v.working.Type)
	i := int(r - '1')
	if i >= len(offers) {
		return
	}
	v.working.ToggleOffer(offers[i].ID)
}

func (v *EditView) View() string {
	var b strings.Builder

	dest, _ := v.p.AllDestinations.ByID(v.working.Destination)
	fmt.Fprintf(&b, "%s  %s\n",
		titleStyle.Render(capitalize(v.working.Type)),
		accentStyle.Render(orDash(dest.Name)))

	fmt.Fprintf(&b, "%s %s  %s %s\n",
		v.label(fieldStart, "From"), v.start.View(),
		v.label(fieldEnd, "To"), v.end.View())
	fmt.Fprintf(&b, "%s € %s\n", v.label(fieldPrice, "Price"), v.price.View())

	offers := v.p.AllOffers.ForType(v.working.Type)
	if len(offers) > 0 {
		b.WriteString(v.label(fieldOffers, "Offers") + "\n")
		for i, o := range offers {
			box := "[ ]"
			if v.working.HasOffer(o.ID) {
				box = "[x]"
			}
			fmt.Fprintf(&b, "  %d %s %s € %d\n", i+1, box, o.Title, o.Price)
		}
	}

	if dest.Description != "" {
		b.WriteString(mutedStyle.Render(dest.Description) + "\n")
	}
	if n := len(dest.Pictures); n > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d pictures", n)) + "\n")
	}

	switch {
	case v.state.IsSaving:
		b.WriteString(mutedStyle.Render("Saving..."))
	case v.state.IsDeleting:
		b.WriteString(mutedStyle.Render("Deleting..."))
	case v.err != nil:
		b.WriteString(errorStyle.Render(v.err.Error()))
	default:
		b.WriteString(mutedStyle.Render("enter save · ctrl+d delete · esc cancel"))
	}

	style := formStyle
	if v.state.IsDisabled {
		style = disabledFormStyle
	}
	return style.MarginLeft(v.shake.offset()).Render(b.String())
}

func (v *EditView) label(f field, s string) string {
	if v.focus == f && !v.state.IsDisabled {
		return focusStyle.Render(s)
	}
	return mutedStyle.Render(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
