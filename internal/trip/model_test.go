package trip

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/trip/internal/model"
	"github.com/idilsaglam/trip/internal/presenter"
	"github.com/idilsaglam/trip/internal/view"
)

var (
	day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	offers = model.OfferCatalog{
		"taxi": {{ID: "o1", Title: "Upgrade", Price: 50}},
		"bus":  {{ID: "o2", Title: "Seat", Price: 10}},
	}
	destinations = model.DestinationCatalog{{ID: "5", Name: "Geneva"}, {ID: "6", Name: "Chamonix"}}
)

func testPoints() []model.Point {
	return []model.Point{
		{ID: "b", Type: "bus", BasePrice: 30, Date: model.DateRange{Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)}, Destination: "6"},
		{ID: "a", Type: "taxi", BasePrice: 100, Date: model.DateRange{Start: day.Add(9 * time.Hour), End: day.Add(11 * time.Hour)}, Destination: "5", Offers: []string{"o1"}},
	}
}

type fakeRepo struct {
	updates []model.Point
	deletes []string
	err     error
}

func (r *fakeRepo) UpdatePoint(_ context.Context, p model.Point) (model.Point, error) {
	r.updates = append(r.updates, p)
	if r.err != nil {
		return model.Point{}, r.err
	}
	return p, nil
}

func (r *fakeRepo) DeletePoint(_ context.Context, id string) error {
	r.deletes = append(r.deletes, id)
	return r.err
}

func newTestModel(t *testing.T, repo *fakeRepo) *Model {
	t.Helper()
	prev := view.ShakeInterval
	view.ShakeInterval = time.Millisecond
	t.Cleanup(func() { view.ShakeInterval = prev })

	m, err := New(repo, testPoints(), offers, destinations)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return m
}

// drain runs cmd and feeds every resulting message back into m.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for steps := 0; cmd != nil; steps++ {
		if steps > 100 {
			t.Fatalf("commands did not settle")
		}
		msg := cmd()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				drain(t, m, c)
			}
			return
		case nil:
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func press(t *testing.T, m *Model, k tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(k)
	drain(t, m, cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	ctrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
	ctrlT = tea.KeyMsg{Type: tea.KeyCtrlT}
)

func TestNewSortsByDay(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	pts := m.Points()
	if pts[0].ID != "a" || pts[1].ID != "b" {
		t.Fatalf("expected [a b], got [%s %s]", pts[0].ID, pts[1].ID)
	}
	if m.container.Len() != 2 {
		t.Fatalf("expected 2 mounted rows, got %d", m.container.Len())
	}
}

func TestOnlyOneEditorOpen(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	press(t, m, enter)
	if m.Presenter("a").Mode() != presenter.ModeEditing {
		t.Fatalf("expected a editing")
	}

	// open b directly through its row, the way a mouse click would
	m.presenters["b"].Mounted().(view.KeyHandler).HandleKey(runes("e"))
	if m.Presenter("a").Mode() != presenter.ModeDefault {
		t.Fatalf("expected a closed when b opened")
	}
	if m.Presenter("b").Mode() != presenter.ModeEditing {
		t.Fatalf("expected b editing")
	}
	if m.doc.Len() != 1 {
		t.Fatalf("expected exactly one escape listener, got %d", m.doc.Len())
	}
}

func TestEscapeClosesEditor(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	press(t, m, enter)
	press(t, m, esc)
	if m.Presenter("a").Mode() != presenter.ModeDefault {
		t.Fatalf("expected editor closed")
	}
	if m.doc.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", m.doc.Len())
	}
}

func TestNavigationBlockedWhileEditing(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	press(t, m, enter)
	press(t, m, runes("j"))
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor to stay while editing, got %d", m.Cursor())
	}
	_, cmd := m.Update(runes("q"))
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("expected q to be typed into the form, not quit")
		}
	}
}

func TestFavoriteRoundTrip(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo)
	press(t, m, runes("f"))

	if len(repo.updates) != 1 || !repo.updates[0].IsFavorite {
		t.Fatalf("expected favorite saved, got %+v", repo.updates)
	}
	if !m.Points()[0].IsFavorite {
		t.Fatalf("expected stored point updated")
	}
	if m.Presenter("a").Mode() != presenter.ModeDefault {
		t.Fatalf("expected default mode throughout")
	}
	if !m.Changed() || m.Status() != "saved" {
		t.Fatalf("expected saved status, got %q", m.Status())
	}
}

func TestMajorEditClosesEditor(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo)
	press(t, m, enter)
	press(t, m, ctrlT)
	press(t, m, enter)

	if len(repo.updates) != 1 || repo.updates[0].Type != "bus" {
		t.Fatalf("expected type change saved, got %+v", repo.updates)
	}
	if m.Presenter("a").Mode() != presenter.ModeDefault {
		t.Fatalf("expected editor closed after the save was confirmed")
	}
	if m.doc.Len() != 0 {
		t.Fatalf("expected listener released, got %d", m.doc.Len())
	}
	if m.container.Len() != 2 {
		t.Fatalf("expected 2 rows after rebuild, got %d", m.container.Len())
	}
}

func TestSaveFailureKeepsEditor(t *testing.T) {
	repo := &fakeRepo{err: errors.New("disk full")}
	m := newTestModel(t, repo)
	press(t, m, enter)
	press(t, m, ctrlT)
	press(t, m, enter)

	pp := m.Presenter("a")
	if pp.Mode() != presenter.ModeEditing {
		t.Fatalf("expected editor kept open after failure")
	}
	ev := pp.Mounted().(*view.EditView)
	if s := ev.State(); s != (view.FormState{}) {
		t.Fatalf("expected form unlocked after the cue, got %+v", s)
	}
	if w, _ := ev.Working(); w.Type != "bus" {
		t.Fatalf("expected in-progress edit kept, got %s", w.Type)
	}
	if !strings.Contains(m.Status(), "disk full") {
		t.Fatalf("expected error in status, got %q", m.Status())
	}
	if m.Points()[0].Type != "taxi" {
		t.Fatalf("expected stored point unchanged")
	}
}

func TestReopenAfterEscapeDuringSave(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo)
	press(t, m, enter)
	press(t, m, ctrlT)
	_, held := m.Update(enter)

	pp := m.Presenter("a")
	if s := pp.Mounted().(*view.EditView).State(); !s.IsSaving {
		t.Fatalf("expected saving state while the save is held, got %+v", s)
	}
	press(t, m, esc)
	if pp.Mode() != presenter.ModeDefault {
		t.Fatalf("expected escape to close the editor, got %s", pp.Mode())
	}

	repo.err = errors.New("disk full")
	drain(t, m, held)
	press(t, m, enter)

	if pp.Mode() != presenter.ModeEditing {
		t.Fatalf("expected editor reopened, got %s", pp.Mode())
	}
	if s := pp.Mounted().(*view.EditView).State(); s != (view.FormState{}) {
		t.Fatalf("expected reopened form unlocked, got %+v", s)
	}
}

func TestDelete(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo)
	press(t, m, down)
	press(t, m, enter)
	press(t, m, ctrlD)

	if len(repo.deletes) != 1 || repo.deletes[0] != "b" {
		t.Fatalf("expected b deleted, got %v", repo.deletes)
	}
	if len(m.Points()) != 1 || m.container.Len() != 1 {
		t.Fatalf("expected one point left, got %d points %d rows", len(m.Points()), m.container.Len())
	}
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", m.Cursor())
	}
	if m.doc.Len() != 0 {
		t.Fatalf("expected listener released with the deleted point, got %d", m.doc.Len())
	}
}

func TestSortCycle(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	press(t, m, runes("s")) // time: a lasts 2h, b 1h
	if m.Points()[0].ID != "a" {
		t.Fatalf("expected a first by time")
	}
	press(t, m, runes("s")) // price: a 100, b 30
	if m.Points()[0].ID != "a" || m.Cursor() != 0 {
		t.Fatalf("expected a first by price with cursor on it")
	}
	if !strings.Contains(m.View(), "sort: price") {
		t.Fatalf("expected sort mode shown")
	}
}

func TestViewSummary(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	out := m.View()
	for _, want := range []string{"Geneva — Chamonix", "Mar 10 — Mar 10", "Total: € 180"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, out)
		}
	}
}
