// Package trip is the itinerary screen. It owns one presenter per point,
// keeps at most one of them editing, and carries their updates to the
// repository and the results back.
package trip

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/trip/internal/keys"
	"github.com/idilsaglam/trip/internal/model"
	"github.com/idilsaglam/trip/internal/presenter"
	"github.com/idilsaglam/trip/internal/render"
	"github.com/idilsaglam/trip/internal/view"
)

// Repository persists point changes.
type Repository interface {
	UpdatePoint(ctx context.Context, p model.Point) (model.Point, error)
	DeletePoint(ctx context.Context, id string) error
}

// DefaultTimeout bounds a single repository call.
const DefaultTimeout = 10 * time.Second

type pointSavedMsg struct {
	point  model.Point
	update model.UpdateType
}

type pointDeletedMsg struct {
	id string
}

type operationFailedMsg struct {
	id     string
	action model.UserAction
	err    error
}

type Model struct {
	repo         Repository
	offers       model.OfferCatalog
	destinations model.DestinationCatalog
	timeout      time.Duration

	points     []model.Point // in container order
	presenters map[string]*presenter.PointPresenter
	container  *render.Container
	doc        *keys.Document

	cursor  int
	sort    SortMode
	status  string
	changed bool
	help    help.Model

	// commands queued by presenter callbacks during Update
	pending []tea.Cmd
}

type Option func(*Model)

func WithTimeout(d time.Duration) Option {
	return func(m *Model) { m.timeout = d }
}

func WithSort(s SortMode) Option {
	return func(m *Model) { m.sort = s }
}

func New(repo Repository, points []model.Point, offers model.OfferCatalog, destinations model.DestinationCatalog, opts ...Option) (*Model, error) {
	m := &Model{
		repo:         repo,
		offers:       offers,
		destinations: destinations,
		timeout:      DefaultTimeout,
		presenters:   make(map[string]*presenter.PointPresenter, len(points)),
		container:    render.NewContainer(),
		doc:          keys.NewDocument(),
		help:         help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.points = make([]model.Point, 0, len(points))
	for _, p := range points {
		m.points = append(m.points, p.Clone())
	}
	SortPoints(m.points, m.sort)

	for _, p := range m.points {
		pp, err := presenter.New(presenter.Config{
			Offers:       m.offers,
			Destinations: m.destinations,
			Container:    m.container,
			Keys:         m.doc,
			OnChange:     m.handlePointChange,
			OnModeChange: m.handleModeChange,
		})
		if err != nil {
			return nil, err
		}
		m.presenters[p.ID] = pp
		pp.Init(p)
	}
	return m, nil
}

// Points returns the itinerary in display order.
func (m *Model) Points() []model.Point {
	out := make([]model.Point, len(m.points))
	for i, p := range m.points {
		out[i] = p.Clone()
	}
	return out
}

// Changed reports whether any update or delete was persisted.
func (m *Model) Changed() bool { return m.changed }

func (m *Model) Status() string { return m.status }

func (m *Model) Cursor() int { return m.cursor }

func (m *Model) Presenter(id string) *presenter.PointPresenter { return m.presenters[id] }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case pointSavedMsg:
		m.onSaved(msg)
	case pointDeletedMsg:
		m.onDeleted(msg)
	case operationFailedMsg:
		cmd = m.onFailed(msg)
	case view.ShakeFrameMsg:
		cmd = msg.Advance()
	}
	return m, m.flush(cmd)
}

func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.pending, cmd)
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, listKeys.Kill) {
		return tea.Quit
	}
	if m.doc.Dispatch(msg) {
		return nil
	}

	if pp := m.editing(); pp != nil {
		return m.sendKey(pp.Mounted(), msg)
	}

	switch {
	case key.Matches(msg, listKeys.Quit):
		return tea.Quit
	case key.Matches(msg, listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case key.Matches(msg, listKeys.Down):
		if m.cursor < len(m.points)-1 {
			m.cursor++
		}
		return nil
	case key.Matches(msg, listKeys.Sort):
		m.setSort((m.sort + 1) % sortModeCount)
		return nil
	}
	return m.sendKey(m.container.At(m.cursor), msg)
}

func (m *Model) sendKey(n render.Node, msg tea.KeyMsg) tea.Cmd {
	if h, ok := n.(view.KeyHandler); ok {
		return h.HandleKey(msg)
	}
	return nil
}

func (m *Model) editing() *presenter.PointPresenter {
	for _, p := range m.points {
		if pp := m.presenters[p.ID]; pp.Mode() == presenter.ModeEditing {
			return pp
		}
	}
	return nil
}

// handleModeChange closes every other editor before one opens.
func (m *Model) handleModeChange() {
	for _, pp := range m.presenters {
		pp.ResetView()
	}
}

func (m *Model) handlePointChange(action model.UserAction, update model.UpdateType, p model.Point) {
	pp, ok := m.presenters[p.ID]
	if !ok {
		log.Printf("trip: %s for unknown point %s", action, p.ID)
		return
	}
	switch action {
	case model.ActionUpdatePoint:
		pp.SetSaving()
		m.status = "saving..."
		m.pending = append(m.pending, m.savePoint(p, update))
	case model.ActionDeletePoint:
		pp.SetDeleting()
		m.status = "deleting..."
		m.pending = append(m.pending, m.deletePoint(p.ID))
	}
}

func (m *Model) savePoint(p model.Point, update model.UpdateType) tea.Cmd {
	repo, timeout := m.repo, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		saved, err := repo.UpdatePoint(ctx, p)
		if err != nil {
			return operationFailedMsg{id: p.ID, action: model.ActionUpdatePoint, err: err}
		}
		return pointSavedMsg{point: saved, update: update}
	}
}

func (m *Model) deletePoint(id string) tea.Cmd {
	repo, timeout := m.repo, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := repo.DeletePoint(ctx, id); err != nil {
			return operationFailedMsg{id: id, action: model.ActionDeletePoint, err: err}
		}
		return pointDeletedMsg{id: id}
	}
}

func (m *Model) onSaved(msg pointSavedMsg) {
	i := m.indexOf(msg.point.ID)
	if i < 0 {
		return
	}
	m.points[i] = msg.point.Clone()
	m.changed = true
	m.status = "saved"
	log.Printf("trip: saved %s (%s)", msg.point.ID, msg.update)

	if msg.update == model.UpdateMajor {
		m.rebuild(msg.point.ID)
		return
	}
	m.presenters[msg.point.ID].Init(msg.point)
}

func (m *Model) onDeleted(msg pointDeletedMsg) {
	i := m.indexOf(msg.id)
	if i < 0 {
		return
	}
	m.presenters[msg.id].Destroy()
	delete(m.presenters, msg.id)
	m.points = slices.Delete(m.points, i, i+1)
	if m.cursor >= len(m.points) && m.cursor > 0 {
		m.cursor = len(m.points) - 1
	}
	m.changed = true
	m.status = "deleted"
	log.Printf("trip: deleted %s", msg.id)
}

func (m *Model) onFailed(msg operationFailedMsg) tea.Cmd {
	log.Printf("trip: %s %s failed: %v", msg.action, msg.id, msg.err)
	m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
	pp, ok := m.presenters[msg.id]
	if !ok {
		return nil
	}
	return pp.SetAborting()
}

func (m *Model) setSort(s SortMode) {
	if m.editing() != nil {
		return
	}
	m.sort = s
	var focused string
	if m.cursor < len(m.points) {
		focused = m.points[m.cursor].ID
	}
	m.rebuild(focused)
}

// rebuild re-sorts the itinerary and mounts every point again in order.
// The cursor follows the point with id focus.
func (m *Model) rebuild(focus string) {
	SortPoints(m.points, m.sort)
	for _, p := range m.points {
		m.presenters[p.ID].Destroy()
	}
	for _, p := range m.points {
		m.presenters[p.ID].Init(p)
	}
	if i := m.indexOf(focus); i >= 0 {
		m.cursor = i
	}
}

func (m *Model) indexOf(id string) int {
	return slices.IndexFunc(m.points, func(p model.Point) bool { return p.ID == id })
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	costStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func (m *Model) View() string {
	var b strings.Builder

	route := Route(m.points, m.destinations)
	if route == "" {
		route = "Trip"
	}
	fmt.Fprintf(&b, "%s  %s\n%s  %s\n\n",
		headerStyle.Render(route),
		mutedStyle.Render(Dates(m.points)),
		costStyle.Render(fmt.Sprintf("Total: € %d", TotalCost(m.points, m.offers))),
		mutedStyle.Render("sort: "+m.sort.String()),
	)

	if len(m.points) == 0 {
		b.WriteString(mutedStyle.Render("No points yet. Run `trip seed` for a demo itinerary.") + "\n")
	}
	for i, n := range m.container.Nodes() {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render(">") + " "
		}
		b.WriteString(indent(n.View(), prefix) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + mutedStyle.Render(m.status) + "\n")
	}
	bindings := listHelp()
	if m.editing() != nil {
		bindings = editHelp()
	}
	b.WriteString("\n" + m.help.ShortHelpView(bindings))
	return panelStyle.Render(b.String())
}

// indent puts prefix before the first line and aligns the rest under it.
func indent(s, prefix string) string {
	pad := strings.Repeat(" ", lipgloss.Width(prefix))
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
			continue
		}
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
