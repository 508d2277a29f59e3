// Package presenter switches a single itinerary point between its
// read-only row and its edit form and turns what the user does there into
// update requests for the owning collection.
package presenter

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/trip/internal/keys"
	"github.com/idilsaglam/trip/internal/model"
	"github.com/idilsaglam/trip/internal/render"
	"github.com/idilsaglam/trip/internal/view"
)

// Mode is how a point is currently presented.
type Mode int

const (
	ModeDefault Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "default"
}

// PointComponent is the read-only row.
type PointComponent interface {
	render.Node
}

// EditComponent is the edit form.
type EditComponent interface {
	render.Node
	Reset(p model.Point)
	Shake(onComplete func()) tea.Cmd
	UpdateElement(patch view.FormPatch)
}

// KeyRegistry holds program-wide key listeners.
type KeyRegistry interface {
	AddListener(fn keys.Listener) keys.ID
	RemoveListener(id keys.ID)
}

// ChangeFunc reports a committed user action. The point is the full
// update for ActionUpdatePoint and the point being removed for
// ActionDeletePoint.
type ChangeFunc func(action model.UserAction, update model.UpdateType, p model.Point)

var (
	ErrMissingOffers       = errors.New("presenter: offer catalog is required")
	ErrMissingDestinations = errors.New("presenter: destination catalog is required")
	ErrMissingContainer    = errors.New("presenter: container is required")
	ErrMissingKeys         = errors.New("presenter: key registry is required")
	ErrMissingNotifier     = errors.New("presenter: change and mode notifiers are required")
)

type Config struct {
	Offers       model.OfferCatalog
	Destinations model.DestinationCatalog
	Container    render.Surface
	Keys         KeyRegistry
	OnChange     ChangeFunc
	OnModeChange func()

	// View constructors; nil uses the view package.
	NewPointView func(p view.PointParams) PointComponent
	NewEditView  func(p view.EditParams) EditComponent
}

func (c Config) validate() error {
	switch {
	case c.Offers == nil:
		return ErrMissingOffers
	case c.Destinations == nil:
		return ErrMissingDestinations
	case c.Container == nil:
		return ErrMissingContainer
	case c.Keys == nil:
		return ErrMissingKeys
	case c.OnChange == nil || c.OnModeChange == nil:
		return ErrMissingNotifier
	}
	return nil
}

// PointPresenter owns both nodes of one point. At most one of them is
// mounted, and the edit node is mounted exactly when the mode is Editing.
type PointPresenter struct {
	cfg Config

	point     model.Point
	pointView PointComponent
	editView  EditComponent
	mode      Mode

	escID     keys.ID
	listening bool

	// set between forwarding an edit and the owner's answer to it
	awaitingCommit bool
}

func New(cfg Config) (*PointPresenter, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("new point presenter: %w", err)
	}
	if cfg.NewPointView == nil {
		cfg.NewPointView = func(p view.PointParams) PointComponent { return view.NewPointView(p) }
	}
	if cfg.NewEditView == nil {
		cfg.NewEditView = func(p view.EditParams) EditComponent { return view.NewEditView(p) }
	}
	return &PointPresenter{cfg: cfg}, nil
}

func (pp *PointPresenter) Mode() Mode { return pp.mode }

// Point returns a copy of the last point given to Init.
func (pp *PointPresenter) Point() model.Point { return pp.point.Clone() }

func (pp *PointPresenter) ID() string { return pp.point.ID }

// Mounted is the node currently in the container, nil before Init and
// after Destroy.
func (pp *PointPresenter) Mounted() render.Node {
	switch {
	case pp.mode == ModeEditing && pp.editView != nil:
		return pp.editView
	case pp.pointView != nil:
		return pp.pointView
	}
	return nil
}

// Init builds fresh nodes for p. The first call mounts the row; later
// calls swap the fresh node in for the mounted one of the same role. If an
// edit forwarded by this presenter is still awaiting its result, Init
// confirms it and the form closes.
func (pp *PointPresenter) Init(p model.Point) {
	prevPoint, prevEdit := pp.pointView, pp.editView

	pp.point = p.Clone()
	destination, ok := pp.cfg.Destinations.ByID(p.Destination)
	if !ok {
		log.Printf("presenter: point %s: unknown destination %q", p.ID, p.Destination)
	}

	pp.pointView = pp.cfg.NewPointView(view.PointParams{
		Point:           pp.point.Clone(),
		Offers:          pp.cfg.Offers.ForType(p.Type),
		Destination:     destination,
		OnEditClick:     pp.replacePointToEdit,
		OnFavoriteClick: pp.onFavoriteClick,
		OnSubmit:        pp.onFormSubmit,
	})
	pp.editView = pp.cfg.NewEditView(view.EditParams{
		Point:           pp.point.Clone(),
		AllOffers:       pp.cfg.Offers,
		AllDestinations: pp.cfg.Destinations,
		Destination:     destination,
		OnSubmit:        pp.onFormSubmit,
		OnDelete:        pp.onDeletePoint,
	})

	if prevPoint == nil || prevEdit == nil {
		pp.cfg.Container.Render(pp.pointView)
		return
	}

	switch {
	case pp.mode == ModeDefault:
		pp.cfg.Container.Replace(pp.pointView, prevPoint)
	case pp.awaitingCommit:
		pp.cfg.Container.Replace(pp.pointView, prevEdit)
		pp.stopListening()
		pp.mode = ModeDefault
	default:
		pp.cfg.Container.Replace(pp.editView, prevEdit)
	}
	pp.awaitingCommit = false

	pp.cfg.Container.Remove(prevPoint)
	pp.cfg.Container.Remove(prevEdit)
}

// SetSaving locks the form while an update is in flight.
func (pp *PointPresenter) SetSaving() {
	if pp.mode == ModeEditing {
		pp.editView.UpdateElement(view.FormPatch{
			IsDisabled: view.Bool(true),
			IsSaving:   view.Bool(true),
		})
	}
}

// SetDeleting locks the form while a delete is in flight.
func (pp *PointPresenter) SetDeleting() {
	if pp.mode == ModeEditing {
		pp.editView.UpdateElement(view.FormPatch{
			IsDisabled: view.Bool(true),
			IsDeleting: view.Bool(true),
		})
	}
}

// SetAborting reports that the outstanding operation failed. An open form
// is unlocked once the failure cue finishes so the user can retry.
func (pp *PointPresenter) SetAborting() tea.Cmd {
	pp.awaitingCommit = false
	if pp.editView == nil {
		return nil
	}
	if pp.mode == ModeDefault {
		return pp.editView.Shake(nil)
	}

	edit := pp.editView
	return edit.Shake(func() {
		edit.UpdateElement(view.FormPatch{
			IsDisabled: view.Bool(false),
			IsSaving:   view.Bool(false),
			IsDeleting: view.Bool(false),
		})
	})
}

// ResetView closes the form, dropping unsaved edits.
func (pp *PointPresenter) ResetView() {
	if pp.mode != ModeDefault {
		pp.editView.Reset(pp.point.Clone())
		pp.replaceEditToPoint()
	}
}

// Destroy unmounts both nodes. Calling it again is harmless, and a later
// Init starts over with a fresh row.
func (pp *PointPresenter) Destroy() {
	if pp.pointView != nil {
		pp.cfg.Container.Remove(pp.pointView)
	}
	if pp.editView != nil {
		pp.cfg.Container.Remove(pp.editView)
	}
	pp.stopListening()
	pp.pointView, pp.editView = nil, nil
	pp.mode = ModeDefault
	pp.awaitingCommit = false
}

func (pp *PointPresenter) replacePointToEdit() {
	if pp.mode == ModeEditing || pp.editView == nil {
		return
	}
	pp.cfg.Container.Replace(pp.editView, pp.pointView)
	pp.startListening()
	pp.cfg.OnModeChange()
	pp.mode = ModeEditing
}

func (pp *PointPresenter) replaceEditToPoint() {
	if pp.mode != ModeEditing {
		return
	}
	pp.cfg.Container.Replace(pp.pointView, pp.editView)
	pp.editView.UpdateElement(view.FormPatch{
		IsDisabled: view.Bool(false),
		IsSaving:   view.Bool(false),
		IsDeleting: view.Bool(false),
	})
	pp.stopListening()
	pp.mode = ModeDefault
	pp.awaitingCommit = false
}

func (pp *PointPresenter) startListening() {
	if pp.listening {
		return
	}
	pp.escID = pp.cfg.Keys.AddListener(pp.onEscKeyDown)
	pp.listening = true
}

func (pp *PointPresenter) stopListening() {
	if !pp.listening {
		return
	}
	pp.cfg.Keys.RemoveListener(pp.escID)
	pp.listening = false
}

func (pp *PointPresenter) onEscKeyDown(msg tea.KeyMsg) bool {
	if !keys.IsEscape(msg) {
		return false
	}
	pp.editView.Reset(pp.point.Clone())
	pp.replaceEditToPoint()
	return true
}

func (pp *PointPresenter) onFormSubmit(update *model.Point) {
	if update == nil {
		if pp.mode == ModeEditing {
			pp.editView.Reset(pp.point.Clone())
			pp.replaceEditToPoint()
		}
		return
	}
	pp.awaitingCommit = true
	pp.cfg.OnChange(model.ActionUpdatePoint, model.Classify(pp.point, *update), update.Clone())
}

func (pp *PointPresenter) onDeletePoint(p model.Point) {
	pp.cfg.OnChange(model.ActionDeletePoint, model.UpdateMajor, p.Clone())
}

func (pp *PointPresenter) onFavoriteClick() {
	upd := pp.point.Clone()
	upd.IsFavorite = !upd.IsFavorite
	pp.cfg.OnChange(model.ActionUpdatePoint, model.UpdateMinor, upd)
}
