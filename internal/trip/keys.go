package trip

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/idilsaglam/trip/internal/keys"
	"github.com/idilsaglam/trip/internal/view"
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Sort key.Binding
	Quit key.Binding
	Kill key.Binding
}

var listKeys = keyMap{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Sort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Quit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Kill: key.NewBinding(key.WithKeys("ctrl+c")),
}

func listHelp() []key.Binding {
	b := []key.Binding{listKeys.Up, listKeys.Down}
	b = append(b, view.PointHelp()...)
	return append(b, listKeys.Sort, listKeys.Quit)
}

func editHelp() []key.Binding {
	return append(view.EditHelp(), keys.Escape)
}
