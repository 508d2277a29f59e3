// Package keys holds the program-wide key listeners. The owner feeds every
// key press through Dispatch before the focused node sees it.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Escape cancels whatever is in progress.
var Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

// IsEscape reports whether msg is the cancel key.
func IsEscape(msg tea.KeyMsg) bool { return key.Matches(msg, Escape) }

// Listener handles a key press and reports whether it consumed it.
type Listener func(msg tea.KeyMsg) bool

// ID identifies a registration.
type ID uint64

type entry struct {
	id ID
	fn Listener
}

// Document is the registry of global listeners.
type Document struct {
	next      ID
	listeners []entry
}

func NewDocument() *Document { return &Document{} }

func (d *Document) AddListener(fn Listener) ID {
	d.next++
	d.listeners = append(d.listeners, entry{id: d.next, fn: fn})
	return d.next
}

// RemoveListener drops a registration. Unknown ids are ignored.
func (d *Document) RemoveListener(id ID) {
	for i, e := range d.listeners {
		if e.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch calls listeners in registration order until one consumes msg.
// Listeners may add or remove registrations while being called.
func (d *Document) Dispatch(msg tea.KeyMsg) bool {
	snapshot := make([]entry, len(d.listeners))
	copy(snapshot, d.listeners)
	for _, e := range snapshot {
		if !d.registered(e.id) {
			continue
		}
		if e.fn(msg) {
			return true
		}
	}
	return false
}

// Len is the number of live registrations.
func (d *Document) Len() int { return len(d.listeners) }

func (d *Document) registered(id ID) bool {
	for _, e := range d.listeners {
		if e.id == id {
			return true
		}
	}
	return false
}
