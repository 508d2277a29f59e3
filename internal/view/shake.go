package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ShakeInterval is the delay between two frames of the failure cue.
var ShakeInterval = 60 * time.Millisecond

var shakeOffsets = []int{3, 0, 3, 0, 2, 0}

type shakeState struct {
	gen        int
	frame      int
	active     bool
	onComplete func()
}

func (s shakeState) offset() int {
	if !s.active || s.frame >= len(shakeOffsets) {
		return 0
	}
	return shakeOffsets[s.frame]
}

// ShakeFrameMsg advances a running shake by one frame. The owning program
// passes it back through Advance.
type ShakeFrameMsg struct {
	view *EditView
	gen  int
}

// Advance draws the next frame and schedules the one after it. When the
// last frame is reached the continuation given to Shake runs.
func (m ShakeFrameMsg) Advance() tea.Cmd {
	if m.view == nil {
		return nil
	}
	return m.view.advanceShake(m.gen)
}

// Shake runs the failure cue. onComplete, if set, runs after the last
// frame. Starting a new shake finishes the previous one first.
func (v *EditView) Shake(onComplete func()) tea.Cmd {
	if v.shake.active {
		v.finishShake()
	}
	v.shake.gen++
	v.shake.frame = 0
	v.shake.active = true
	v.shake.onComplete = onComplete
	return v.tick()
}

// Shaking reports whether the failure cue is running.
func (v *EditView) Shaking() bool { return v.shake.active }

func (v *EditView) tick() tea.Cmd {
	msg := ShakeFrameMsg{view: v, gen: v.shake.gen}
	return tea.Tick(ShakeInterval, func(time.Time) tea.Msg { return msg })
}

func (v *EditView) advanceShake(gen int) tea.Cmd {
	if !v.shake.active || gen != v.shake.gen {
		return nil
	}
	v.shake.frame++
	if v.shake.frame >= len(shakeOffsets) {
		v.finishShake()
		return nil
	}
	return v.tick()
}

func (v *EditView) finishShake() {
	done := v.shake.onComplete
	v.shake.active = false
	v.shake.frame = 0
	v.shake.onComplete = nil
	if done != nil {
		done()
	}
}
