// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package axis

import (
	"errors"
	"fmt"

	"github.com/ManuGH/fontview/internal/font"
)

// ErrUnknownAxis is returned by Set for a tag the selected typeface does not declare.
var ErrUnknownAxis = errors.New("unknown axis tag")

// Observer is called after every successful Reset or Set, on the caller's goroutine,
// before the mutating call returns. st is a private copy.
type Observer func(tf *font.Typeface, st State)

// Manager owns the axis state of one selected typeface.
//
// The key set of the state always equals the key set of the selected typeface's axes.
// Manager is not safe for concurrent use; its owner serialises calls.
type Manager struct {
	typeface  *font.Typeface
	state     State
	observers []Observer
}

// NewManager returns a manager with no selection.
func NewManager(observers ...Observer) *Manager {
	return &Manager{state: State{}, observers: observers}
}

// Observe registers an additional observer.
func (m *Manager) Observe(o Observer) {
	if o != nil {
		m.observers = append(m.observers, o)
	}
}

// Reset selects d and replaces the state with d's axis defaults. A nil descriptor
// clears the selection. If d carries malformed axis data the *font.DataError is
// returned and the previous selection and state are kept.
func (m *Manager) Reset(d *font.Descriptor) error {
	tf, err := font.Parse(d)
	if err != nil {
		return err
	}
	m.typeface = tf
	m.state = Defaults(tf)
	m.notify()
	return nil
}

// Set overwrites the value of one existing tag. Unknown tags fail fast with
// ErrUnknownAxis and leave the state untouched; they are never added.
// The value is stored as given, including for ital.
func (m *Manager) Set(tag string, v float64) error {
	if _, ok := m.state[tag]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAxis, tag)
	}
	m.state[tag] = v
	m.notify()
	return nil
}

// Typeface returns the selected typeface, or nil.
func (m *Manager) Typeface() *font.Typeface {
	return m.typeface
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	return m.state.Clone()
}

func (m *Manager) notify() {
	for _, o := range m.observers {
		o(m.typeface, m.state.Clone())
	}
}
