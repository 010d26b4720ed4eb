// Package control models dashboard controls that stay disabled while the
// call they triggered is in flight.
package control

import (
	"context"
	"errors"

	"github.com/tevino/abool"
)

// ErrBusy is returned when a control is triggered while still disabled.
var ErrBusy = errors.New("control is busy: a request is already in flight")

// Guard is one control. At most one call runs through it at a time.
type Guard struct {
	name     string
	disabled *abool.AtomicBool
}

// NewGuard creates an enabled control.
func NewGuard(name string) *Guard {
	return &Guard{name: name, disabled: abool.New()}
}

// Name returns the control name.
func (g *Guard) Name() string {
	return g.name
}

// Disabled reports whether a call is in flight.
func (g *Guard) Disabled() bool {
	return g.disabled.IsSet()
}

// Do disables the control, runs fn, and enables the control again whatever
// fn returned. It fails fast with ErrBusy if the control is disabled.
func (g *Guard) Do(ctx context.Context, fn func(context.Context) error) error {
	if !g.disabled.SetToIf(false, true) {
		return ErrBusy
	}
	defer g.disabled.UnSet()

	return fn(ctx)
}

// Set is the group of controls of one dashboard.
type Set struct {
	Predict    *Guard
	Random     *Guard
	RefreshMap *Guard
	Analytics  *Guard
}

// NewSet creates all dashboard controls, enabled.
func NewSet() *Set {
	return &Set{
		Predict:    NewGuard("predict"),
		Random:     NewGuard("random"),
		RefreshMap: NewGuard("refresh-map"),
		Analytics:  NewGuard("analytics"),
	}
}

// All returns every control of the set.
func (s *Set) All() []*Guard {
	return []*Guard{s.Predict, s.Random, s.RefreshMap, s.Analytics}
}
