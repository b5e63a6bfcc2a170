// Package buttonstate defines the closed set of states an action button can be in.
package buttonstate

import (
	"fmt"
	"reflect"
)

// Kind identifies one of the four button states.
type Kind uint8

const (
	Idle Kind = iota
	Loading
	Success
	Error
)

// Kinds lists every kind in declaration order.
var Kinds = [...]Kind{Idle, Loading, Success, Error}

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	panic(fmt.Sprintf("buttonstate: unknown kind %d", uint8(k)))
}

// ParseKind returns the kind named by s, as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return Idle, fmt.Errorf("buttonstate: unknown kind %q", s)
}

// State is the current state of a button. The zero value is Idle.
//
// Values are only built through the constructors below, so the set of
// states stays closed: matching on Kind() covers every case.
type State struct {
	kind  Kind
	err   error
	trace string
}

// NewIdle returns the Idle state.
func NewIdle() State { return State{kind: Idle} }

// NewLoading returns the Loading state.
func NewLoading() State { return State{kind: Loading} }

// NewSuccess returns the Success state.
func NewSuccess() State { return State{kind: Success} }

// NewError returns an Error state carrying err and an optional trace.
func NewError(err error, trace string) State {
	return State{kind: Error, err: err, trace: trace}
}

// Kind returns the state's variant.
func (s State) Kind() Kind { return s.kind }

// Err returns the failure carried by an Error state, nil otherwise.
func (s State) Err() error { return s.err }

// Trace returns the trace carried by an Error state, empty otherwise.
func (s State) Trace() string { return s.trace }

// Is reports whether s is of kind k.
func (s State) Is(k Kind) bool { return s.kind == k }

// Equal reports whether both states are the same variant with
// structurally equal payloads.
func (s State) Equal(o State) bool {
	if s.kind != o.kind {
		return false
	}
	if s.kind != Error {
		return true
	}
	return s.trace == o.trace && reflect.DeepEqual(s.err, o.err)
}

func (s State) String() string {
	if s.kind == Error && s.err != nil {
		return fmt.Sprintf("error(%v)", s.err)
	}
	return s.kind.String()
}
