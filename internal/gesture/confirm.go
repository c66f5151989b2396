// Package gesture implements the hold-to-confirm state machine.
package gesture

// State is the phase of the confirm gesture.
type State int

const (
	Idle State = iota
	Holding
	Signed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Holding:
		return "holding"
	case Signed:
		return "signed"
	}
	return "unknown"
}

// Confirm couples a continuous press to the discrete signed state.
//
// Signing is sticky: only Reset leaves Signed. The pressing flag is tracked
// separately from the state and may still be set after signing until the
// release arrives.
type Confirm struct {
	state    State
	pressing bool
}

// State returns the current phase.
func (c *Confirm) State() State {
	return c.state
}

// Pressing reports whether the confirm control is held.
func (c *Confirm) Pressing() bool {
	return c.pressing
}

// Signed reports whether the drawing has been confirmed.
func (c *Confirm) Signed() bool {
	return c.state == Signed
}

// Press starts a hold. It is ignored when there is no ink or the drawing is
// already signed, and reports whether a hold started.
func (c *Confirm) Press(total float64) bool {
	if total <= 0 || c.state != Idle {
		return false
	}
	c.pressing = true
	c.state = Holding
	return true
}

// Release ends the press. It reports whether a hold was abandoned before
// completing, in which case the state is back to Idle.
func (c *Confirm) Release() bool {
	c.pressing = false
	if c.state != Holding {
		return false
	}
	c.state = Idle
	return true
}

// Complete is called when the fill reaches 1. It signs only when a hold is
// in progress with the press still down, and reports whether it did.
func (c *Confirm) Complete(total float64) bool {
	if c.state != Holding || !c.pressing || total <= 0 {
		return false
	}
	c.state = Signed
	return true
}

// Reset returns to Idle, dropping the signature and any hold.
func (c *Confirm) Reset() {
	c.state = Idle
	c.pressing = false
}
