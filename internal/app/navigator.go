package app

import "math"

// SwipeThreshold is the minimum horizontal drag, in device-independent pixels,
// that counts as a swipe.
const SwipeThreshold = 50.0

// Direction is the navigation direction of a gesture.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// ClassifySwipe turns a horizontal drag into a direction. Leftward drags
// (negative dx) go forward.
func ClassifySwipe(dx float64) Direction {
	if math.Abs(dx) <= SwipeThreshold {
		return DirectionNone
	}
	if dx < 0 {
		return DirectionForward
	}
	return DirectionBackward
}

// Command is a discrete user input routed through the Navigator.
type Command interface {
	commandName() string
}

type (
	// StartCommand leaves the splash screen.
	StartCommand struct{}
	// AnswerCommand answers the current question.
	AnswerCommand struct{ Choice int }
	// AdvanceCommand is the "continue" button.
	AdvanceCommand struct{}
	// RetreatCommand is the "back" button.
	RetreatCommand struct{}
	// JumpCommand comes from the position indicator.
	JumpCommand struct{ Index int }
	// SwipeCommand carries the horizontal displacement of a finished drag.
	SwipeCommand struct{ DeltaX float64 }
)

func (StartCommand) commandName() string   { return "start" }
func (AnswerCommand) commandName() string  { return "answer" }
func (AdvanceCommand) commandName() string { return "advance" }
func (RetreatCommand) commandName() string { return "retreat" }
func (JumpCommand) commandName() string    { return "jump" }
func (SwipeCommand) commandName() string   { return "swipe" }

// Navigator decides which moves are legal for a session. Illegal moves are
// no-ops, never errors.
type Navigator struct {
	session *Session
}

func NewNavigator(session *Session) *Navigator {
	return &Navigator{session: session}
}

// CanAnswer reports whether the current question accepts an answer.
func (n *Navigator) CanAnswer() bool {
	s := n.session
	return s.Phase() == PhaseInProgress && !s.IsAnswered(s.CurrentIndex())
}

// CanAdvance allows moving forward only past an answered question.
func (n *Navigator) CanAdvance() bool {
	s := n.session
	return s.Phase() == PhaseInProgress && s.IsAnswered(s.CurrentIndex())
}

// CanRetreat allows moving back while in progress. Final is only reachable once
// every question is answered, so results are locked from there.
func (n *Navigator) CanRetreat() bool {
	s := n.session
	if s.Phase() != PhaseInProgress {
		return false
	}
	return s.CurrentIndex() > 0
}

// CanJumpTo allows revisiting answered questions only, including from Final.
func (n *Navigator) CanJumpTo(idx int) bool {
	s := n.session
	if s.Phase() == PhaseNotStarted {
		return false
	}
	return idx >= 0 && idx < s.AnsweredCount()
}

// Advance steps forward if permitted.
func (n *Navigator) Advance() bool {
	if !n.CanAdvance() {
		return false
	}
	n.session.Advance()
	return true
}

// Retreat steps back if permitted.
func (n *Navigator) Retreat() bool {
	if !n.CanRetreat() {
		return false
	}
	n.session.Retreat()
	return true
}

// JumpTo moves to an answered question if permitted.
func (n *Navigator) JumpTo(idx int) bool {
	if !n.CanJumpTo(idx) {
		return false
	}
	n.session.MoveTo(idx)
	return true
}

// Swipe routes a gesture through the same checks as the buttons.
func (n *Navigator) Swipe(dx float64) bool {
	switch ClassifySwipe(dx) {
	case DirectionForward:
		return n.Advance()
	case DirectionBackward:
		return n.Retreat()
	default:
		return false
	}
}
