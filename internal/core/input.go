package core

// Action represents a semantic game action, abstracted from physical key presses
// and mouse gestures. This allows the game to work with high-level intents
// rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow, swipe up
	ActionDown           // S, J, Down arrow, swipe down
	ActionLeft           // A, H, Left arrow, swipe left
	ActionRight          // D, L, Right arrow, swipe right
	ActionRestart        // R - start a fresh game
	ActionMenu           // M, Esc - navigate to the home screen
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action is one of the four move directions.
func (a Action) IsDirection() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}

// DefaultSwipeThreshold is the minimum gesture displacement, in
// device-independent pixels, that counts as a swipe.
const DefaultSwipeThreshold = 30

// Swipe classifies a drag displacement (dx, dy) into a direction.
// The dominant axis wins; the gesture must exceed threshold on that axis.
// Ties between axes resolve vertically. Positive dy points down.
func Swipe(dx, dy, threshold float64) (Action, bool) {
	absX, absY := dx, dy
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}

	if absX <= threshold && absY <= threshold {
		return ActionNone, false
	}

	if absX > absY {
		if dx > 0 {
			return ActionRight, true
		}
		return ActionLeft, true
	}
	if dy > 0 {
		return ActionDown, true
	}
	return ActionUp, true
}
