// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionFocusNext   Action = "focus_next"
	ActionFocusPrev   Action = "focus_prev"
	ActionClearStatus Action = "clear_status"

	// Button actions, applied to the focused button
	ActionPress          Action = "press"           // enter/space
	ActionToggleDisabled Action = "toggle_disabled" // x
	ActionForceIdle      Action = "force_idle"      // i - host override
	ActionForceLoading   Action = "force_loading"   // l - host override
	ActionForceError     Action = "force_error"     // e - host override
	ActionDispose        Action = "dispose"         // ctrl+d
	ActionPressAll       Action = "press_all"       // a
)
