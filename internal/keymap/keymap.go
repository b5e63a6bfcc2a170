package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "button"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionFocusNext, []string{"tab", "j", "down"}, "Next button", "global"},
	{ActionFocusPrev, []string{"shift+tab", "k", "up"}, "Previous button", "global"},
	{ActionClearStatus, []string{"esc"}, "Clear status line", "global"},
	{ActionPressAll, []string{"a"}, "Press every button", "global"},

	// Focused button
	{ActionPress, []string{"enter", " "}, "Press", "button"},
	{ActionToggleDisabled, []string{"x"}, "Enable/disable", "button"},
	{ActionForceIdle, []string{"i"}, "Force idle", "button"},
	{ActionForceLoading, []string{"l"}, "Force loading", "button"},
	{ActionForceError, []string{"e"}, "Force error", "button"},
	{ActionDispose, []string{"ctrl+d"}, "Dispose", "button"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
