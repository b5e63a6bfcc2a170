package keymap

import "strings"

// Resolver maps key strings to actions and back.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys, first binding order
	help     map[string][]HelpLine
	contexts []string // in first-seen order
}

// HelpLine is one row of the help view.
type HelpLine struct {
	Keys        string // display names joined with ", "
	Description string
}

// NewResolver creates a resolver from bindings. When a key appears twice,
// the later binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		help:     make(map[string][]HelpLine),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)

		if _, seen := r.help[b.Context]; !seen {
			r.contexts = append(r.contexts, b.Context)
		}
		r.help[b.Context] = append(r.help[b.Context], HelpLine{
			Keys:        displayKeys(b.Keys),
			Description: b.Description,
		})
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Contexts returns the binding contexts in the order they were declared.
func (r *Resolver) Contexts() []string {
	return r.contexts
}

// Help returns the help rows of a context.
func (r *Resolver) Help(context string) []HelpLine {
	return r.help[context]
}

// KeyName returns the display name of a key string.
func KeyName(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func displayKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = KeyName(k)
	}
	return strings.Join(names, ", ")
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
