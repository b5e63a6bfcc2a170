package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByContext(t *testing.T) {
	global := ByContext("global")
	button := ByContext("button")

	assert.NotEmpty(t, global)
	assert.NotEmpty(t, button)
	assert.Len(t, Bindings, len(global)+len(button), "every binding is global or button")
	assert.Empty(t, ByContext("unknown"))

	for _, b := range button {
		assert.Equal(t, "button", b.Context)
	}
}

func TestButtonBindingsCoverOverrides(t *testing.T) {
	var actions []Action
	for _, b := range ByContext("button") {
		actions = append(actions, b.Action)
	}

	for _, want := range []Action{
		ActionPress,
		ActionToggleDisabled,
		ActionForceIdle,
		ActionForceLoading,
		ActionForceError,
		ActionDispose,
	} {
		assert.Contains(t, actions, want)
	}
}

func TestBindingsAreComplete(t *testing.T) {
	for i, b := range Bindings {
		assert.NotEmpty(t, b.Action, "binding[%d]", i)
		assert.NotEmpty(t, b.Keys, "binding[%d] %s", i, b.Action)
		assert.NotEmpty(t, b.Description, "binding[%d] %s", i, b.Action)
	}
}

func TestBindingsHaveUniqueKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}
