package command

import (
	"fmt"
	"slices"
)

// Unbind removes a default binding when used as an override value.
const Unbind = "none"

// Keymap maps key strings, as bubbletea reports them, to commands.
type Keymap map[string]Name

// DefaultKeymap returns the standard J/K/L editing layout.
func DefaultKeymap() Keymap {
	return Keymap{
		" ":         TogglePlay,
		"space":     TogglePlay,
		"j":         ReverseShuttle,
		"k":         Stop,
		"l":         ForwardShuttle,
		"left":      StepBack,
		"right":     StepForward,
		"up":        PrevEdit,
		"down":      NextEdit,
		"ctrl+b":    SplitAtPlayhead,
		"b":         SplitAtPlayhead,
		"delete":    DeleteSelected,
		"backspace": DeleteSelected,
		"x":         RippleDeleteSelected,
		"ctrl+c":    Copy,
		"ctrl+v":    Paste,
		"V":         PasteInsert,
		"alt+v":     PasteOverwrite,
		"i":         MarkIn,
		"o":         MarkOut,
		"alt+x":     ClearMarks,
		"ctrl+d":    Duplicate,
		"m":         AddMarker,
		"s":         ToggleSnap,
		"r":         ToggleRipple,
		"[":         TrimShorter,
		"]":         TrimLonger,
		"alt+up":    MoveClipUp,
		"alt+down":  MoveClipDown,
		"+":         ZoomIn,
		"=":         ZoomIn,
		"-":         ZoomOut,
		"tab":       SelectNext,
		"shift+tab": SelectPrev,
		"ctrl+s":    Save,
		"q":         Quit,
		"?":         Help,
	}
}

// Apply layers key overrides from configuration onto k. A value of "none"
// removes the binding. Unknown command names are an error and leave k
// unchanged.
func (k Keymap) Apply(overrides map[string]string) error {
	for key, name := range overrides {
		if name != Unbind && !Known(Name(name)) {
			return fmt.Errorf("key %q: unknown command %q", key, name)
		}
	}
	for key, name := range overrides {
		if name == Unbind {
			delete(k, key)
			continue
		}
		k[key] = Name(name)
	}
	return nil
}

// Lookup returns the command bound to key.
func (k Keymap) Lookup(key string) (Name, bool) {
	n, ok := k[key]
	return n, ok
}

// KeysFor returns the keys bound to n, sorted.
func (k Keymap) KeysFor(n Name) []string {
	var keys []string
	for key, name := range k {
		if name == n {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}
