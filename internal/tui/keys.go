package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/command"
)

// Keys handled by the editor itself rather than the command layer.
const (
	keyInsert = "p"
	keyYank   = "y"
)

// helpGroups orders commands into the columns of the full help view.
var helpGroups = [][]command.Name{
	{
		command.TogglePlay, command.ReverseShuttle, command.Stop, command.ForwardShuttle,
		command.StepBack, command.StepForward, command.PrevEdit, command.NextEdit,
	},
	{
		command.SelectNext, command.SelectPrev, command.SplitAtPlayhead, command.DeleteSelected,
		command.RippleDeleteSelected, command.TrimShorter, command.TrimLonger,
		command.MoveClipUp, command.MoveClipDown,
	},
	{
		command.MarkIn, command.MarkOut, command.ClearMarks,
		command.Copy, command.Paste, command.PasteInsert, command.PasteOverwrite,
		command.Duplicate,
	},
	{
		command.AddMarker, command.ToggleSnap, command.ToggleRipple, command.ZoomIn, command.ZoomOut,
	},
	{command.Save, command.Quit, command.Help},
}

var shortHelp = []command.Name{
	command.TogglePlay, command.SplitAtPlayhead, command.SelectNext, command.Save, command.Quit, command.Help,
}

// keyMap adapts a command.Keymap to bubbles/help.
type keyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return k.short
}

func (k keyMap) FullHelp() [][]key.Binding {
	return k.full
}

func newKeyMap(km command.Keymap) keyMap {
	var k keyMap
	for _, n := range shortHelp {
		if b, ok := binding(km, n); ok {
			k.short = append(k.short, b)
		}
	}
	for _, group := range helpGroups {
		var col []key.Binding
		for _, n := range group {
			if b, ok := binding(km, n); ok {
				col = append(col, b)
			}
		}
		k.full = append(k.full, col)
	}
	k.full = append(k.full, []key.Binding{
		key.NewBinding(key.WithKeys(keyInsert), key.WithHelp(keyInsert, "insert media")),
		key.NewBinding(key.WithKeys(keyYank), key.WithHelp(keyYank, "copy timecode")),
	})
	return k
}

func binding(km command.Keymap, n command.Name) (key.Binding, bool) {
	keys := km.KeysFor(n)
	if len(keys) == 0 {
		return key.Binding{}, false
	}
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			continue
		}
		labels = append(labels, k)
	}
	if len(labels) == 0 {
		labels = []string{"space"}
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), command.Describe(n)),
	), true
}
