// Package command decouples physical keys from editing actions. A Keymap
// turns a key into a Name, and a Dispatcher runs the Name against the
// timeline and transport.
package command

import "slices"

// Name identifies an editor action.
type Name string

const (
	Play                 Name = "play"
	TogglePlay           Name = "toggle-play"
	ReverseShuttle       Name = "reverse-shuttle"
	ForwardShuttle       Name = "forward-shuttle"
	Stop                 Name = "stop"
	StepBack             Name = "step-back"
	StepForward          Name = "step-forward"
	PrevEdit             Name = "prev-edit"
	NextEdit             Name = "next-edit"
	SplitAtPlayhead      Name = "split"
	DeleteSelected       Name = "delete"
	RippleDeleteSelected Name = "ripple-delete"
	Copy                 Name = "copy"
	Paste                Name = "paste"
	PasteInsert          Name = "paste-insert"
	PasteOverwrite       Name = "paste-overwrite"
	MarkIn               Name = "mark-in"
	MarkOut              Name = "mark-out"
	ClearMarks           Name = "clear-marks"
	Duplicate            Name = "duplicate"
	AddMarker            Name = "add-marker"
	ToggleSnap           Name = "toggle-snap"
	ToggleRipple         Name = "toggle-ripple"
	TrimShorter          Name = "trim-shorter"
	TrimLonger           Name = "trim-longer"
	MoveClipUp           Name = "move-up"
	MoveClipDown         Name = "move-down"
	ZoomIn               Name = "zoom-in"
	ZoomOut              Name = "zoom-out"
	SelectNext           Name = "select-next"
	SelectPrev           Name = "select-prev"
	Save                 Name = "save"
	Quit                 Name = "quit"
	Help                 Name = "help"
)

var descriptions = map[Name]string{
	Play:                 "play",
	TogglePlay:           "play/pause",
	ReverseShuttle:       "shuttle reverse",
	ForwardShuttle:       "shuttle forward",
	Stop:                 "stop",
	StepBack:             "frame back",
	StepForward:          "frame forward",
	PrevEdit:             "previous edit",
	NextEdit:             "next edit",
	SplitAtPlayhead:      "split at playhead",
	DeleteSelected:       "delete clip",
	RippleDeleteSelected: "ripple delete",
	Copy:                 "copy",
	Paste:                "paste at playhead",
	PasteInsert:          "insert paste",
	PasteOverwrite:       "overwrite paste",
	MarkIn:               "mark in",
	MarkOut:              "mark out",
	ClearMarks:           "clear in/out",
	Duplicate:            "duplicate",
	AddMarker:            "add marker",
	ToggleSnap:           "toggle snap",
	ToggleRipple:         "toggle ripple",
	TrimShorter:          "trim -1 frame",
	TrimLonger:           "trim +1 frame",
	MoveClipUp:           "move to track above",
	MoveClipDown:         "move to track below",
	ZoomIn:               "zoom in",
	ZoomOut:              "zoom out",
	SelectNext:           "next clip",
	SelectPrev:           "previous clip",
	Save:                 "save",
	Quit:                 "quit",
	Help:                 "help",
}

// All returns every command name, sorted.
func All() []Name {
	names := make([]Name, 0, len(descriptions))
	for n := range descriptions {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Known reports whether n names a command.
func Known(n Name) bool {
	_, ok := descriptions[n]
	return ok
}

// Describe returns a short help label for n.
func Describe(n Name) string {
	return descriptions[n]
}
