package command

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/transport"
)

const zoomStep = 1.25

// Session is editor state that is not part of the timeline itself.
type Session struct {
	Selected string
	Ripple   bool

	// In and Out are the range marks. HasIn and HasOut say whether each
	// one is set.
	In, Out       timecode.Time
	HasIn, HasOut bool
}

// Result is the outcome of one command.
type Result struct {
	Message string
	Err     error
	Quit    bool
	Save    bool
	Help    bool
}

// Dispatcher executes commands against one timeline and its transport.
type Dispatcher struct {
	tl  *timeline.Timeline
	tr  *transport.Controller
	log *zap.Logger

	Session Session
}

// NewDispatcher creates a dispatcher. ripple sets the initial ripple mode.
func NewDispatcher(tl *timeline.Timeline, tr *transport.Controller, ripple bool, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{tl: tl, tr: tr, log: log, Session: Session{Ripple: ripple}}
}

// Selected returns the selected clip, if it still exists.
func (d *Dispatcher) Selected() (timeline.Clip, bool) {
	if d.Session.Selected == "" {
		return timeline.Clip{}, false
	}
	return d.tl.Clip(d.Session.Selected)
}

// Select marks a clip as the target of clip commands.
func (d *Dispatcher) Select(id string) {
	d.Session.Selected = id
}

// Range returns the span between the in and out marks, in time order. It
// reports false unless both marks are set and differ.
func (d *Dispatcher) Range() (timeline.Range, bool) {
	s := d.Session
	if !s.HasIn || !s.HasOut || s.In == s.Out {
		return timeline.Range{}, false
	}
	return timeline.Range{In: min(s.In, s.Out), Out: max(s.In, s.Out)}, true
}

func (d *Dispatcher) clearMarks() {
	d.Session.HasIn, d.Session.HasOut = false, false
}

// Execute runs n and reports what happened.
func (d *Dispatcher) Execute(n Name) Result {
	res := d.execute(n)
	if res.Err != nil {
		d.log.Debug("command failed", zap.String("command", string(n)), zap.Error(res.Err))
	}
	return res
}

func (d *Dispatcher) execute(n Name) Result {
	switch n {
	case Play:
		d.tr.Play()
		return Result{Message: "playing"}
	case TogglePlay:
		d.tr.Toggle()
		return Result{Message: d.playState()}
	case ReverseShuttle:
		d.tr.ShuttleReverse()
		return Result{Message: "shuttle " + d.tr.Speed().String()}
	case ForwardShuttle:
		d.tr.ShuttleForward()
		return Result{Message: "shuttle " + d.tr.Speed().String()}
	case Stop:
		d.tr.Stop()
		return Result{Message: "stopped"}
	case StepBack:
		return d.seekResult(d.tr.StepFrames(-1))
	case StepForward:
		return d.seekResult(d.tr.StepFrames(1))
	case PrevEdit:
		return d.seekResult(d.tr.Seek(d.tl.PrevEdit(d.tr.Time())))
	case NextEdit:
		next, ok := d.tl.NextEdit(d.tr.Time())
		if !ok {
			return Result{Message: "no later edit"}
		}
		return d.seekResult(d.tr.Seek(next))
	case SplitAtPlayhead:
		return d.split()
	case DeleteSelected:
		if r, ok := d.Range(); ok {
			return d.deleteRange(r)
		}
		return d.deleteSelected(d.Session.Ripple)
	case RippleDeleteSelected:
		if r, ok := d.Range(); ok {
			return d.deleteRange(r)
		}
		return d.deleteSelected(true)
	case Copy:
		return d.copy()
	case Paste:
		return d.pasted("pasted", d.tl.PasteAt)
	case PasteInsert:
		return d.pasted("inserted", d.tl.PasteInsert)
	case PasteOverwrite:
		return d.pasted("overwrote with", d.tl.PasteOverwrite)
	case MarkIn:
		d.Session.In, d.Session.HasIn = d.tr.Time(), true
		return Result{Message: "in " + timecode.Format(d.Session.In, d.tl.Rate())}
	case MarkOut:
		d.Session.Out, d.Session.HasOut = d.tr.Time(), true
		return Result{Message: "out " + timecode.Format(d.Session.Out, d.tl.Rate())}
	case ClearMarks:
		d.clearMarks()
		return Result{Message: "in/out cleared"}
	case Duplicate:
		c, err := d.requireSelection()
		if err != nil {
			return Result{Err: err}
		}
		dup, err := d.tl.DuplicateClip(c.ID)
		if err != nil {
			return Result{Err: err}
		}
		d.Session.Selected = dup.ID
		return Result{Message: "duplicated to " + dup.ID}
	case AddMarker:
		m, err := d.tl.AddMarker(d.tr.Time(), "", "")
		if err != nil {
			return Result{Err: err}
		}
		return Result{Message: fmt.Sprintf("%s at %s", m.Label, timecode.Format(m.Time, d.tl.Rate()))}
	case ToggleSnap:
		snap := !d.tl.Settings().Snap
		d.tl.SetSnap(snap)
		d.tr.SetSnap(snap)
		return Result{Message: "snap " + onOff(snap)}
	case ToggleRipple:
		d.Session.Ripple = !d.Session.Ripple
		return Result{Message: "ripple " + onOff(d.Session.Ripple)}
	case TrimShorter:
		return d.trim(-1)
	case TrimLonger:
		return d.trim(1)
	case MoveClipUp:
		return d.moveTrack(-1)
	case MoveClipDown:
		return d.moveTrack(1)
	case ZoomIn:
		return Result{Message: fmt.Sprintf("zoom %.2fx", d.tr.SetZoom(d.tr.Zoom()*zoomStep))}
	case ZoomOut:
		return Result{Message: fmt.Sprintf("zoom %.2fx", d.tr.SetZoom(d.tr.Zoom()/zoomStep))}
	case SelectNext:
		return d.cycleSelection(1)
	case SelectPrev:
		return d.cycleSelection(-1)
	case Save:
		return Result{Save: true}
	case Quit:
		return Result{Quit: true}
	case Help:
		return Result{Help: true}
	}
	return Result{Err: fmt.Errorf("command %q: %w", n, errors.ErrNotFound)}
}

func (d *Dispatcher) playState() string {
	if d.tr.Playing() {
		return "playing"
	}
	return "paused"
}

func (d *Dispatcher) seekResult(t timecode.Time) Result {
	return Result{Message: timecode.Format(t, d.tl.Rate())}
}

func (d *Dispatcher) requireSelection() (timeline.Clip, error) {
	c, ok := d.Selected()
	if !ok {
		return timeline.Clip{}, errors.WithSuggestion(
			fmt.Errorf("no clip selected: %w", errors.ErrNotFound),
			"Press tab to select a clip")
	}
	return c, nil
}

// split cuts only the selected clip when there is one, otherwise every
// clip under the playhead.
func (d *Dispatcher) split() Result {
	var splits []timeline.Split
	if c, ok := d.Selected(); ok {
		var err error
		if splits, err = d.tl.SplitClips(d.tr.Time(), c.ID); err != nil {
			return Result{Err: err}
		}
	} else {
		splits = d.tl.SplitAt(d.tr.Time())
	}
	if len(splits) == 0 {
		return Result{Message: "nothing to split"}
	}
	for _, s := range splits {
		if s.Original == d.Session.Selected {
			d.Session.Selected = s.Right.ID
		}
	}
	return Result{Message: fmt.Sprintf("split %d clip(s)", len(splits))}
}

func (d *Dispatcher) copy() Result {
	if r, ok := d.Range(); ok {
		sel, err := d.tl.CopyRange(r)
		if err != nil {
			return Result{Err: err}
		}
		return Result{Message: fmt.Sprintf("copied %d clip(s), %s", len(sel.Clips), timecode.Format(sel.Length, d.tl.Rate()))}
	}
	c, err := d.requireSelection()
	if err != nil {
		return Result{Err: err}
	}
	if err := d.tl.CopyClip(c.ID); err != nil {
		return Result{Err: err}
	}
	return Result{Message: "copied " + c.ID}
}

func (d *Dispatcher) pasted(verb string, paste func(timecode.Time) ([]timeline.Clip, error)) Result {
	clips, err := paste(d.tr.Time())
	if err != nil {
		return Result{Err: err}
	}
	d.Session.Selected = clips[0].ID
	if len(clips) == 1 {
		return Result{Message: verb + " " + clips[0].ID}
	}
	return Result{Message: fmt.Sprintf("%s %d clips", verb, len(clips))}
}

// deleteRange ripple deletes the marked range on every unlocked track and
// parks the playhead at its start.
func (d *Dispatcher) deleteRange(r timeline.Range) Result {
	if err := d.tl.RippleDeleteRange(r); err != nil {
		return Result{Err: err}
	}
	d.clearMarks()
	if _, ok := d.Selected(); !ok {
		d.Session.Selected = ""
	}
	d.tr.Seek(r.In)
	return Result{Message: "ripple deleted " + timecode.Format(r.Duration(), d.tl.Rate())}
}

func (d *Dispatcher) deleteSelected(ripple bool) Result {
	c, err := d.requireSelection()
	if err != nil {
		return Result{Err: err}
	}
	next := d.neighbour(c.ID, 1)
	if _, err := d.tl.DeleteClip(c.ID, ripple); err != nil {
		return Result{Err: err}
	}
	d.Session.Selected = next
	if ripple {
		return Result{Message: "ripple deleted " + c.ID}
	}
	return Result{Message: "deleted " + c.ID}
}

func (d *Dispatcher) trim(frames int) Result {
	c, err := d.requireSelection()
	if err != nil {
		return Result{Err: err}
	}
	out, err := d.tl.TrimClip(c.ID, c.Duration+timecode.Time(frames)*d.tl.Rate().Frame(), d.Session.Ripple)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Message: fmt.Sprintf("%s duration %s", out.ID, timecode.Format(out.Duration, d.tl.Rate()))}
}

// moveTrack moves the selected clip to the nearest track of the same kind
// in direction dir (-1 up, +1 down), keeping its start.
func (d *Dispatcher) moveTrack(dir int) Result {
	c, err := d.requireSelection()
	if err != nil {
		return Result{Err: err}
	}
	tracks := d.tl.Tracks()
	cur := -1
	for i, tr := range tracks {
		if tr.ID == c.TrackID {
			cur = i
		}
	}
	kind := tracks[cur].Kind
	for i := cur + dir; i >= 0 && i < len(tracks); i += dir {
		if tracks[i].Kind != kind {
			continue
		}
		moved, err := d.tl.MoveClip(c.ID, tracks[i].ID, c.Start)
		if err != nil {
			return Result{Err: err}
		}
		return Result{Message: fmt.Sprintf("%s moved to %s", moved.ID, moved.TrackID)}
	}
	return Result{Err: fmt.Errorf("no %s track in that direction: %w", kind, errors.ErrNotFound)}
}

// neighbour returns the id of the clip dir positions from id in display
// order, or "".
func (d *Dispatcher) neighbour(id string, dir int) string {
	clips := d.tl.Clips()
	for i, c := range clips {
		if c.ID == id {
			j := i + dir
			if j >= 0 && j < len(clips) {
				return clips[j].ID
			}
			return ""
		}
	}
	return ""
}

func (d *Dispatcher) cycleSelection(dir int) Result {
	clips := d.tl.Clips()
	if len(clips) == 0 {
		d.Session.Selected = ""
		return Result{Message: "no clips"}
	}
	i := -1
	for j, c := range clips {
		if c.ID == d.Session.Selected {
			i = j
			break
		}
	}
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(clips) - 1
	default:
		i = (i + dir + len(clips)) % len(clips)
	}
	c := clips[i]
	d.Session.Selected = c.ID
	return Result{Message: fmt.Sprintf("selected %s on %s", c.ID, c.TrackID)}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
