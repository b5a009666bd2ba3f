package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/command"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/core"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tail"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timeline"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/components"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/tui/styles"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/wizard"
)

const maxLogEntries = 50

// Options configures the editor.
type Options struct {
	Store   *project.Store
	Session *project.Session
	Keymap  command.Keymap
	Ripple  bool
	Zoom    float64
	Refresh time.Duration
	Logger  *zap.Logger
}

// editor is the mutable state shared by every copy of the Model. Timeline
// listeners write into it, so it must not be copied.
type editor struct {
	store    *project.Store
	session  *project.Session
	disp     *command.Dispatcher
	unsub    func()
	pending  []timeline.Event
	saved    uint64
	dirty    bool
	ticking  bool
	log      *zap.Logger
	clipText func(string) error
}

// Model is the main TUI model
type Model struct {
	ed        *editor
	keymap    command.Keymap
	keys      keyMap
	help      help.Model
	formatter *tail.Formatter
	refresh   time.Duration
	changes   <-chan struct{}

	width  int
	height int

	// Components
	transportBar *components.TransportBar
	lanes        *components.Lanes
	bin          *components.Bin
	editLog      *components.Log

	entries []components.LogEntry

	// Overlays
	showHelp bool
	picker   *wizard.MediaModel

	message     string
	lastError   error
	errorExpiry time.Time

	quitArmed bool
	quitting  bool
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Keymap == nil {
		opts.Keymap = command.DefaultKeymap()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second
	}

	ed := &editor{store: opts.Store, log: opts.Logger, clipText: clipboard.WriteAll}
	ed.attach(opts.Session, opts.Ripple)
	if opts.Zoom > 0 {
		ed.session.Transport.SetZoom(opts.Zoom)
	}
	ed.markSaved()

	h := help.New()
	h.ShowAll = true

	return Model{
		ed:           ed,
		keymap:       opts.Keymap,
		keys:         newKeyMap(opts.Keymap),
		help:         h,
		formatter:    tail.NewFormatter(tail.WithEmoji(false), tail.WithRate(opts.Session.Timeline.Rate())),
		refresh:      opts.Refresh,
		transportBar: components.NewTransportBar(),
		lanes:        components.NewLanes(),
		bin:          components.NewBin(),
		editLog:      components.NewLog(),
	}
}

// attach makes s the session being edited, keeping the selection and
// ripple mode of the previous dispatcher.
func (e *editor) attach(s *project.Session, ripple bool) {
	if e.unsub != nil {
		e.unsub()
	}
	sess := command.Session{Ripple: ripple}
	if e.disp != nil {
		sess = e.disp.Session
	}
	e.session = s
	e.disp = command.NewDispatcher(s.Timeline, s.Transport, sess.Ripple, e.log.Named("command"))
	e.disp.Session = sess
	e.unsub = s.Timeline.Subscribe(func(ev timeline.Event) {
		e.pending = append(e.pending, ev)
	})
}

func (e *editor) markSaved() {
	fp, err := e.session.Fingerprint()
	if err != nil {
		e.log.Warn("fingerprint failed", zap.Error(err))
	}
	e.saved = fp
	e.dirty = false
}

func (e *editor) updateDirty() {
	fp, err := e.session.Fingerprint()
	e.dirty = err != nil || fp != e.saved
}

// Messages
type frameMsg time.Time
type refreshMsg time.Time
type fileChangedMsg struct{}
type watchClosedMsg struct{}

// Commands
func (m Model) frame() tea.Cmd {
	return tea.Tick(m.ed.session.Transport.Interval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return watchClosedMsg{}
		}
		return fileChangedMsg{}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), waitForChange(m.changes))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.picker != nil {
			next, _ := m.picker.Update(msg)
			p := next.(wizard.MediaModel)
			m.picker = &p
		}
		return m, nil

	case frameMsg:
		tr := m.ed.session.Transport
		if !tr.Playing() {
			m.ed.ticking = false
			return m, nil
		}
		if tr.Tick() {
			return m, m.frame()
		}
		m.ed.ticking = false
		m.message = "stopped at " + m.tc(tr.Time())
		return m, nil

	case refreshMsg:
		if m.lastError != nil && time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		return m, m.tick()

	case fileChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case watchClosedMsg:
		return m, nil
	}

	// Forward other messages to the picker when it is open
	if m.picker != nil {
		next, cmd := m.picker.Update(msg)
		p := next.(wizard.MediaModel)
		m.picker = &p
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// Media picker overlay
	if m.picker != nil {
		return m.handlePickerKeyPress(msg)
	}

	k := msg.String()
	if k != "q" {
		m.quitArmed = false
	}

	if name, ok := m.keymap.Lookup(k); ok {
		return m.execute(name)
	}

	switch k {
	case keyInsert:
		p := wizard.NewMediaModel(m.ed.session.Timeline.Catalog(), "")
		m.picker = &p
		return m, p.Init()
	case keyYank:
		tc := m.tc(m.ed.session.Transport.Time())
		if err := m.ed.clipText(tc); err != nil {
			m.setError(fmt.Errorf("clipboard: %w", err))
			return m, nil
		}
		m.message = "copied " + tc
	case "esc":
		m.ed.disp.Select("")
		m.message = ""
	}
	return m, nil
}

func (m Model) handlePickerKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.picker = nil
		return m, nil
	case "enter":
		item := m.picker.Current()
		m.picker = nil
		if item == nil {
			return m, nil
		}
		m.insert(*item)
		return m, nil
	}

	next, cmd := m.picker.Update(msg)
	p := next.(wizard.MediaModel)
	m.picker = &p
	return m, cmd
}

// execute runs a command and folds its result into the model.
func (m Model) execute(name command.Name) (tea.Model, tea.Cmd) {
	wasTicking := m.ed.ticking
	res := m.ed.disp.Execute(name)
	m.drainEvents()

	switch {
	case res.Err != nil:
		m.setError(res.Err)
	case res.Message != "":
		m.message = res.Message
	}

	var cmd tea.Cmd
	switch {
	case res.Help:
		m.showHelp = true
	case res.Save:
		m.save()
	case res.Quit:
		if m.ed.dirty && !m.quitArmed {
			m.quitArmed = true
			m.message = "unsaved changes: save first, or press q again to quit"
			return m, nil
		}
		m.quitting = true
		m.ed.unsub()
		return m, tea.Quit
	}

	if m.ed.session.Transport.Playing() && !wasTicking {
		m.ed.ticking = true
		cmd = m.frame()
	}
	return m, cmd
}

// insert places item at the playhead on the selected clip's track, or on
// the first unlocked track of the right kind with room.
func (m *Model) insert(item core.MediaItem) {
	tl := m.ed.session.Timeline
	at := m.ed.session.Transport.Time()

	var candidates []string
	if c, ok := m.ed.disp.Selected(); ok {
		candidates = append(candidates, c.TrackID)
	}
	for _, tr := range tl.Tracks() {
		if tr.Kind == item.Kind && !tr.Locked && !slices.Contains(candidates, tr.ID) {
			candidates = append(candidates, tr.ID)
		}
	}

	var lastErr error = fmt.Errorf("no %s track: %w", item.Kind, errors.ErrNotFound)
	for _, id := range candidates {
		c, err := tl.PlaceClip(id, item.ID, at)
		if err != nil {
			lastErr = err
			continue
		}
		m.ed.disp.Select(c.ID)
		m.drainEvents()
		m.message = fmt.Sprintf("placed %s on %s", item.Name, id)
		return
	}
	m.setError(lastErr)
}

// drainEvents moves timeline notifications into the edit log.
func (m *Model) drainEvents() {
	if len(m.ed.pending) > 0 {
		snap := m.ed.session.Timeline.Snapshot()
		now := time.Now()
		for _, ev := range m.ed.pending {
			e := tail.FromTimeline(ev, snap)
			e.Timestamp = now
			m.addEntry(components.LogEntry{Text: m.formatter.Format(e), At: now})
		}
		m.ed.pending = nil
	}
	m.ed.updateDirty()
}

func (m *Model) addEntry(e components.LogEntry) {
	m.entries = append([]components.LogEntry{e}, m.entries...)
	if len(m.entries) > maxLogEntries {
		m.entries = m.entries[:maxLogEntries]
	}
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(5 * time.Second)
	m.addEntry(components.LogEntry{Text: err.Error(), At: time.Now(), Err: true})
}

func (m *Model) save() {
	if m.ed.store == nil {
		m.setError(fmt.Errorf("no project file to save to"))
		return
	}
	if err := m.ed.store.Lock(); err != nil {
		m.setError(err)
		return
	}
	err := m.ed.store.Save(m.ed.session.Capture())
	if uerr := m.ed.store.Unlock(); uerr != nil {
		m.ed.log.Warn("unlock failed", zap.Error(uerr))
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.ed.markSaved()
	m.message = "saved " + m.ed.store.Path()
}

// reload picks up a project rewritten by another process. Unsaved local
// edits are never discarded.
func (m *Model) reload() {
	if m.ed.store == nil {
		return
	}
	p, err := m.ed.store.Load()
	if err != nil {
		// A half-written file shows up as a parse error; the next event
		// will retry.
		m.ed.log.Debug("reload skipped", zap.Error(err))
		return
	}
	s, err := project.Open(p, m.ed.log)
	if err != nil {
		m.setError(err)
		return
	}
	fp, err := s.Fingerprint()
	if err != nil || fp == m.ed.saved {
		return
	}
	if m.ed.dirty {
		m.setError(fmt.Errorf("project changed on disk; saving will overwrite it"))
		return
	}

	old := m.ed.session.Transport
	s.Transport.Restore(old.Time())
	s.Transport.SetZoom(old.Zoom())
	m.ed.attach(s, false)
	m.ed.ticking = false
	m.ed.markSaved()
	m.addEntry(components.LogEntry{Text: "reloaded from disk", At: time.Now()})
}

func (m Model) tc(t timecode.Time) string {
	return timecode.Format(t, m.ed.session.Timeline.Rate())
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.picker != nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(styles.FocusedBorder.Padding(1, 2).Render(m.picker.View()))
	}

	s := m.ed.session
	tl, tr := s.Timeline, s.Transport

	// Layout: transport (top), lanes (middle), media and log (bottom)
	transportHeight := 5
	bottomHeight := max(m.height*30/100, 6)
	lanesHeight := max(m.height-transportHeight-bottomHeight-1, 4)
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	state := tr.State()
	bar := m.transportBar.Render(components.TransportInfo{
		State:    state,
		Position: m.tc(tr.Time()),
		Length:   m.tc(tl.Duration()),
		Duration: tl.Duration().Seconds(),
		Speed:    tr.Speed().String(),
		Snap:     tl.Settings().Snap,
		Ripple:   m.ed.disp.Session.Ripple,
		Dirty:    m.ed.dirty,
		Marks:    m.marks(),
	}, s.Project.Name, m.width-2)

	lanes := m.lanes.Render(m.lanesView(), m.width-2, lanesHeight, true)

	used := map[string]int{}
	for _, c := range tl.Clips() {
		used[c.MediaID]++
	}
	format := func(sec float64) string { return m.tc(timecode.FromSeconds(sec)) }
	bin := m.bin.Render(tl.Catalog(), used, format, leftWidth-2, bottomHeight-2)
	edits := m.editLog.Render(m.entries, rightWidth-2, bottomHeight-2)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top, bin, edits)
	return lipgloss.JoinVertical(lipgloss.Left, bar, lanes, bottom, m.renderStatusBar())
}

func (m Model) lanesView() components.LanesView {
	tl := m.ed.session.Timeline
	v := components.LanesView{
		Markers:  m.ed.session.Timeline.Snapshot().Markers,
		Playhead: m.ed.session.Transport.Time().Seconds(),
		Zoom:     m.ed.session.Transport.Zoom(),
		Selected: m.ed.disp.Session.Selected,
		Audible:  tl.Audible(),
	}
	for _, tr := range tl.Tracks() {
		lane := components.Lane{Track: tr}
		for _, c := range tl.TrackClips(tr.ID) {
			label := c.MediaID
			if item := tl.Catalog().Lookup(c.MediaID); item != nil {
				label = item.Name
			}
			lane.Clips = append(lane.Clips, components.LaneClip{
				ID:    c.ID,
				Label: label,
				Start: c.Start.Seconds(),
				End:   c.End().Seconds(),
			})
		}
		v.Lanes = append(v.Lanes, lane)
	}
	return v
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())
	switch {
	case m.lastError != nil:
		status = styles.ErrorText.Render(strings.ReplaceAll(errors.Format(m.lastError), "\n\n", "  "))
	case m.message != "":
		status = styles.Muted.Render(m.message) + "  " + status
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := styles.Title.Render("Maestro - Keyboard Shortcuts")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		styles.Dim.Render("Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(body))
}

// Run starts the editor and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	model := NewModel(opts)
	if opts.Store != nil {
		changes, err := opts.Store.Watch(ctx)
		if err != nil {
			opts.Logger.Warn("project watch disabled", zap.Error(err))
		} else {
			model.changes = changes
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// marks renders whichever of the in and out marks are set.
func (m Model) marks() string {
	sess := m.ed.disp.Session
	in, out := "--", "--"
	if sess.HasIn {
		in = m.tc(sess.In)
	}
	if sess.HasOut {
		out = m.tc(sess.Out)
	}
	if !sess.HasIn && !sess.HasOut {
		return ""
	}
	return in + " - " + out
}
