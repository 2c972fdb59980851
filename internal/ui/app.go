package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/logging"
	"github.com/five82/tailpane/internal/pane"
	"github.com/five82/tailpane/internal/prefs"
	"github.com/five82/tailpane/internal/state"
)

const (
	statsTick = 500 * time.Millisecond
	wheelRows = 3
	// header, status and help lines around the pane body
	chromeRows = 3
)

// Pacer controls how fast the demo producers write.
type Pacer interface {
	Interval() time.Duration
	Faster() time.Duration
	Slower() time.Duration
}

// Options configures the UI.
type Options struct {
	Loop      *eventloop.Loop
	Pane      *pane.Pane
	Store     *state.Store
	Pacer     Pacer
	Logger    logrus.FieldLogger
	ThemeName string
	Prefs     prefs.Prefs
	PrefsPath string
	Clipboard io.Writer // OSC 52 destination; nil uses stdout
}

// Model is the root application state for Bubble Tea. Its Update goroutine is
// the pane's loop goroutine.
type Model struct {
	// Configuration
	ctx       context.Context
	loop      *eventloop.Loop
	pane      *pane.Pane
	store     *state.Store
	pacer     Pacer
	log       logrus.FieldLogger
	prefs     prefs.Prefs
	prefsPath string
	clipboard io.Writer

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	dragging bool
	heap     uint64
	flash    string
}

// New creates a new Bubble Tea model.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = os.Stdout
	}

	return Model{
		ctx:       ctx,
		loop:      opts.Loop,
		pane:      opts.Pane,
		store:     opts.Store,
		pacer:     opts.Pacer,
		log:       logging.OrDiscard(opts.Logger),
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		clipboard: clipboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForWake(m.ctx, m.loop),
		tickCmd(statsTick),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wakeMsg:
		m.loop.Drain()
		return m, waitForWake(m.ctx, m.loop)

	case tickMsg:
		return m.handleTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.pane.Relayout(m.bodyWidth(), m.bodyRows())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case copiedMsg:
		if msg.err != nil {
			m.flash = "copy failed"
			m.log.WithError(msg.err).Warn("copy to clipboard failed")
		} else {
			m.flash = pluralRows(msg.rows) + " copied"
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderBody())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles().Footer.Width(m.width).Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.store != nil {
		m.store.Update(m.pane.Stats())
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.heap = mem.HeapAlloc
	return m, tickCmd(statsTick)
}

// handleKey processes keyboard input. Every scroll goes through the pane as a
// short drag so auto-tail follows the knob.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTracking):
		on := !m.pane.Tracking()
		m.pane.SetTracking(on)
		m.prefs = m.prefs.WithTracking(on)
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.pane.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		rows := m.pane.Visible()
		return m, copyCmd(m.clipboard, strings.Join(rows, "\n"), len(rows))

	case key.Matches(msg, m.keys.Faster):
		if m.pacer != nil {
			m.flash = "every " + m.pacer.Faster().String()
		}
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		if m.pacer != nil {
			m.flash = "every " + m.pacer.Slower().String()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.pane.ScrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.pane.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.pane.ScrollBy(-max(m.bodyRows()-1, 1))
	case key.Matches(msg, m.keys.PageDown):
		m.pane.ScrollBy(max(m.bodyRows()-1, 1))
	case key.Matches(msg, m.keys.Top):
		m.pane.ScrollToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.pane.ScrollToEnd()
	}
	return m, nil
}

// handleMouse scrolls on the wheel and drags the knob with the left button on
// the scrollbar column. A knob drag keeps the range adjusting until release.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row := msg.Y - 1
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.pane.ScrollBy(-wheelRows)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.pane.ScrollBy(wheelRows)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.X != m.bodyWidth() || row < 0 || row >= m.bodyRows() {
			return m, nil
		}
		m.dragging = true
		m.pane.BeginDrag()
		m.pane.DragTo(valueAt(m.pane.Range().Snapshot(), m.bodyRows(), row))

	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.pane.DragTo(valueAt(m.pane.Range().Snapshot(), m.bodyRows(), row))

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		m.pane.EndDrag()
	}
	return m, nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

func (m Model) bodyWidth() int {
	return max(m.width-1, 0)
}

func (m Model) bodyRows() int {
	return max(m.height-chromeRows, 0)
}

func (m Model) styles() Styles {
	return m.theme.Styles()
}

// Messages

type tickMsg time.Time

type wakeMsg struct{}

type copiedMsg struct {
	rows int
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForWake blocks until the loop has work queued, so scheduled pane tasks
// run inside Update.
func waitForWake(ctx context.Context, loop *eventloop.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-loop.Wake():
			return wakeMsg{}
		}
	}
}

// Run starts the Bubble Tea program. The calling goroutine becomes the pane's
// loop goroutine for the life of the program.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithMouseCellMotion())
	opts.Loop.Bind()
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
