// Package tui implements the interactive notification board.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/backend"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/config"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

// Deps contains the services the board depends on.
type Deps struct {
	Config     *config.Config
	Dispatcher *admin.Dispatcher
	Alerts     *alert.Bus
	BuildInfo  admin.BuildInfo
}

// refreshedMsg is sent when a list fetch finishes.
type refreshedMsg struct {
	err error
}

// actionDoneMsg is sent when a dispatcher action finishes. Feedback has
// already been published on the alert bus.
type actionDoneMsg struct {
	action Action
	err    error
}

// Model is the bubbletea model of the notification board.
type Model struct {
	ctx        context.Context
	cfg        *config.Config
	dispatcher *admin.Dispatcher
	board      *admin.Board
	build      admin.BuildInfo

	handler *KeybindingHandler
	keys    navKeys
	help    help.Model

	alerts *AlertBuffer
	toasts *ToastController

	width  int
	height int
	cursor int

	loading     bool
	busy        bool
	pending     *Action
	showHelp    bool
	authExpired bool

	// pollGen invalidates poll ticks scheduled before a lane switch.
	pollGen int
}

// New creates the board model. Alerts published on deps.Alerts are shown as
// toasts.
func New(ctx context.Context, deps Deps) Model {
	buf := NewAlertBuffer()
	deps.Alerts.Subscribe(buf.Push)

	return Model{
		ctx:        ctx,
		cfg:        deps.Config,
		dispatcher: deps.Dispatcher,
		board:      deps.Dispatcher.Board(),
		build:      deps.BuildInfo,
		handler:    NewKeybindingHandler(deps.Config.Keybindings),
		keys:       defaultNavKeys(),
		help:       help.New(),
		alerts:     buf,
		toasts:     NewToastController(deps.Config.TUI.ToastTTL),
		loading:    true,
	}
}

// AuthExpired reports whether the board quit because the backend rejected
// the session.
func (m Model) AuthExpired() bool {
	return m.authExpired
}

// Init starts the first fetch, the poll loop and the alert listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		schedulePollTick(m.cfg.Board.PollInterval, m.pollGen),
		m.alerts.WaitForSignal(),
	)
}

// Update handles incoming messages and returns an updated model and command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshedMsg:
		m.loading = false
		m.clampCursor()
		if backend.IsAuthError(msg.err) {
			m.authExpired = true
			return m, tea.Quit
		}
		return m, nil

	case actionDoneMsg:
		// Only destructive actions set busy; a read toggle finishing
		// mid-delete must not release it.
		if msg.action.Destructive() {
			m.busy = false
		}
		m.clampCursor()
		if backend.IsAuthError(msg.err) {
			m.authExpired = true
			return m, tea.Quit
		}
		return m, nil

	case pollTickMsg:
		if msg.gen != m.pollGen {
			return m, nil
		}
		cmds := []tea.Cmd{schedulePollTick(m.cfg.Board.PollInterval, m.pollGen)}
		if !m.busy {
			cmds = append(cmds, m.refresh())
		}
		return m, tea.Batch(cmds...)

	case drainAlertsMsg:
		for _, a := range m.alerts.Drain() {
			m.toasts.Push(a)
		}
		cmds := []tea.Cmd{m.alerts.WaitForSignal()}
		if m.toasts.HasToasts() && !m.toasts.Ticking() {
			m.toasts.SetTicking(true)
			cmds = append(cmds, scheduleToastTick())
		}
		return m, tea.Batch(cmds...)

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if !m.toasts.HasToasts() {
			m.toasts.SetTicking(false)
			return m, nil
		}
		return m, scheduleToastTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if m.pending != nil {
		return m.handleConfirmKey(k)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case k == "esc":
		m.toasts.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.board.Visible())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.board.PrevPage()
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.board.NextPage()
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Lane):
		return m.switchLane()
	case key.Matches(msg, m.keys.Toggle):
		if g, ok := m.current(); ok {
			if g.RecipientCount > 1 {
				m.board.ToggleGroup(g)
			} else {
				m.board.Toggle(g.Representative.ID)
			}
		}
		return m, nil
	}

	action, ok := m.handler.Resolve(k)
	if !ok {
		return m, nil
	}
	if action.NeedsConfirm() {
		if !m.canRun(action) {
			return m, nil
		}
		m.pending = &action
		return m, nil
	}
	return m.execute(action)
}

func (m Model) handleConfirmKey(k string) (tea.Model, tea.Cmd) {
	action := *m.pending
	m.pending = nil

	switch k {
	case "y", "Y", "enter":
		return m.execute(action)
	default:
		return m, nil
	}
}

// canRun reports whether action has something to act on, publishing a hint
// when it does not.
func (m Model) canRun(action Action) bool {
	switch action.Type {
	case ActionTypeDeleteSelected:
		if len(m.board.Selected()) == 0 {
			m.alerts.Push(alert.Alert{Level: alert.LevelWarning, Message: "No notifications selected"})
			return false
		}
	case ActionTypeDeleteEntry, ActionTypeToggleRead:
		if _, ok := m.current(); !ok {
			return false
		}
	case ActionTypeDeleteAll:
		if len(m.board.Entries(m.board.Lane())) == 0 {
			return false
		}
	}
	return true
}

func (m Model) execute(action Action) (tea.Model, tea.Cmd) {
	switch action.Type {
	case ActionTypeRefresh:
		m.loading = true
		return m, m.refresh()

	case ActionTypeSelectAll:
		m.board.SelectAllVisible()
		return m, nil

	case ActionTypeToggleRead:
		g, ok := m.current()
		if !ok {
			return m, nil
		}
		if g.RecipientCount > 1 {
			m.alerts.Push(alert.Alert{Level: alert.LevelInfo, Message: "Read state applies to single notifications"})
			return m, nil
		}
		r := g.Representative
		return m, m.run(action, func(ctx context.Context) error {
			return m.dispatcher.MarkRead(ctx, r.ID, !r.Read)
		})
	}

	if action.Destructive() && m.busy {
		m.alerts.Push(alert.Alert{Level: alert.LevelWarning, Message: admin.ErrBusy.Error()})
		return m, nil
	}

	switch action.Type {
	case ActionTypeDeleteEntry:
		g, ok := m.current()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, m.run(action, func(ctx context.Context) error {
			var err error
			if g.RecipientCount > 1 {
				_, err = m.dispatcher.DeleteGroup(ctx, g)
			} else {
				_, err = m.dispatcher.DeleteSingle(ctx, g.Representative.ID)
			}
			return err
		})

	case ActionTypeDeleteSelected:
		m.busy = true
		return m, m.run(action, func(ctx context.Context) error {
			_, err := m.dispatcher.DeleteSelected(ctx)
			return err
		})

	case ActionTypeDeleteAll:
		lane := m.board.Lane()
		m.busy = true
		return m, m.run(action, func(ctx context.Context) error {
			_, err := m.dispatcher.DeleteAll(ctx, lane)
			return err
		})
	}

	return m, nil
}

func (m Model) switchLane() (tea.Model, tea.Cmd) {
	m.board.SetLane(m.board.Lane().Other())
	m.cursor = 0
	m.loading = true
	m.pollGen++
	return m, tea.Batch(
		m.refresh(),
		schedulePollTick(m.cfg.Board.PollInterval, m.pollGen),
	)
}

func (m Model) refresh() tea.Cmd {
	d := m.dispatcher
	ctx := m.ctx
	return func() tea.Msg {
		return refreshedMsg{err: d.Refresh(ctx)}
	}
}

func (m Model) run(action Action, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

// current returns the entry under the cursor.
func (m Model) current() (notification.Group, bool) {
	visible := m.board.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return notification.Group{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.board.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// helpKeys adapts the board bindings to help.KeyMap.
type helpKeys struct {
	nav     navKeys
	actions []key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding {
	return h.nav.short()
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.nav.all(), h.actions}
}

// clock is replaced in tests.
var clock = time.Now
