package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"multipick/internal/config"
	"multipick/internal/eventbus"
	"multipick/internal/selection"
	"multipick/internal/ui/logic"
	"multipick/internal/ui/views"
)

// E2EEnv makes the view print views.ReadyMarker once the first listing is in
const E2EEnv = "MULTIPICK_E2E_TEST"

const (
	wheelStep     = 3
	statusTimeout = 5 * time.Second
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	root   string

	host      *listHost
	signals   *selection.Signals
	container *selection.Container

	width       int
	height      int
	offset      int
	keys        keyMap
	help        help.Model
	filterInput textinput.Model
	filtering   bool

	scanning      bool
	scanSeq       uint64
	loaded        bool
	statusMessage string
	statusIsError bool
	inPagerMode   bool
	showReady     bool

	pressHit *views.Hit // where the left button went down
	lastMods selection.ModifierState
	confirm  []string

	renderer *views.Renderer
	helpOps  *HelpOps
	program  *tea.Program
}

// NewModel creates a picker for the entries of root. The listing arrives
// later as an ItemsScanned event.
func NewModel(bus eventbus.EventBus, cfg *config.Config, root string) *Model {
	signals := selection.NewSignals()
	host := newListHost(cfg.Include, cfg.ShowHidden, cfg.CancelZones)

	filterInput := textinput.New()
	filterInput.Prompt = "/"
	filterInput.Placeholder = "name or type:dir"

	m := &Model{
		bus:         bus,
		config:      cfg,
		root:        root,
		host:        host,
		signals:     signals,
		keys:        newKeyMap(),
		help:        help.New(),
		filterInput: filterInput,
		scanning:    true,
		showReady:   os.Getenv(E2EEnv) == "1",
		renderer:    views.NewRenderer(),
		helpOps:     NewHelpOps(),
	}

	m.container = selection.New(selection.Options{
		Host:      host,
		Document:  signals,
		Globals:   signals,
		Modifiers: selection.NewModifierTracker(multiKey(cfg.MultiKey)),
		OnChange:  m.onSelectionChange,
	})
	return m
}

func multiKey(name string) selection.Key {
	switch name {
	case config.MultiKeyCtrl:
		return selection.KeyControl
	case config.MultiKeyMeta:
		return selection.KeyMeta
	default:
		return selection.DetectPlatform().MultiKey()
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// Root returns the directory being listed
func (m *Model) Root() string {
	return m.root
}

// Selected returns the selected paths in listing order
func (m *Model) Selected() []string {
	return paths(m.container.SelectedItems())
}

// Confirmed returns the paths chosen with enter, or nil when the user quit
func (m *Model) Confirmed() []string {
	return m.confirm
}

// Close detaches the selection from the screen
func (m *Model) Close() {
	m.container.Close()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m, m.handleFilterKey(msg)
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.BlurMsg:
		m.signals.EmitBlur()
		m.publishModifiers()
		return m, nil

	case tea.FocusMsg:
		return m, nil

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// Keep the spinner moving only while there is something to show
		if !m.scanning || m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			return m, m.setStatus(fmt.Sprintf("help: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.scanning {
			return m, tick()
		}
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	default:
		return m, nil
	}
}

// handleEvent applies a domain event forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		if e.Root == m.root {
			m.scanning = true
			return tick()
		}

	case eventbus.ItemsScannedEvent:
		if e.Root != m.root {
			log.Printf("Ignoring stale listing of %s", e.Root)
			return nil
		}
		// The old listing's selection belongs to items that are gone
		m.container.ClearSelection(nil, true)
		m.host.setItems(e.Items)
		m.offset = 0
		m.loaded = true

	case eventbus.ScanCompletedEvent:
		if e.Root == m.root {
			m.scanning = false
			m.loaded = true
		}

	case eventbus.ErrorEvent:
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return m.setStatus(msg, true)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.host.filter != "" {
			m.setFilter("")
			return nil
		}
		return tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.confirm = m.Selected()
		m.publish(eventbus.SelectionConfirmedEvent{Paths: m.confirm})
		return tea.Quit

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.host.filter)
		m.filterInput.CursorEnd()
		return m.filterInput.Focus()

	case key.Matches(msg, m.keys.Hidden):
		m.host.showHidden = !m.host.showHidden
		m.clampOffset()
		if m.host.showHidden {
			return m.setStatus("Showing dotfiles", false)
		}
		return m.setStatus("Hiding dotfiles", false)

	case key.Matches(msg, m.keys.Sort):
		m.host.setSort(m.host.sortMode.Next())
		return nil

	case key.Matches(msg, m.keys.Parent):
		if parent := filepath.Dir(m.root); parent != m.root {
			return m.changeDir(parent)
		}
		return nil

	case key.Matches(msg, m.keys.Help):
		return m.showHelp()

	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(-1)
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-m.layout().ListHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(m.layout().ListHeight())

	default:
		if method, ok := m.config.Keys[msg.String()]; ok {
			changed := m.container.Invoke(method, nil)
			log.Printf("Key %s invoked %s (%d items)", msg.String(), method, len(changed))
		}
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return nil
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.setFilter("")
		return nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.host.filter = m.filterInput.Value()
	m.clampOffset()
	return cmd
}

func (m *Model) setFilter(query string) {
	m.filterInput.SetValue(query)
	m.host.filter = query
	m.clampOffset()
}

// handleMouse turns terminal mouse reports into press and release gestures.
// The item handler runs before the screen-wide release so the outside click
// guard sees whether the release was consumed.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	m.syncModifiers(msg.Shift, msg.Ctrl, msg.Alt)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scroll(wheelStep)
		return nil
	}

	_, ids := m.host.rows()
	hit := m.layout().HitTest(msg.X, msg.Y)
	id := m.itemAt(hit, ids)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		ev := &selection.Event{Phase: selection.PhasePress, Pointer: selection.PointerMouse, Target: hit}
		if id != "" {
			m.container.Press(id, ev)
		}
		m.pressHit = &hit
		return nil

	case tea.MouseActionRelease:
		// X10 reports do not name the released button; only a pending left
		// press makes such a release ours.
		if msg.Button != tea.MouseButtonLeft &&
			(msg.Button != tea.MouseButtonNone || m.pressHit == nil) {
			return nil
		}
		ev := &selection.Event{Phase: selection.PhaseRelease, Pointer: selection.PointerMouse, Target: hit}
		if id != "" {
			m.container.Release(id, ev)
		}
		m.signals.EmitRelease(ev)

		pressed := m.pressHit
		m.pressHit = nil
		if hit.Region == views.RegionButton && pressed != nil &&
			pressed.Row == hit.Row && pressed.Button == hit.Button {
			return m.activateButton(ids[hit.Row], hit.Button)
		}
	}
	return nil
}

// itemAt returns the selectable item under hit, or "" for anything else
func (m *Model) itemAt(hit views.Hit, ids []selection.ItemID) selection.ItemID {
	if hit.Row < 0 || hit.Row >= len(ids) {
		return ""
	}
	item, ok := m.host.item(ids[hit.Row])
	if !ok || !m.host.selectable(item) {
		return ""
	}
	return ids[hit.Row]
}

// syncModifiers replays the modifier bits carried by a mouse report as key
// transitions; terminals never report modifier keys on their own
func (m *Model) syncModifiers(shift, ctrl, alt bool) {
	m.signals.EmitKey(selection.KeyTransition{Key: selection.KeyShift, Down: shift})
	m.signals.EmitKey(selection.KeyTransition{Key: selection.KeyControl, Down: ctrl})
	m.signals.EmitKey(selection.KeyTransition{Key: selection.KeyMeta, Down: alt})
	m.publishModifiers()
}

func (m *Model) publishModifiers() {
	state := m.container.Modifiers().State()
	if state == m.lastMods {
		return
	}
	m.lastMods = state
	m.publish(eventbus.ModifiersChangedEvent{RangeHeld: state.RangeHeld, MultiHeld: state.MultiHeld})
}

func (m *Model) activateButton(id selection.ItemID, button string) tea.Cmd {
	item, ok := m.host.item(id)
	if !ok {
		return nil
	}

	switch button {
	case views.ButtonOpen:
		if item.IsDir {
			return m.changeDir(item.Path)
		}
	case views.ButtonInfo:
		kind := "file"
		if item.IsDir {
			kind = "dir"
		}
		return m.setStatus(fmt.Sprintf("%s  %s  %s  %s  modified %s",
			item.DisplayName(), kind, humanize.Bytes(uint64(item.Size)),
			item.Mode, humanize.Time(item.ModTime)), false)
	}
	return nil
}

// changeDir asks discovery for another listing. The current one stays on
// screen until the new items arrive.
func (m *Model) changeDir(dir string) tea.Cmd {
	log.Printf("Changing directory to %s", dir)
	m.root = dir
	m.scanning = true
	m.setFilter("")
	m.scanSeq++
	m.publish(eventbus.ScanRequestedEvent{Root: dir, Seq: m.scanSeq})
	return tick()
}

func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		return m.setStatus("help is not available", true)
	}
	md := helpMarkdown(m.keys, m.config.Keys, m.container.Modifiers().MultiKey())
	width := m.width
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(md, width)
		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) onSelectionChange(ch selection.Change) {
	m.publish(eventbus.SelectionChangedEvent{
		Selected:   paths(ch.Selected),
		Deselected: paths(ch.Deselected),
		Total:      len(ch.Selection),
	})
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// setStatus shows a message on the status line for a while
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMessage = msg
	m.statusIsError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) clampOffset() {
	m.offset = max(0, min(m.offset, m.layout().MaxOffset()))
}

func (m *Model) layout() views.Layout {
	return m.viewState().Layout()
}

func (m *Model) viewState() views.ViewState {
	rows, _ := m.host.rows()
	state := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Root:            m.root,
		Rows:            rows,
		Offset:          m.offset,
		Scanning:        m.scanning,
		StatusMessage:   m.statusMessage,
		StatusIsError:   m.statusIsError,
		SelectedCount:   len(m.container.SelectedItems()),
		SelectableCount: len(m.container.SelectableItems()),
		FilterQuery:     m.host.filter,
		HelpView:        m.help.View(m.keys),
		ShowReady:       m.showReady && m.loaded,
	}
	if m.host.sortMode != logic.SortByName {
		state.SortLabel = m.host.sortMode.String()
	}
	if m.filtering {
		state.FilterInput = m.filterInput.View()
	}
	return state
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func paths(ids []selection.ItemID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
