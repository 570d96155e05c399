package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"shelf/internal/browser"
	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/debounce"
	"shelf/internal/domain"
	"shelf/internal/eventbus"
	"shelf/internal/ui/input"
	inputtypes "shelf/internal/ui/input/types"
	"shelf/internal/ui/logic"
	"shelf/internal/ui/views"
)

const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	ctx   context.Context
	bus   eventbus.EventBus
	api   catalog.ProductAPI
	cfg   *config.Config
	state browser.State // owned by the reducer; replaced, never mutated

	// UI-specific state
	width          int
	height         int
	cursor         int
	viewportOffset int
	help           help.Model
	keys           inputtypes.KeyMap
	searchKeys     inputtypes.SearchKeyMap
	spinner        spinner.Model
	statusMessage  string
	statusSeq      int

	// Search debouncing
	debounceDelay time.Duration
	debouncer     *debounce.Debouncer[string]
	queries       chan string   // debounced queries from the timer goroutine
	done          chan struct{} // closed on shutdown
	closeOnce     sync.Once
	typed         string // last text reported by the search box

	cancelFetch context.CancelFunc // cancels the in-flight request, if any

	// Handlers
	navigator    *logic.Navigator
	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, api catalog.ProductAPI) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	keys := inputtypes.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := &Model{
		ctx:           ctx,
		bus:           bus,
		api:           api,
		cfg:           cfg,
		state:         browser.New(cfg.Browse.PageSize),
		help:          help.New(),
		keys:          keys,
		searchKeys:    inputtypes.DefaultSearchKeyMap(),
		spinner:       sp,
		debounceDelay: cfg.DebounceDelay(),
		queries:       make(chan string, 1),
		done:          make(chan struct{}),
		navigator:     logic.NewNavigator(),
		renderer:      views.NewRenderer(),
		inputHandler:  input.New(keys),
	}
	m.spinner.Style = m.renderer.Styles().StatusLoading

	queries, done := m.queries, m.done
	m.debouncer = debounce.New(m.debounceDelay, func(q string) {
		select {
		case queries <- q:
		case <-done:
		}
	})
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPager(p)
}

// State returns a snapshot of the browser state
func (m *Model) State() browser.State {
	return m.state
}

// Init starts the spinner, the query listener and the first fetch
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.listenForQueries(),
		m.dispatch(browser.Mounted{}),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncNavigator()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state, Cursor: m.cursor}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case queryCommittedMsg:
		return m, tea.Batch(m.commitQuery(msg.query), m.listenForQueries())

	case fetchResultMsg:
		return m, m.handleFetchResult(msg)

	case pagerMsg:
		if msg.err != nil {
			slog.Warn("Failed to open product details", "product", msg.productID, "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Could not open details: %v", msg.err))
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	searching := m.inputHandler.CurrentMode() == inputtypes.ModeSearch
	helpView := m.help.View(m.keys)
	if searching {
		helpView = m.help.View(m.searchKeys)
	}

	state := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Query:           m.state.Query,
		SearchActive:    searching,
		SearchPrompt:    m.inputHandler.Prompt(),
		Products:        m.state.Products,
		Status:          m.state.Status,
		Page:            m.state.Page,
		TotalPages:      m.state.TotalPages,
		CanLoadMore:     m.state.CanLoadMore(),
		LoadMoreEnabled: m.state.LoadMoreEnabled(),
		Cursor:          m.cursor,
		ViewportOffset:  m.viewportOffset,
		ViewportHeight:  m.listHeight(),
		Spinner:         m.spinner.View(),
		SkeletonRows:    m.cfg.UISettings.SkeletonRows,
		ShowPrices:      m.cfg.UISettings.ShowPrices,
		StatusMessage:   m.statusMessage,
		Help:            helpView,
		Err:             m.state.Err,
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.SearchInput = ti.View()
	}
	return m.renderer.Render(state)
}

// Close stops the debouncer and cancels any in-flight request
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.debouncer.Stop()
		close(m.done)
		if m.cancelFetch != nil {
			m.cancelFetch()
		}
	})
}

// processAction executes an action and returns any resulting command
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		if a.Text == m.typed {
			return nil
		}
		m.typed = a.Text
		if m.debounceDelay <= 0 {
			return m.commitQuery(a.Text)
		}
		m.debouncer.Trigger(a.Text)

	case inputtypes.SubmitTextAction:
		if q, ok := m.debouncer.Take(); ok {
			return m.commitQuery(q)
		}

	case inputtypes.CancelTextAction:
		m.debouncer.Cancel()
		m.typed = m.state.Query

	case inputtypes.ClearQueryAction:
		m.debouncer.Cancel()
		m.inputHandler.SetText("")
		return m.commitQuery("")

	case inputtypes.LoadMoreAction:
		return m.dispatch(browser.LoadMoreRequested{})

	case inputtypes.ReloadAction:
		return m.dispatch(browser.Reloaded{})

	case inputtypes.OpenDetailsAction:
		return m.openDetails(a.Index)

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// dispatch runs an event through the reducer and starts the fetch it asks for
func (m *Model) dispatch(ev browser.Event) tea.Cmd {
	next, req := browser.Reduce(m.state, ev)
	m.state = next
	m.syncNavigator()
	if req == nil {
		return nil
	}
	return m.fetch(*req)
}

// commitQuery applies a settled search query
func (m *Model) commitQuery(q string) tea.Cmd {
	m.typed = q
	m.cursor, m.viewportOffset = 0, 0
	m.publish(eventbus.QueryChangedEvent{Query: q})
	return m.dispatch(browser.QueryChanged{Query: q})
}

// fetch cancels the previous request and returns a command loading req
func (m *Model) fetch(req browser.Request) tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFetch = cancel

	m.publish(eventbus.FetchStartedEvent{
		Generation: req.Generation,
		Query:      req.Query,
		Page:       req.Page,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})

	api := m.api
	return func() tea.Msg {
		defer cancel()
		page, err := api.Search(ctx, catalog.Query{Text: req.Query, Limit: req.Limit, Offset: req.Offset})
		return fetchResultMsg{req: req, page: page, err: err}
	}
}

// handleFetchResult feeds a response to the reducer, dropping stale ones
func (m *Model) handleFetchResult(msg fetchResultMsg) tea.Cmd {
	current := m.state.Pending() && m.state.Generation == msg.req.Generation
	if !current {
		slog.Debug("Discarding stale product page",
			"generation", msg.req.Generation,
			"current", m.state.Generation,
			"query", msg.req.Query,
			"page", msg.req.Page)
		return nil
	}

	var ev browser.Event
	if msg.err != nil {
		ev = browser.FetchFailed{Generation: msg.req.Generation, Err: msg.err}
	} else {
		ev = browser.FetchSucceeded{Generation: msg.req.Generation, Page: msg.page}
	}
	cmd := m.dispatch(ev)

	switch m.state.Status {
	case browser.StatusResolved:
		m.publish(eventbus.PageLoadedEvent{
			Query:      m.state.Query,
			Page:       m.state.Page,
			TotalPages: m.state.TotalPages,
			Items:      len(msg.page.Items),
			Total:      msg.page.Total,
		})
	case browser.StatusRejected:
		err := msg.err
		if err == nil {
			err = domain.ErrNoMatches
		}
		m.publish(eventbus.FetchFailedEvent{
			Query: m.state.Query,
			Page:  m.state.Page,
			Kind:  domain.ErrorKind(err),
			Err:   err,
		})
	}
	return cmd
}

// listenForQueries waits for the next debounced query
func (m *Model) listenForQueries() tea.Cmd {
	queries, done := m.queries, m.done
	return func() tea.Msg {
		select {
		case q := <-queries:
			return queryCommittedMsg{query: q}
		case <-done:
			return nil
		}
	}
}

// openDetails shows the product at index in the pager
func (m *Model) openDetails(index int) tea.Cmd {
	if index < 0 || index >= len(m.state.Products) {
		return nil
	}
	product := m.state.Products[index]
	content := m.renderer.RenderProductDetails(product, m.cfg.UISettings.ShowPrices)
	pager := m.pager
	return func() tea.Msg {
		return pagerMsg{productID: product.ID, err: pager.Show(content)}
	}
}

// setStatus shows a transient message below the list
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	m.statusMessage = msg
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) navigate(direction string) {
	m.syncNavigator()
	switch direction {
	case "up":
		m.cursor, m.viewportOffset = m.navigator.Move(-1)
	case "down":
		m.cursor, m.viewportOffset = m.navigator.Move(1)
	case "pageup":
		m.cursor, m.viewportOffset = m.navigator.PageUp()
	case "pagedown":
		m.cursor, m.viewportOffset = m.navigator.PageDown()
	case "home":
		m.cursor, m.viewportOffset = m.navigator.Home()
	case "end":
		m.cursor, m.viewportOffset = m.navigator.End()
	}
}

// syncNavigator re-clamps the cursor after the list or terminal changed
func (m *Model) syncNavigator() {
	m.navigator.UpdateState(m.cursor, m.viewportOffset, m.listHeight(), len(m.state.Products))
	m.cursor = m.navigator.GetSelectedIndex()
	m.viewportOffset = m.navigator.GetViewportOffset()
}

// listHeight is the number of product rows that fit on screen
func (m *Model) listHeight() int {
	if m.height == 0 {
		return 10
	}
	// padding, title, search, gaps, scroll indicators, button, footer, status, help
	reserved := 15
	if m.state.Pending() {
		reserved += m.cfg.UISettings.SkeletonRows
	}
	if m.help.ShowAll {
		reserved += 5
	}
	if h := m.height - reserved; h > 3 {
		return h
	}
	return 3
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
