// Package tui is the operator console: a list view over the tenant's content
// records, a detail view with audit trail and transition panel, and a local
// history of submitted transitions. All backend access goes through the typed
// api client; every fetch is a tea.Cmd resolving to a typed message.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/contentdeck/internal/api"
	"github.com/jask/contentdeck/internal/config"
	"github.com/jask/contentdeck/internal/database/repository"
	"github.com/jask/contentdeck/internal/service"
)

// App ties together views.
type App struct {
	ctx     context.Context
	client  *api.Client
	journal *service.JournalService
	cfg     config.Config
	logger  *zap.Logger

	view   viewState
	width  int
	height int
	status string

	backendVersion string

	// list view
	page        api.ContentListPage
	query       api.ListQuery
	listCursor  int
	listLoading bool
	listErr     string
	spin        spinner.Model

	// search
	searching   bool
	searchInput textinput.Model

	// create modal
	creating   bool
	titleInput textinput.Model
	newTier    int

	// detail view: loadSeq stamps every fan-out message so a load abandoned by
	// navigation can never mutate the view it no longer belongs to.
	detailID      string
	loadSeq       int
	detailItem    *api.ContentItem
	detailAllowed *api.AllowedTransitions
	detailEvents  []api.ContentEvent
	eventsLoaded  bool
	detailErr     string
	panel         transitionPanel

	// history view
	entries []repository.JournalEntry
}

type viewState string

const (
	viewList    viewState = "list"
	viewDetail  viewState = "detail"
	viewHistory viewState = "history"
)

func New(ctx context.Context, cfg config.Config, client *api.Client, journal *service.JournalService, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	search := textinput.New()
	search.Placeholder = "search title"
	search.CharLimit = 120

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pageSize := cfg.UI.PageSize
	if pageSize <= 0 {
		pageSize = api.DefaultLimit
	}
	sort := cfg.UI.Sort
	if sort == "" {
		sort = api.DefaultSort
	}

	return &App{
		ctx:         ctx,
		client:      client,
		journal:     journal,
		cfg:         cfg,
		logger:      logger,
		view:        viewList,
		query:       api.ListQuery{Limit: pageSize, Sort: sort},
		searchInput: search,
		titleInput:  title,
		newTier:     1,
		spin:        sp,
	}
}

func (a *App) Init() tea.Cmd {
	a.listLoading = true
	return tea.Batch(a.loadList(), a.loadHealth(), a.spin.Tick)
}

// commands

func (a *App) loadList() tea.Cmd {
	q := a.query
	return func() tea.Msg {
		page, err := a.client.ListContent(a.ctx, q)
		if err != nil {
			return listErrMsg{err}
		}
		return listPageMsg(page)
	}
}

func (a *App) loadHealth() tea.Cmd {
	return func() tea.Msg {
		h, err := a.client.Health(a.ctx)
		if err != nil {
			// backend down is not fatal; the list fetch reports its own error
			return healthMsg{}
		}
		return healthMsg{version: h.Version, ok: h.OK}
	}
}

// loadDetail issues the composite fan-out: item, allowed transitions and
// events are fetched concurrently and the view renders only when all three
// have resolved.
func (a *App) loadDetail(id string) tea.Cmd {
	a.loadSeq++
	seq := a.loadSeq
	a.detailItem = nil
	a.detailAllowed = nil
	a.detailEvents = nil
	a.eventsLoaded = false
	a.detailErr = ""
	return tea.Batch(
		func() tea.Msg {
			item, err := a.client.GetContent(a.ctx, id)
			if err != nil {
				return detailErrMsg{seq: seq, detail: api.Detail(err)}
			}
			return detailItemMsg{seq: seq, item: item}
		},
		func() tea.Msg {
			allowed, err := a.client.GetAllowed(a.ctx, id)
			if err != nil {
				return detailErrMsg{seq: seq, detail: api.Detail(err)}
			}
			return detailAllowedMsg{seq: seq, allowed: allowed}
		},
		func() tea.Msg {
			events, err := a.client.GetEvents(a.ctx, id)
			if err != nil {
				return detailErrMsg{seq: seq, detail: api.Detail(err)}
			}
			return detailEventsMsg{seq: seq, events: events}
		},
	)
}

func (a *App) submitTransition(contentID, fromState, toState string) tea.Cmd {
	seq := a.loadSeq
	return func() tea.Msg {
		outcome, err := a.client.Transition(a.ctx, contentID, api.TransitionRequest{ToState: toState})
		if err != nil {
			detail := api.Detail(err)
			a.journal.RecordFailure(a.ctx, contentID, fromState, toState, detail)
			return transitionFailedMsg{seq: seq, detail: detail}
		}
		a.journal.RecordOutcome(a.ctx, outcome)
		return transitionDoneMsg{seq: seq, outcome: outcome}
	}
}

func (a *App) createContent(title string, tier int) tea.Cmd {
	return func() tea.Msg {
		item, err := a.client.CreateContent(a.ctx, api.CreateContentRequest{Title: title, RiskTier: tier})
		if err != nil {
			return statusMsg("create failed: " + api.Detail(err))
		}
		return createdMsg(item)
	}
}

func (a *App) loadJournal() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.journal.Recent(a.ctx, 50)
		if err != nil {
			return statusMsg("history unavailable: " + err.Error())
		}
		return journalMsg(entries)
	}
}

// update

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height

	case tea.KeyMsg:
		if a.searching {
			return a.handleSearchKey(m)
		}
		if a.creating {
			return a.handleCreateKey(m)
		}
		switch a.view {
		case viewDetail:
			return a.handleDetailKey(m)
		case viewHistory:
			return a.handleHistoryKey(m)
		default:
			return a.handleListKey(m)
		}

	case spinner.TickMsg:
		if a.listLoading || a.detailLoading() {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(m)
			return a, cmd
		}

	case healthMsg:
		if m.ok {
			a.backendVersion = m.version
		}

	case listPageMsg:
		a.page = api.ContentListPage(m)
		a.listLoading = false
		a.listErr = ""
		if a.listCursor >= len(a.page.Items) {
			a.listCursor = 0
		}

	case listErrMsg:
		a.listLoading = false
		a.listErr = api.Detail(m.err)

	case detailItemMsg:
		if m.seq != a.loadSeq {
			return a, nil
		}
		item := m.item
		a.detailItem = &item

	case detailAllowedMsg:
		if m.seq != a.loadSeq {
			return a, nil
		}
		allowed := m.allowed
		a.detailAllowed = &allowed
		a.panel = newTransitionPanel(allowed)

	case detailEventsMsg:
		if m.seq != a.loadSeq {
			return a, nil
		}
		a.detailEvents = m.events
		a.eventsLoaded = true

	case detailErrMsg:
		if m.seq != a.loadSeq {
			return a, nil
		}
		// one failed leg fails the whole composite load
		a.detailItem = nil
		a.detailAllowed = nil
		a.detailEvents = nil
		a.eventsLoaded = false
		a.detailErr = m.detail

	case transitionDoneMsg:
		if m.seq != a.loadSeq {
			return a, nil
		}
		a.panel = a.panel.succeed(m.outcome)
		a.status = fmt.Sprintf("Transitioned: %s → %s", m.outcome.FromState, m.outcome.ToState)
		// allowed set and events are now stale: re-run the fan-out
		return a, a.loadDetail(a.detailID)

	case transitionFailedMsg:
		if m.seq != a.loadSeq {
			return a, nil
		}
		a.panel = a.panel.fail(m.detail)

	case createdMsg:
		a.creating = false
		a.titleInput.Reset()
		a.status = fmt.Sprintf("created %q", m.Title)
		a.listLoading = true
		return a, tea.Batch(a.loadList(), a.spin.Tick)

	case journalMsg:
		a.entries = []repository.JournalEntry(m)

	case statusMsg:
		a.status = string(m)
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.listCursor > 0 {
			a.listCursor--
		}
	case "down", "j":
		if a.listCursor < len(a.page.Items)-1 {
			a.listCursor++
		}
	case "enter":
		if len(a.page.Items) == 0 {
			return a, nil
		}
		item := a.page.Items[a.listCursor]
		a.view = viewDetail
		a.detailID = item.ID
		a.status = ""
		return a, tea.Batch(a.loadDetail(item.ID), a.spin.Tick)
	case "left", "p":
		if a.page.CanPrev() {
			a.query.Offset = a.page.PrevOffset()
			a.listLoading = true
			return a, tea.Batch(a.loadList(), a.spin.Tick)
		}
	case "right", "n":
		if a.page.CanNext() {
			a.query.Offset = a.page.NextOffset()
			a.listLoading = true
			return a, tea.Batch(a.loadList(), a.spin.Tick)
		}
	case "/":
		a.searching = true
		a.searchInput.SetValue(a.query.Q)
		a.searchInput.CursorEnd()
		return a, a.searchInput.Focus()
	case "s":
		if a.query.Sort == "created_at_desc" {
			a.query.Sort = "created_at_asc"
		} else {
			a.query.Sort = "created_at_desc"
		}
		a.query.Offset = 0
		a.listLoading = true
		return a, tea.Batch(a.loadList(), a.spin.Tick)
	case "c":
		a.creating = true
		a.newTier = 1
		a.titleInput.Reset()
		return a, a.titleInput.Focus()
	case "r":
		a.listLoading = true
		return a, tea.Batch(a.loadList(), a.spin.Tick)
	case "H":
		a.view = viewHistory
		return a, a.loadJournal()
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		a.query.Q = strings.TrimSpace(a.searchInput.Value())
		a.query.Offset = 0
		a.listLoading = true
		return a, tea.Batch(a.loadList(), a.spin.Tick)
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(m)
	return a, cmd
}

func (a *App) handleCreateKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.creating = false
		a.titleInput.Blur()
		return a, nil
	case "left":
		if a.newTier > 1 {
			a.newTier--
		}
		return a, nil
	case "right":
		if a.newTier < 3 {
			a.newTier++
		}
		return a, nil
	case "enter":
		title := strings.TrimSpace(a.titleInput.Value())
		if title == "" {
			a.status = "enter a title"
			return a, nil
		}
		a.titleInput.Blur()
		return a, a.createContent(title, a.newTier)
	}
	var cmd tea.Cmd
	a.titleInput, cmd = a.titleInput.Update(m)
	return a, cmd
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.view = viewList
		a.status = ""
		// bump the sequence so anything still in flight resolves into the void
		a.loadSeq++
		return a, nil
	case "up", "k":
		a.panel = a.panel.moveCursor(-1)
	case "down", "j":
		a.panel = a.panel.moveCursor(1)
	case "enter":
		if !a.detailReady() {
			return a, nil
		}
		next, fire := a.panel.submit()
		a.panel = next
		if !fire {
			return a, nil
		}
		return a, a.submitTransition(a.panel.contentID, a.panel.fromState, a.panel.selected())
	case "r":
		return a, tea.Batch(a.loadDetail(a.detailID), a.spin.Tick)
	}
	return a, nil
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "H":
		a.view = viewList
	case "r":
		return a, a.loadJournal()
	}
	return a, nil
}

func (a *App) detailReady() bool {
	return a.detailItem != nil && a.detailAllowed != nil && a.eventsLoaded
}

func (a *App) detailLoading() bool {
	return a.view == viewDetail && !a.detailReady() && a.detailErr == ""
}

// view

func (a *App) View() string {
	var body string
	switch a.view {
	case viewDetail:
		body = a.renderDetail()
	case viewHistory:
		body = a.renderHistory()
	default:
		body = a.renderList()
	}
	if a.creating {
		body += "\n" + a.renderCreateModal()
	}
	return body
}

func (a *App) header() string {
	title := "contentdeck — tenant " + a.client.Tenant()
	if a.backendVersion != "" {
		title += "  " + faintStyle.Render("backend v"+a.backendVersion)
	}
	return titleStyle.Render(title)
}

func (a *App) renderList() string {
	out := a.header() + "\n"
	if a.searching {
		out += "search: " + a.searchInput.View() + "\n"
	} else if a.query.Q != "" {
		out += faintStyle.Render("filter: "+a.query.Q) + "\n"
	}
	switch {
	case a.listErr != "":
		out += errorStyle.Render("Failed to load /content: "+a.listErr) + "\n"
		out += faintStyle.Render("[r] retry") + "\n"
	case a.listLoading:
		out += a.spin.View() + " loading...\n"
	case len(a.page.Items) == 0:
		out += faintStyle.Render("no content") + "\n"
	default:
		for i, item := range a.page.Items {
			marker := " "
			if i == a.listCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-40s  %-18s %s  %s\n",
				marker,
				truncate(item.Title, 40),
				stateBadge(item.State),
				tierBadge(item.RiskTier),
				faintStyle.Render(formatTimestamp(item.CreatedAt, a.cfg.UI.DateFormat)))
		}
		first, last := a.page.ShowingRange()
		pager := fmt.Sprintf("Showing %d–%d of %d", first, last, a.page.Total)
		if a.page.CanPrev() {
			pager += "  [←] prev"
		}
		if a.page.CanNext() {
			pager += "  [→] next"
		}
		out += faintStyle.Render(pager) + "\n"
	}
	out += "[enter] Detail  [/] Search  [s] Sort  [c] New  [H] History  [r] Refresh  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderDetail() string {
	out := a.header() + "\n"
	out += headerStyle.Render("Content Detail") + "  " + faintStyle.Render(a.detailID) + "\n"
	switch {
	case a.detailErr != "":
		out += errorStyle.Render("Failed to load content detail: "+a.detailErr) + "\n"
		out += faintStyle.Render("[r] retry  [esc] back") + "\n"
		return out
	case !a.detailReady():
		out += a.spin.View() + " loading...\n"
		return out
	}

	item := *a.detailItem
	allowed := *a.detailAllowed
	out += fmt.Sprintf("%s\n%s  %s\n", item.Title, stateBadge(allowed.FromState), tierBadge(allowed.RiskTier))
	out += faintStyle.Render(fmt.Sprintf("created %s  updated %s",
		formatTimestamp(item.CreatedAt, a.cfg.UI.DateFormat),
		formatTimestamp(item.UpdatedAt, a.cfg.UI.DateFormat))) + "\n\n"

	out += a.panel.render() + "\n"

	out += headerStyle.Render(fmt.Sprintf("Events (%d)", len(a.detailEvents))) + "\n"
	if len(a.detailEvents) == 0 {
		out += faintStyle.Render("no events recorded") + "\n"
	}
	for _, ev := range a.detailEvents {
		actor := ev.ActorType
		if ev.ActorID != nil && *ev.ActorID != "" {
			actor += " (" + *ev.ActorID + ")"
		}
		out += fmt.Sprintf("- %-24s %-20s %s\n",
			ev.EventType, actor, faintStyle.Render(formatTimestamp(ev.CreatedAt, a.cfg.UI.DateFormat)))
	}
	out += "\n[↑/↓] Select target  [enter] Apply  [r] Refresh  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + okStyle.Render(a.status)
	}
	return out
}

func (a *App) renderHistory() string {
	out := a.header() + "\n"
	out += headerStyle.Render("Transition History (this machine)") + "\n"
	if len(a.entries) == 0 {
		out += faintStyle.Render("no transitions submitted yet") + "\n"
	}
	for _, e := range a.entries {
		result := okStyle.Render("ok")
		if !e.Succeeded {
			result = errorStyle.Render("failed: " + e.Detail)
		}
		out += fmt.Sprintf("- %s  %s → %s  %s  %s\n",
			faintStyle.Render(e.CreatedAt.Format(a.cfg.UI.DateFormat)),
			e.FromState, e.ToState, truncate(e.ContentID, 12), result)
	}
	out += "\n[r] Refresh  [esc] Back  [q] Quit"
	return out
}

func (a *App) renderCreateModal() string {
	body := headerStyle.Render("New content") + "\n"
	body += "title: " + a.titleInput.View() + "\n"
	body += fmt.Sprintf("risk tier: [←/→] %s\n", tierBadge(a.newTier))
	body += faintStyle.Render("[enter] Create  [esc] Cancel")
	return modalStyle.Render(body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// messages
type listPageMsg api.ContentListPage

type listErrMsg struct{ err error }

type healthMsg struct {
	version string
	ok      bool
}

type detailItemMsg struct {
	seq  int
	item api.ContentItem
}

type detailAllowedMsg struct {
	seq     int
	allowed api.AllowedTransitions
}

type detailEventsMsg struct {
	seq    int
	events []api.ContentEvent
}

type detailErrMsg struct {
	seq    int
	detail string
}

type transitionDoneMsg struct {
	seq     int
	outcome api.TransitionOutcome
}

type transitionFailedMsg struct {
	seq    int
	detail string
}

type createdMsg api.ContentItem

type journalMsg []repository.JournalEntry

type statusMsg string
