package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/models"
	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/desertthunder/flick/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AuthView ViewState = iota
	DiscoveryView
	AccountView
)

func (v ViewState) String() string {
	return [...]string{"auth", "discovery", "account"}[v]
}

const (
	loggedOutBanner   = "You have been logged out."
	expiredBanner     = "Your session expired. Please log in again."
	loginFirstBanner  = "Please log in to continue."
	listChrome        = 12
	minimumListHeight = 5
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	session   *session.Context
	auth      *tasks.AuthFlow
	discovery *tasks.Discovery
	account   *tasks.Account
	logger    *log.Logger

	username  textinput.Model
	password  textinput.Model
	focus     int
	search    textinput.Model
	searching bool
	cards     list.Model
	movies    list.Model
	dialog    *dialog
	banner    string

	ended       chan session.Reason
	unsubscribe func()

	width   int
	height  int
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The model subscribes to session teardown; call [Model.Close] once the program exits.
func NewModel(
	ctx context.Context,
	sess *session.Context,
	client services.MovieClient,
	catalog models.Catalog,
	logger *log.Logger,
) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	username := textinput.New()
	username.Placeholder = "Username"
	username.Prompt = "User     › "

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = "Password › "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := textinput.New()
	search.Placeholder = "Search title, status or review"
	search.Prompt = "/ "

	cards := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	cards.Title = "Discover"
	cards.SetFilteringEnabled(false)
	cards.SetShowHelp(false)

	movies := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	movies.Title = "My List"
	movies.SetFilteringEnabled(false)
	movies.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = NewStyle(purple)

	m := &Model{
		ctx:       ctx,
		view:      AuthView,
		session:   sess,
		auth:      tasks.NewAuthFlow(sess, client, logger),
		discovery: tasks.NewDiscovery(sess, client, catalog, logger),
		account:   tasks.NewAccount(sess, client, logger),
		logger:    logger,
		username:  username,
		password:  password,
		search:    search,
		cards:     cards,
		movies:    movies,
		ended:     make(chan session.Reason, 1),
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
	}

	m.unsubscribe = sess.Subscribe(func(r session.Reason) {
		select {
		case m.ended <- r:
		default:
		}
	})
	return m
}

// Close removes the model's session subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Current returns the active view.
func (m *Model) Current() ViewState {
	return m.view
}

// Init mounts the auth screen, which forwards a logged-in user to discovery.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.navigate(tasks.RouteAuth), m.waitForSessionEnd(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		if m.dialog != nil {
			return m, m.dialog.Update(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog != nil {
			return m, m.dialog.Update(msg)
		}
		switch m.view {
		case AuthView:
			return m.handleAuthKeys(msg)
		case DiscoveryView:
			return m.handleDiscoveryKeys(msg)
		case AccountView:
			return m.handleAccountKeys(msg)
		}
	}

	if m.dialog != nil {
		return m, m.dialog.Update(msg)
	}
	return m.updateInputs(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgAuthResult:
		res := msg.data.(tasks.Result[string])
		return m, m.follow(m.auth.Apply(res))

	case MsgRatingsResult:
		m.discovery.ApplyRatings(msg.data.(tasks.Result[[]models.RatingSummary]))
		m.refreshCards()
		return m, nil

	case MsgAddResult:
		route := m.discovery.ApplyAdd(msg.data.(tasks.Result[struct{}]))
		m.refreshCards()
		return m, m.follow(route)

	case MsgFetchResult:
		route := m.account.ApplyFetch(msg.data.(tasks.Result[[]models.MovieRecord]))
		m.refreshMovies()
		return m, m.follow(route)

	case MsgMutationResult:
		route := m.account.ApplyMutation(msg.data.(tasks.Result[[]models.MovieRecord]))
		m.refreshMovies()
		return m, m.follow(route)

	case MsgSessionEnded:
		reason := msg.data.(session.Reason)
		m.banner = loggedOutBanner
		if reason == session.SessionExpired {
			m.banner = expiredBanner
		}
		cmds := []tea.Cmd{m.waitForSessionEnd()}
		if m.view != AuthView {
			cmds = append(cmds, m.navigate(tasks.RouteAuth))
		}
		return m, tea.Batch(cmds...)

	case MsgDialogDone:
		m.dialog = nil
		return m, m.applyDialog(msg.data.(dialogResult))
	}
	return m, nil
}

// navigate unmounts the other screens and mounts the one for route, following guard redirects.
func (m *Model) navigate(route tasks.Route) tea.Cmd {
	m.dialog = nil
	m.searching = false
	m.search.Blur()

	switch route {
	case tasks.RouteAuth:
		m.discovery.Unmount()
		m.account.Unmount()
		if next := m.auth.Mount(); next != tasks.RouteNone {
			return m.navigate(next)
		}
		m.view = AuthView
		m.password.SetValue("")
		return m.focusField(0)

	case tasks.RouteDiscovery:
		m.auth.Unmount()
		m.account.Unmount()
		m.discovery.Mount()
		m.view = DiscoveryView
		m.refreshCards()
		return run(m.ctx, m.discovery.BeginRatings(), ratingsResultMsg)

	case tasks.RouteAccount:
		if next := m.account.Mount(); next != tasks.RouteNone {
			m.banner = loginFirstBanner
			return m.navigate(next)
		}
		m.auth.Unmount()
		m.discovery.Unmount()
		m.view = AccountView
		m.refreshMovies()
		return m.fetchMovies()
	}
	return nil
}

func (m *Model) follow(route tasks.Route) tea.Cmd {
	if route == tasks.RouteNone {
		return nil
	}
	return m.navigate(route)
}

// redirect handles an error returned before any call was issued.
func (m *Model) redirect(err error) tea.Cmd {
	if route := tasks.RedirectFor(err); route != tasks.RouteNone {
		m.banner = loginFirstBanner
		return m.navigate(route)
	}

	switch {
	case errors.Is(err, shared.ErrBusy), errors.Is(err, shared.ErrCancelled), errors.Is(err, shared.ErrValidation):
	default:
		m.logger.Warn("action failed", "view", m.view, "error", err)
		m.banner = err.Error()
	}
	return nil
}

func (m *Model) logout() tea.Cmd {
	if err := m.session.Logout(session.LogoutRequested); err != nil {
		m.banner = err.Error()
	}
	return nil
}

func (m *Model) loggedIn() bool {
	_, ok := m.session.Load()
	return ok
}

func (m *Model) openDialog(d *dialog) tea.Cmd {
	m.dialog = d
	return d.Init()
}

func (m *Model) applyDialog(res dialogResult) tea.Cmd {
	if res.cancelled {
		return nil
	}

	switch res.kind {
	case reviewDialog:
		if m.view == DiscoveryView {
			id, err := strconv.Atoi(res.target)
			if err != nil {
				return m.redirect(err)
			}
			call, err := m.discovery.SubmitReview(id, res.review)
			if err != nil {
				return m.redirect(err)
			}
			m.refreshCards()
			return run(m.ctx, call, addResultMsg)
		}
		call, err := m.account.SubmitReview(models.RecordID(res.target), res.review)
		if err != nil {
			return m.redirect(err)
		}
		return run(m.ctx, call, mutationResultMsg)

	case createDialog:
		call, err := m.account.BeginCreate(res.movie)
		if err != nil {
			return m.redirect(err)
		}
		return run(m.ctx, call, mutationResultMsg)

	case deleteDialog:
		call, err := m.account.BeginDelete(models.RecordID(res.target), res.confirmed)
		if err != nil {
			return m.redirect(err)
		}
		return run(m.ctx, call, mutationResultMsg)
	}
	return nil
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.banner = ""
		return m, m.navigate(tasks.RouteDiscovery)
	case key.Matches(msg, m.keys.toggle):
		m.auth.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.focusField(1 - m.focus)
	case key.Matches(msg, m.keys.enter):
		if m.focus == 0 && m.password.Value() == "" {
			return m, m.focusField(1)
		}
		call, err := m.auth.Begin(m.username.Value(), m.password.Value())
		if err != nil {
			return m, nil
		}
		m.banner = ""
		return m, run(m.ctx, call, authResultMsg)
	}
	return m.updateInputs(msg)
}

func (m *Model) handleDiscoveryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab):
		m.banner = ""
		return m, m.navigate(tasks.RouteAccount)
	case key.Matches(msg, m.keys.logout):
		if m.loggedIn() {
			return m, m.logout()
		}
		m.banner = ""
		return m, m.navigate(tasks.RouteAuth)
	case key.Matches(msg, m.keys.add):
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		call, err := m.discovery.BeginAdd(card.Entry.ID)
		if err != nil {
			return m, m.redirect(err)
		}
		m.refreshCards()
		return m, run(m.ctx, call, addResultMsg)
	case key.Matches(msg, m.keys.watched):
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		prompt, err := m.discovery.BeginMarkWatched(card.Entry.ID)
		if err != nil {
			return m, m.redirect(err)
		}
		return m, m.openDialog(newReviewDialog(strconv.Itoa(card.Entry.ID), prompt))
	}

	var cmd tea.Cmd
	m.cards, cmd = m.cards.Update(msg)
	return m, cmd
}

func (m *Model) handleAccountKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		return m.updateInputs(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab):
		m.banner = ""
		return m, m.navigate(tasks.RouteDiscovery)
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchMovies()
	case key.Matches(msg, m.keys.filter):
		m.account.CycleFilter()
		m.refreshMovies()
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.create):
		return m, m.openDialog(newCreateDialog())
	case key.Matches(msg, m.keys.status):
		movie, ok := m.selectedMovie()
		if !ok {
			return m, nil
		}
		next := models.HaveWatched
		if movie.Status == models.HaveWatched {
			next = models.PlanToWatch
		}
		call, err := m.account.BeginStatusUpdate(movie.ID, next)
		if err != nil {
			return m, m.redirect(err)
		}
		return m, run(m.ctx, call, mutationResultMsg)
	case key.Matches(msg, m.keys.review):
		movie, ok := m.selectedMovie()
		if !ok {
			return m, nil
		}
		prompt, err := m.account.BeginReview(movie.ID)
		if err != nil {
			return m, m.redirect(err)
		}
		return m, m.openDialog(newReviewDialog(movie.ID.String(), prompt))
	case key.Matches(msg, m.keys.remove):
		movie, ok := m.selectedMovie()
		if !ok {
			return m, nil
		}
		return m, m.openDialog(newDeleteDialog(movie.ID.String(), movie.Title))
	}

	var cmd tea.Cmd
	m.movies, cmd = m.movies.Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case AuthView:
		if m.focus == 0 {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case AccountView:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
			m.account.Search = m.search.Value()
			m.refreshMovies()
		}
	}
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	if i == 0 {
		m.password.Blur()
		return m.username.Focus()
	}
	m.username.Blur()
	return m.password.Focus()
}

func (m *Model) fetchMovies() tea.Cmd {
	call, err := m.account.BeginFetch()
	if err != nil {
		return m.redirect(err)
	}
	return run(m.ctx, call, fetchResultMsg)
}

func (m *Model) selectedCard() (tasks.Card, bool) {
	if item, ok := m.cards.SelectedItem().(cardItem); ok {
		return item.card, true
	}
	return tasks.Card{}, false
}

func (m *Model) selectedMovie() (models.MovieRecord, bool) {
	if item, ok := m.movies.SelectedItem().(movieItem); ok {
		return item.movie, true
	}
	return models.MovieRecord{}, false
}

func (m *Model) refreshCards() {
	m.cards.SetItems(cardItems(m.discovery.Cards(), m.discovery.Busy))
}

func (m *Model) refreshMovies() {
	m.movies.SetItems(movieItems(m.account.Visible()))
}

func (m *Model) resizeLists() {
	h := max(m.height-listChrome, minimumListHeight)
	m.cards.SetSize(m.width-4, h)
	m.movies.SetSize(m.width-4, h)
}

// waitForSessionEnd turns the next session teardown into a [MsgSessionEnded].
func (m *Model) waitForSessionEnd() tea.Cmd {
	return func() tea.Msg {
		return sessionEndedMsg(<-m.ended)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch {
	case m.dialog != nil:
		body = m.dialog.View()
	case m.view == AuthView:
		body = m.renderAuth()
	case m.view == DiscoveryView:
		body = m.renderDiscovery()
	case m.view == AccountView:
		body = m.renderAccount()
	}

	sections := []string{m.renderHeader()}
	if m.banner != "" {
		sections = append(sections, styles.warn.Render(m.banner))
	}
	sections = append(sections, body)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	tabs := make([]string, 0, 3)
	for _, v := range []struct {
		state ViewState
		label string
	}{{DiscoveryView, "Discover"}, {AccountView, "My List"}, {AuthView, "Account"}} {
		if v.state == m.view {
			tabs = append(tabs, styles.tab.Render(v.label))
		} else {
			tabs = append(tabs, styles.badge.Render(v.label))
		}
	}

	who := "not signed in"
	if s, ok := m.session.Load(); ok {
		who = "signed in as " + s.Username
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, styles.help.Render("  "+who))...) + "\n"
}

func renderMessages(errMsg, notice, warning string) string {
	var b strings.Builder
	if errMsg != "" {
		b.WriteString(styles.err.Render(errMsg) + "\n")
	}
	if warning != "" {
		b.WriteString(styles.warn.Render(warning) + "\n")
	}
	if notice != "" {
		b.WriteString(styles.ok.Render(notice) + "\n")
	}
	return b.String()
}

func (m *Model) renderAuth() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.auth.Mode.String()) + "\n")
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")

	if m.auth.Pending {
		b.WriteString(fmt.Sprintf("%s %s…\n", m.spinner.View(), m.auth.Mode))
	}
	b.WriteString(renderMessages(m.auth.Error, m.auth.Notice, ""))

	toggle := key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "switch to register"))
	if m.auth.Mode == tasks.ModeRegister {
		toggle = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "switch to login"))
	}
	browse := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "browse catalog"))
	helpKeys := []key.Binding{m.keys.enter, m.keys.next, toggle, browse}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDiscovery() string {
	var b strings.Builder
	b.WriteString(m.cards.View() + "\n")
	b.WriteString(renderMessages(m.discovery.Error, m.discovery.Notice, m.discovery.Warning))

	account := m.keys.login
	if m.loggedIn() {
		account = m.keys.logout
	}
	helpKeys := []key.Binding{m.keys.add, m.keys.watched, m.keys.tab, account, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderAccount() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s's list", m.account.Username)) + "\n")
	b.WriteString(styles.help.Render("Filter: "+m.account.Filter.Label()) + "\n")
	b.WriteString(m.search.View() + "\n")

	switch {
	case m.account.Loading:
		b.WriteString(fmt.Sprintf("%s Loading your movies…\n", m.spinner.View()))
	case m.account.Pending:
		b.WriteString(fmt.Sprintf("%s Saving…\n", m.spinner.View()))
	}

	if len(m.account.Visible()) == 0 && !m.account.Loading {
		b.WriteString(styles.help.Render("No movies to show.") + "\n")
	} else {
		b.WriteString(m.movies.View() + "\n")
	}
	b.WriteString(renderMessages(m.account.Error, m.account.Notice, m.account.Warning))

	helpKeys := []key.Binding{
		m.keys.create, m.keys.status, m.keys.review, m.keys.remove,
		m.keys.filter, m.keys.search, m.keys.tab, m.keys.logout, m.keys.quit,
	}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}
