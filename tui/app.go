package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"coursereg/model"
	"coursereg/registrar"
	"coursereg/service"
	"coursereg/store"
)

type appState int

const (
	stateLogin appState = iota
	stateLoading
	stateBrowse
	stateSchedule
	stateConfirmClear
	stateAdmin
)

const (
	alertTTL = 4 * time.Second

	msgLoginFailed     = "Invalid email or password."
	msgLoginUnexpected = "Unexpected error. Please try again."
)

const (
	filterQuery = iota
	filterSubject
	filterCredits
	filterDay
	filterTerm
	filterCount
)

// Authenticator exchanges credentials for an account identity.
// *service.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email string, password string) (model.User, error)
}

type appModel struct {
	app    *registrar.App
	auth   Authenticator
	logger *zap.Logger

	state appState
	page  registrar.Page
	busy  bool

	width  int
	height int

	user *model.User

	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginErr      string
	signingIn     bool

	filterInputs []textinput.Model
	filterFocus  int
	filter       registrar.Filter
	options      registrar.FilterOptions
	cardList     list.Model
	alert        string
	alertSeq     int

	scheduleList list.Model
	scheduleMsg  string

	rosterTable table.Model
	rosterMsg   string

	spinner spinner.Model
}

type loginMsg struct {
	user model.User
	err  error
}

type pageLoadedMsg struct {
	page registrar.Page
	err  error
}

type rosterMsg struct {
	roster registrar.Roster
	err    error
}

type workflowMsg struct {
	page    registrar.Page
	outcome registrar.Outcome
}

type alertExpiredMsg struct {
	seq int
}

// New builds the interactive client. Without a stored session it opens on
// the sign-in page.
func New(app *registrar.App, auth Authenticator, logger *zap.Logger) tea.Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := appModel{
		app:    app,
		auth:   auth,
		logger: logger,
		state:  stateLogin,
		page:   registrar.PageLogin,
	}

	m.emailInput = newInput("Email", "you@school.edu")
	m.passwordInput = newInput("Password", "")
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.EchoCharacter = '•'
	m.emailInput.Focus()

	m.filterInputs = make([]textinput.Model, filterCount)
	m.filterInputs[filterQuery] = newInput("Search", "title or code")
	m.filterInputs[filterSubject] = newInput("Subject", "any")
	m.filterInputs[filterCredits] = newInput("Credits", "any")
	m.filterInputs[filterDay] = newInput("Day", "code")
	m.filterInputs[filterTerm] = newInput("Term", "any")
	m.filterInputs[filterQuery].Focus()

	m.cardList = newList("Course Sections")
	m.scheduleList = newList("My Schedule")
	m.rosterTable = newRosterTable()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	if user, _ := store.GetUser(); user != nil {
		m.user = user
		m.state = stateLoading
		m.page = registrar.PageBrowse
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.state == stateLogin {
		return textinput.Blink
	}
	return tea.Batch(m.loadPageCmd(m.page), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case loginMsg:
		m.signingIn = false
		if msg.err != nil {
			m.loginErr = loginFailureMessage(msg.err)
			m.logger.Info("login_failed", zap.Error(msg.err))
			return m, nil
		}
		if err := store.SetUser(msg.user); err != nil {
			m.loginErr = msgLoginUnexpected
			m.logger.Error("session_save_failed", zap.Error(err))
			return m, nil
		}
		user := msg.user
		m.user = &user
		m.loginErr = ""
		m.passwordInput.Reset()
		return m.openPage(registrar.PageBrowse)

	case pageLoadedMsg:
		if errors.Is(msg.err, registrar.ErrSignInRequired) {
			return m.toLogin(), textinput.Blink
		}
		switch msg.page {
		case registrar.PageBrowse:
			m.state = stateBrowse
			m.options = m.app.Catalog.Options()
			m.refreshCards()
			if msg.err != nil {
				return m, m.showAlert(msg.err.Error())
			}
		case registrar.PageSchedule:
			m.state = stateSchedule
			m.refreshSchedule()
		}
		return m, nil

	case rosterMsg:
		if errors.Is(msg.err, registrar.ErrSignInRequired) {
			return m.toLogin(), textinput.Blink
		}
		m.state = stateAdmin
		m.setRoster(msg.roster)
		return m, nil

	case workflowMsg:
		m.busy = false
		switch msg.page {
		case registrar.PageBrowse:
			m.refreshCards()
			if !msg.outcome.OK && msg.outcome.Message != "" {
				return m, m.showAlert(msg.outcome.Message)
			}
		case registrar.PageSchedule:
			m.refreshSchedule()
			if msg.outcome.Message != "" {
				m.scheduleMsg = msg.outcome.Message
			}
		}
		return m, nil

	case alertExpiredMsg:
		if msg.seq == m.alertSeq {
			m.alert = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateLogin:
		if m.loginFocus == 0 {
			m.emailInput, cmd = m.emailInput.Update(msg)
		} else {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	case stateBrowse:
		m.cardList, cmd = m.cardList.Update(msg)
	case stateSchedule:
		m.scheduleList, cmd = m.scheduleList.Update(msg)
	case stateAdmin:
		m.rosterTable, cmd = m.rosterTable.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}
	if m.state == stateLogin {
		return m.handleLoginKey(msg)
	}
	if m.busy || m.state == stateLoading {
		return m, nil, true
	}

	switch msg.String() {
	case "ctrl+b":
		next, cmd := m.openPage(registrar.PageBrowse)
		return next, cmd, true
	case "ctrl+s":
		next, cmd := m.openPage(registrar.PageSchedule)
		return next, cmd, true
	case "ctrl+a":
		next, cmd := m.openPage(registrar.PageAdmin)
		return next, cmd, true
	case "ctrl+o":
		if err := store.ClearUser(); err != nil {
			m.logger.Error("session_clear_failed", zap.Error(err))
		}
		return m.toLogin(), textinput.Blink, true
	}

	switch m.state {
	case stateBrowse:
		return m.handleBrowseKey(msg)
	case stateSchedule:
		return m.handleScheduleKey(msg)
	case stateConfirmClear:
		return m.handleConfirmClearKey(msg)
	case stateAdmin:
		switch msg.String() {
		case "esc":
			next, cmd := m.openPage(registrar.PageBrowse)
			return next, cmd, true
		case "q":
			return m, tea.Quit, true
		}
	}
	return m, nil, false
}

func (m appModel) handleLoginKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.signingIn {
		return m, nil, true
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		return m, m.focusLogin(1 - m.loginFocus), true
	case "enter":
		if m.loginFocus == 0 {
			return m, m.focusLogin(1), true
		}
		return m.submitLogin()
	}
	return m, nil, false
}

func (m *appModel) focusLogin(index int) tea.Cmd {
	m.loginFocus = index
	if index == 0 {
		m.passwordInput.Blur()
		return m.emailInput.Focus()
	}
	m.emailInput.Blur()
	return m.passwordInput.Focus()
}

func (m appModel) submitLogin() (appModel, tea.Cmd, bool) {
	input, err := service.ValidateLogin(m.emailInput.Value(), m.passwordInput.Value())
	if err != nil {
		m.loginErr = err.Error()
		return m, nil, true
	}
	m.loginErr = ""
	m.signingIn = true
	return m, tea.Batch(m.loginCmd(input), m.spinner.Tick), true
}

func (m appModel) handleBrowseKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		item, ok := m.cardList.SelectedItem().(cardItem)
		if !ok {
			return m, nil, true
		}
		m.busy = true
		return m, tea.Batch(m.toggleCmd(item.card.SectionID), m.spinner.Tick), true
	case "tab":
		return m, m.focusFilter((m.filterFocus + 1) % filterCount), true
	case "shift+tab":
		return m, m.focusFilter((m.filterFocus + filterCount - 1) % filterCount), true
	case "ctrl+r":
		m.clearFilters()
		return m, nil, true
	case "esc":
		if m.filterInputs[m.filterFocus].Value() != "" {
			m.filterInputs[m.filterFocus].Reset()
			m.applyFilterInputs()
		}
		return m, nil, true
	}

	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return m, nil, false
	}

	var cmd tea.Cmd
	m.filterInputs[m.filterFocus], cmd = m.filterInputs[m.filterFocus].Update(msg)
	m.applyFilterInputs()
	return m, cmd, true
}

func (m *appModel) focusFilter(index int) tea.Cmd {
	m.filterInputs[m.filterFocus].Blur()
	m.filterFocus = index
	return m.filterInputs[index].Focus()
}

func (m *appModel) applyFilterInputs() {
	next := registrar.Filter{
		Query:   m.filterInputs[filterQuery].Value(),
		Subject: m.filterInputs[filterSubject].Value(),
		Credits: m.filterInputs[filterCredits].Value(),
		Day:     m.filterInputs[filterDay].Value(),
		Term:    m.filterInputs[filterTerm].Value(),
	}
	if next == m.filter {
		return
	}
	m.filter = next
	m.refreshCards()
}

func (m *appModel) clearFilters() {
	for i := range m.filterInputs {
		m.filterInputs[i].Reset()
	}
	m.filter = registrar.Filter{}
	m.refreshCards()
}

func (m appModel) handleScheduleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "enter", "d":
		item, ok := m.scheduleList.SelectedItem().(rowItem)
		if !ok {
			return m, nil, true
		}
		m.busy = true
		return m, tea.Batch(m.removeCmd(item.row.SectionID), m.spinner.Tick), true
	case "c":
		m.busy = true
		return m, tea.Batch(m.confirmCmd(), m.spinner.Tick), true
	case "x":
		m.state = stateConfirmClear
		return m, nil, true
	case "esc":
		next, cmd := m.openPage(registrar.PageBrowse)
		return next, cmd, true
	case "q":
		return m, tea.Quit, true
	}
	return m, nil, false
}

func (m appModel) handleConfirmClearKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "y", "enter":
		m.state = stateSchedule
		m.busy = true
		return m, tea.Batch(m.clearCmd(), m.spinner.Tick), true
	case "n", "esc":
		m.state = stateSchedule
		return m, nil, true
	}
	return m, nil, true
}

func (m appModel) openPage(page registrar.Page) (appModel, tea.Cmd) {
	m.state = stateLoading
	m.page = page
	if page == registrar.PageAdmin {
		return m, tea.Batch(m.loadRosterCmd(), m.spinner.Tick)
	}
	return m, tea.Batch(m.loadPageCmd(page), m.spinner.Tick)
}

func (m appModel) toLogin() appModel {
	m.user = nil
	m.state = stateLogin
	m.page = registrar.PageLogin
	m.busy = false
	m.signingIn = false
	m.passwordInput.Reset()
	m.focusLogin(0)
	return m
}

func (m *appModel) showAlert(text string) tea.Cmd {
	m.alertSeq++
	m.alert = text
	seq := m.alertSeq
	return tea.Tick(alertTTL, func(time.Time) tea.Msg {
		return alertExpiredMsg{seq: seq}
	})
}

func (m *appModel) refreshCards() {
	cards := m.app.Cards(m.filter)
	items := make([]list.Item, 0, len(cards))
	for _, card := range cards {
		items = append(items, cardItem{card: card})
	}
	index := m.cardList.Index()
	m.cardList.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.cardList.Select(index)
	}
}

func (m *appModel) refreshSchedule() {
	view := m.app.ScheduleView()
	items := make([]list.Item, 0, len(view.Rows))
	for _, row := range view.Rows {
		items = append(items, rowItem{row: row})
	}
	m.scheduleList.SetItems(items)
	m.scheduleMsg = view.Message
}

func (m *appModel) setRoster(roster registrar.Roster) {
	m.rosterMsg = roster.Message
	rows := make([]table.Row, 0, len(roster.Rows))
	for _, r := range roster.Rows {
		rows = append(rows, table.Row{r.Student, r.Course, r.Term, r.CRN, r.Status})
	}
	m.rosterTable.SetRows(rows)
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoading || m.busy || m.signingIn
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 10
	if h < 6 {
		h = 6
	}
	m.cardList.SetSize(m.width, h)
	m.scheduleList.SetSize(m.width, h)
	m.rosterTable.SetWidth(m.width)
	m.rosterTable.SetHeight(h)
}

func loginFailureMessage(err error) string {
	if service.IsTransport(err) {
		return msgLoginUnexpected
	}
	return service.ServerMessage(err, msgLoginFailed)
}

func newInput(prompt string, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt + ": "
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 24
	return ti
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func newRosterTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Student", Width: 32},
			{Title: "Course", Width: 32},
			{Title: "Term", Width: 14},
			{Title: "CRN", Width: 10},
			{Title: "Status", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}
