// Package ui is the terminal front end: one model per screen, with App
// routing between them based on session state.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sweetshop/internal/api"
	"sweetshop/internal/session"
)

const (
	viewLogin    = "login"
	viewRegister = "register"
	viewList     = "list"
	viewForm     = "form"
)

// App is the root model. Routing is a two-state machine gated on session
// presence: signed out toggles between login and register in memory; signed
// in shows the inventory list (with the form as a detour).
type App struct {
	sessions *session.Manager
	auth     *api.AuthService
	sweets   *api.SweetService

	currentView string
	login       loginModel
	register    registerModel
	list        listModel
	form        formModel
	spinner     spinner.Model
}

// NewApp wires the screens to their services.
func NewApp(sessions *session.Manager, auth *api.AuthService, sweets *api.SweetService) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return App{
		sessions:    sessions,
		auth:        auth,
		sweets:      sweets,
		currentView: viewLogin,
		login:       newLoginModel(auth),
		register:    newRegisterModel(auth),
		spinner:     s,
	}
}

// Init hydrates the session before anything is decided about routing.
func (m App) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, hydrateSession(m.sessions), tea.EnterAltScreen)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.sessions.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionHydratedMsg:
		if msg.user == nil {
			m.currentView = viewLogin
			return m, nil
		}
		m.currentView = viewList
		m.list = newListModel(m.sweets, m.auth, msg.user)
		var cmd tea.Cmd
		m.list, cmd = m.list.startLoad()
		return m, cmd

	case loggedInMsg:
		m.currentView = viewList
		m.list = newListModel(m.sweets, m.auth, msg.user)
		var cmd tea.Cmd
		m.list, cmd = m.list.startLoad()
		return m, cmd

	case loggedOutMsg:
		m.currentView = viewLogin
		m.login = newLoginModel(m.auth)
		m.register = newRegisterModel(m.auth)
		return m, nil

	case showRegisterMsg:
		m.currentView = viewRegister
		m.register = newRegisterModel(m.auth)
		return m, nil

	case showLoginMsg:
		m.currentView = viewLogin
		m.login = newLoginModel(m.auth)
		return m, nil

	case openFormMsg:
		m.currentView = viewForm
		m.form = newFormModel(m.sweets, msg.sweet)
		return m, nil

	case closeFormMsg:
		m.currentView = viewList
		return m, nil

	case sweetsLoadedMsg:
		// Snapshots always land on the list, even when a form is open over
		// it; otherwise a reload finishing mid-edit would be dropped and the
		// list left loading.
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case sweetSavedMsg:
		// The form saved; land back on the list, which banners and reloads.
		m.currentView = viewList
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case viewLogin:
		m.login, cmd = m.login.Update(msg)
	case viewRegister:
		m.register, cmd = m.register.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m App) View() string {
	if m.sessions.Loading() {
		return docStyle.Render(m.spinner.View() + " Loading...")
	}
	switch m.currentView {
	case viewRegister:
		return m.register.View()
	case viewList:
		return m.list.View()
	case viewForm:
		return m.form.View()
	default:
		return m.login.View()
	}
}
