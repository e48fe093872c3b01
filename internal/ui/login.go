package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sweetshop/internal/api"
)

// loginModel is the sign-in screen: idle -> submitting -> (success | error).
type loginModel struct {
	auth       *api.AuthService
	username   textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errBanner  string
}

func newLoginModel(auth *api.AuthService) loginModel {
	username := textinput.New()
	username.Placeholder = "username or email"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 64
	password.Width = 32

	return loginModel{auth: auth, username: username, password: password}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m = m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m = m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			if m.focus == 0 {
				m = m.setFocus(1)
				return m, nil
			}
			return m.submit()
		case "ctrl+r":
			if !m.submitting {
				return m, func() tea.Msg { return showRegisterMsg{} }
			}
			return m, nil
		case "esc":
			m.errBanner = ""
			return m, nil
		}
	case errMsg:
		m.submitting = false
		m.errBanner = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// submit ignores the keypress while a request is in flight or a field is
// blank, so the same control cannot issue overlapping logins.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting || m.username.Value() == "" || m.password.Value() == "" {
		return m, nil
	}
	m.submitting = true
	m.errBanner = ""
	return m, loginCmd(m.auth, m.username.Value(), m.password.Value())
}

func (m loginModel) setFocus(focus int) loginModel {
	if focus < 0 {
		focus = 1
	}
	if focus > 1 {
		focus = 0
	}
	m.focus = focus
	if focus == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
	return m
}

func (m loginModel) View() string {
	view := titleStyle.Render("Sweet Shop — Login") + "\n\n"
	if m.errBanner != "" {
		view += errorStyle.Render(m.errBanner) + "\n\n"
	}
	view += labelStyle.Render("Username") + "\n" + m.username.View() + "\n\n"
	view += labelStyle.Render("Password") + "\n" + m.password.View() + "\n\n"
	if m.submitting {
		view += "Logging in...\n"
	}
	view += helpStyle.Render("enter: login • ctrl+r: register • esc: dismiss error • ctrl+c: quit")
	return docStyle.Render(view)
}
