package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sweetshop/internal/api"
)

// registerModel is the account creation screen. A successful submit
// registers and then logs in, landing on the inventory list.
type registerModel struct {
	auth       *api.AuthService
	inputs     []textinput.Model
	focus      int
	submitting bool
	errBanner  string
}

func newRegisterModel(auth *api.AuthService) registerModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 64
	password.Width = 32

	return registerModel{auth: auth, inputs: []textinput.Model{username, email, password}}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
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
			if m.focus < len(m.inputs)-1 {
				m = m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		case "esc":
			if m.errBanner != "" {
				m.errBanner = ""
				return m, nil
			}
			if !m.submitting {
				return m, func() tea.Msg { return showLoginMsg{} }
			}
			return m, nil
		}
	case errMsg:
		m.submitting = false
		m.errBanner = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	for _, in := range m.inputs {
		if in.Value() == "" {
			return m, nil
		}
	}
	m.submitting = true
	m.errBanner = ""
	return m, registerCmd(m.auth, m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value())
}

func (m registerModel) setFocus(focus int) registerModel {
	if focus < 0 {
		focus = len(m.inputs) - 1
	}
	if focus >= len(m.inputs) {
		focus = 0
	}
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m registerModel) View() string {
	view := titleStyle.Render("Sweet Shop — Create Account") + "\n\n"
	if m.errBanner != "" {
		view += errorStyle.Render(m.errBanner) + "\n\n"
	}
	labels := []string{"Username", "Email", "Password"}
	for i, in := range m.inputs {
		view += labelStyle.Render(labels[i]) + "\n" + in.View() + "\n\n"
	}
	if m.submitting {
		view += "Creating account...\n"
	}
	view += helpStyle.Render("enter: register • esc: back to login • ctrl+c: quit")
	return docStyle.Render(view)
}
