package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sweetshop/internal/api"
	"sweetshop/internal/models"
	"sweetshop/internal/session"
)

// hydrateSession reads the persisted session once at startup.
func hydrateSession(sessions *session.Manager) tea.Cmd {
	return func() tea.Msg {
		sessions.Hydrate()
		return sessionHydratedMsg{user: sessions.User()}
	}
}

// loginCmd exchanges credentials for a session.
func loginCmd(auth *api.AuthService, identity, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := auth.Login(identity, password)
		if err != nil {
			return errMsg{err: err}
		}
		return loggedInMsg{user: &resp.User}
	}
}

// registerCmd creates the account and then logs in with the same
// credentials, since the register endpoint returns no token.
func registerCmd(auth *api.AuthService, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := auth.Register(username, email, password); err != nil {
			return errMsg{err: err}
		}
		resp, err := auth.Login(username, password)
		if err != nil {
			return errMsg{err: err}
		}
		return loggedInMsg{user: &resp.User}
	}
}

// logoutCmd clears the session.
func logoutCmd(auth *api.AuthService) tea.Cmd {
	return func() tea.Msg {
		if err := auth.Logout(); err != nil {
			return errMsg{err: err}
		}
		return loggedOutMsg{}
	}
}

// loadSweets fetches the full inventory snapshot.
func loadSweets(svc *api.SweetService) tea.Cmd {
	return func() tea.Msg {
		sweets, err := svc.List()
		if err != nil {
			return errMsg{err: err}
		}
		return sweetsLoadedMsg{sweets: sweets}
	}
}

func createSweet(svc *api.SweetService, in models.SweetInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Create(in); err != nil {
			return errMsg{err: err}
		}
		return sweetSavedMsg{created: true}
	}
}

func updateSweet(svc *api.SweetService, id int, in models.SweetInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Update(id, in); err != nil {
			return errMsg{err: err}
		}
		return sweetSavedMsg{created: false}
	}
}

func deleteSweet(svc *api.SweetService, id int) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Delete(id); err != nil {
			return errMsg{err: err}
		}
		return sweetDeletedMsg{}
	}
}

func purchaseSweet(svc *api.SweetService, id int) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Purchase(id); err != nil {
			return errMsg{err: err}
		}
		return sweetPurchasedMsg{}
	}
}

func restockSweet(svc *api.SweetService, id, amount int) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Restock(id, amount); err != nil {
			return errMsg{err: err}
		}
		return sweetRestockedMsg{}
	}
}

// clearSuccessAfter expires the success banner carrying id after d.
func clearSuccessAfter(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearSuccessMsg{id: id}
	})
}
