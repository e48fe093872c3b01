package ui

import "sweetshop/internal/models"

// Custom message types for the tea update loop.

// sessionHydratedMsg reports the persisted session read at startup.
type sessionHydratedMsg struct {
	user *models.User
}

// loggedInMsg reports a successful login (or register-then-login).
type loggedInMsg struct {
	user *models.User
}

// loggedOutMsg reports that the session was cleared.
type loggedOutMsg struct{}

// showLoginMsg and showRegisterMsg toggle the signed-out screens.
type showLoginMsg struct{}
type showRegisterMsg struct{}

// openFormMsg opens the add/edit form; sweet is nil when adding.
type openFormMsg struct {
	sweet *models.Sweet
}

// closeFormMsg returns to the list without saving.
type closeFormMsg struct{}

// sweetsLoadedMsg carries a fresh inventory snapshot.
type sweetsLoadedMsg struct {
	sweets []models.Sweet
}

// Mutation outcomes. Each triggers a full list reload on arrival.
type sweetSavedMsg struct {
	created bool
}
type sweetDeletedMsg struct{}
type sweetPurchasedMsg struct{}
type sweetRestockedMsg struct{}

// clearSuccessMsg expires the success banner with the matching id.
type clearSuccessMsg struct {
	id int
}

// errMsg carries a failed action; screens render it as a banner.
type errMsg struct {
	err error
}
