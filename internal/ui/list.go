package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sweetshop/internal/api"
	"sweetshop/internal/models"
)

// List screen modes. Confirm and restock are small interactive detours that
// return to browsing.
const (
	modeBrowse = iota
	modeConfirmDelete
	modeRestock
)

// listModel is the inventory screen. The sweets slice is the authoritative
// snapshot from the last fetch; the rendered rows are always derived from
// (sweets, search query). Every mutation triggers a full reload rather than
// patching local state.
type listModel struct {
	svc  *api.SweetService
	auth *api.AuthService
	user *models.User

	sweets  []models.Sweet
	cursor  int
	search  textinput.Model
	restock textinput.Model
	mode    int

	loading    bool
	submitting bool

	errBanner     string
	successBanner string
	bannerSeq     int
}

func newListModel(svc *api.SweetService, auth *api.AuthService, user *models.User) listModel {
	search := textinput.New()
	search.Placeholder = "search by name or category"
	search.CharLimit = 64
	search.Width = 40

	restock := textinput.New()
	restock.Placeholder = "amount"
	restock.CharLimit = 6
	restock.Width = 8

	return listModel{svc: svc, auth: auth, user: user, search: search, restock: restock}
}

// startLoad kicks off the initial fetch.
func (m listModel) startLoad() (listModel, tea.Cmd) {
	m.loading = true
	return m, loadSweets(m.svc)
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sweetsLoadedMsg:
		m.loading = false
		m.sweets = msg.sweets
		m.cursor = clampCursor(m.cursor, len(m.filtered()))
		return m, nil

	case sweetSavedMsg:
		text := "Sweet updated successfully!"
		if msg.created {
			text = "Sweet added successfully!"
		}
		return m.finishMutation(text, 3*time.Second)

	case sweetDeletedMsg:
		return m.finishMutation("Sweet deleted successfully!", 3*time.Second)

	case sweetRestockedMsg:
		return m.finishMutation("Sweet restocked successfully!", 2*time.Second)

	case sweetPurchasedMsg:
		m.submitting = false
		return m.reload()

	case clearSuccessMsg:
		if msg.id == m.bannerSeq {
			m.successBanner = ""
		}
		return m, nil

	case errMsg:
		m.loading = false
		m.submitting = false
		m.mode = modeBrowse
		m.errBanner = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = clampCursor(m.cursor, len(m.filtered()))
		return m, cmd
	}

	switch m.mode {
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeRestock:
		return m.handleRestockKey(msg)
	}

	switch msg.String() {
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.filtered()))
		return m, nil
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.filtered()))
		return m, nil
	case "p":
		sweet, ok := m.selected()
		if !ok || m.submitting || !canPurchase(sweet) {
			return m, nil
		}
		m.submitting = true
		return m, purchaseSweet(m.svc, sweet.ID)
	case "a":
		if m.submitting {
			return m, nil
		}
		return m, func() tea.Msg { return openFormMsg{} }
	case "e":
		sweet, ok := m.selected()
		if !ok || m.submitting {
			return m, nil
		}
		return m, func() tea.Msg { return openFormMsg{sweet: &sweet} }
	case "r":
		_, ok := m.selected()
		if !ok || m.submitting || !m.isAdmin() {
			return m, nil
		}
		m.mode = modeRestock
		m.restock.SetValue("")
		m.restock.Focus()
		return m, textinput.Blink
	case "d":
		_, ok := m.selected()
		if !ok || m.submitting || !m.isAdmin() {
			return m, nil
		}
		m.mode = modeConfirmDelete
		return m, nil
	case "ctrl+l":
		if m.submitting {
			return m, nil
		}
		return m, logoutCmd(m.auth)
	case "esc":
		m.errBanner = ""
		return m, nil
	case "q":
		return m, tea.Quit
	}

	return m, nil
}

func (m listModel) handleConfirmKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		sweet, ok := m.selected()
		m.mode = modeBrowse
		if !ok || m.submitting {
			return m, nil
		}
		m.submitting = true
		return m, deleteSweet(m.svc, sweet.ID)
	case "n", "N", "esc":
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

func (m listModel) handleRestockKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		sweet, ok := m.selected()
		m.mode = modeBrowse
		m.restock.Blur()
		if !ok || m.submitting {
			return m, nil
		}
		m.submitting = true
		return m, restockSweet(m.svc, sweet.ID, coerceAmount(m.restock.Value()))
	case "esc":
		m.mode = modeBrowse
		m.restock.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.restock, cmd = m.restock.Update(msg)
	return m, cmd
}

// finishMutation shows a timed success banner and reloads from the server.
func (m listModel) finishMutation(text string, d time.Duration) (listModel, tea.Cmd) {
	m.submitting = false
	m.mode = modeBrowse
	m.bannerSeq++
	m.successBanner = text
	m2, reloadCmd := m.reload()
	return m2, tea.Batch(reloadCmd, clearSuccessAfter(d, m2.bannerSeq))
}

func (m listModel) reload() (listModel, tea.Cmd) {
	m.loading = true
	return m, loadSweets(m.svc)
}

func (m listModel) filtered() []models.Sweet {
	return filterSweets(m.sweets, m.search.Value())
}

func (m listModel) selected() (models.Sweet, bool) {
	rows := m.filtered()
	if len(rows) == 0 || m.cursor < 0 || m.cursor >= len(rows) {
		return models.Sweet{}, false
	}
	return rows[m.cursor], true
}

func (m listModel) isAdmin() bool {
	return m.user != nil && m.user.IsAdmin
}

func (m listModel) View() string {
	header := titleStyle.Render("Sweet Shop")
	if m.user != nil {
		header += "  " + labelStyle.Render(m.user.Username)
		if m.user.IsAdmin {
			header += " " + adminBadgeStyle.Render("ADMIN")
		}
	}
	view := header + "\n\n"

	if m.errBanner != "" {
		view += errorStyle.Render(m.errBanner) + "\n"
	}
	if m.successBanner != "" {
		view += successStyle.Render(m.successBanner) + "\n"
	}
	if m.errBanner != "" || m.successBanner != "" {
		view += "\n"
	}

	view += m.search.View() + "\n\n"

	rows := m.filtered()
	switch {
	case m.loading && len(m.sweets) == 0:
		view += "Loading sweets...\n"
	case len(rows) == 0 && strings.TrimSpace(m.search.Value()) != "":
		view += "No sweets found matching your search.\n"
	case len(rows) == 0:
		view += "No sweets available. Add your first sweet!\n"
	default:
		for i, sweet := range rows {
			line := fmt.Sprintf("%-24s %-14s $%8.2f  qty %4d", sweet.Name, sweet.Category, sweet.Price, sweet.Quantity)
			if sweet.Quantity == 0 {
				line += "  (out of stock)"
			}
			if i == m.cursor {
				view += selectedStyle.Render("> "+line) + "\n"
			} else {
				view += "  " + line + "\n"
			}
		}
	}
	view += "\n"

	switch m.mode {
	case modeConfirmDelete:
		if sweet, ok := m.selected(); ok {
			view += errorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", sweet.Name)) + "\n"
		}
	case modeRestock:
		view += "Restock amount (blank = 1): " + m.restock.View() + "\n"
		view += helpStyle.Render("enter: restock • esc: cancel") + "\n"
	default:
		help := "/: search • p: purchase • a: add • e: edit"
		if m.isAdmin() {
			help += " • r: restock • d: delete"
		}
		help += " • ctrl+l: logout • q: quit"
		view += helpStyle.Render(help) + "\n"
	}

	return docStyle.Render(view)
}

// filterSweets is the derived view of the snapshot: case-insensitive
// substring match over name or category. An empty query returns the
// snapshot unchanged.
func filterSweets(sweets []models.Sweet, query string) []models.Sweet {
	q := strings.TrimSpace(query)
	if q == "" {
		return sweets
	}
	q = strings.ToLower(q)
	var out []models.Sweet
	for _, sweet := range sweets {
		if strings.Contains(strings.ToLower(sweet.Name), q) ||
			strings.Contains(strings.ToLower(sweet.Category), q) {
			out = append(out, sweet)
		}
	}
	return out
}

// coerceAmount turns the free-text restock field into a positive integer,
// defaulting to 1 when blank or non-numeric.
func coerceAmount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// canPurchase gates the purchase action on remaining stock.
func canPurchase(sweet models.Sweet) bool {
	return sweet.Quantity > 0
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
