package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sweetshop/internal/api"
	"sweetshop/internal/models"
)

const (
	fieldName = iota
	fieldCategory
	fieldPrice
	fieldQuantity
)

// formModel is the add/edit screen. editing is nil when creating.
type formModel struct {
	svc        *api.SweetService
	editing    *models.Sweet
	inputs     []textinput.Model
	focus      int
	submitting bool
	errBanner  string
}

func newFormModel(svc *api.SweetService, editing *models.Sweet) formModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 64
	name.Width = 32
	name.Focus()

	category := textinput.New()
	category.Placeholder = "category"
	category.CharLimit = 64
	category.Width = 32

	price := textinput.New()
	price.Placeholder = "price"
	price.CharLimit = 12
	price.Width = 12

	quantity := textinput.New()
	quantity.Placeholder = "quantity"
	quantity.CharLimit = 8
	quantity.Width = 12

	if editing != nil {
		name.SetValue(editing.Name)
		category.SetValue(editing.Category)
		price.SetValue(strconv.FormatFloat(editing.Price, 'f', 2, 64))
		quantity.SetValue(strconv.Itoa(editing.Quantity))
	}

	return formModel{svc: svc, editing: editing, inputs: []textinput.Model{name, category, price, quantity}}
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
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
				return m, func() tea.Msg { return closeFormMsg{} }
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

func (m formModel) submit() (formModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	in, err := m.parse()
	if err != nil {
		m.errBanner = err.Error()
		return m, nil
	}
	m.submitting = true
	m.errBanner = ""
	if m.editing != nil {
		return m, updateSweet(m.svc, m.editing.ID, in)
	}
	return m, createSweet(m.svc, in)
}

// parse validates the fields before anything is sent: all present, price a
// non-negative number, quantity a non-negative integer.
func (m formModel) parse() (models.SweetInput, error) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	category := strings.TrimSpace(m.inputs[fieldCategory].Value())
	if name == "" || category == "" {
		return models.SweetInput{}, fmt.Errorf("name and category are required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldPrice].Value()), 64)
	if err != nil || price < 0 {
		return models.SweetInput{}, fmt.Errorf("price must be a non-negative number")
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldQuantity].Value()))
	if err != nil || quantity < 0 {
		return models.SweetInput{}, fmt.Errorf("quantity must be a non-negative integer")
	}
	return models.SweetInput{Name: name, Category: category, Price: price, Quantity: quantity}, nil
}

func (m formModel) setFocus(focus int) formModel {
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

func (m formModel) View() string {
	title := "Add New Sweet"
	if m.editing != nil {
		title = "Edit Sweet"
	}
	view := titleStyle.Render(title) + "\n\n"
	if m.errBanner != "" {
		view += errorStyle.Render(m.errBanner) + "\n\n"
	}
	labels := []string{"Name", "Category", "Price ($)", "Quantity"}
	for i, in := range m.inputs {
		view += labelStyle.Render(labels[i]) + "\n" + in.View() + "\n\n"
	}
	if m.submitting {
		view += "Saving...\n"
	}
	view += helpStyle.Render("enter: save • esc: cancel • ctrl+c: quit")
	return docStyle.Render(view)
}
