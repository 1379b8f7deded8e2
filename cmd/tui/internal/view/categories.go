package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/category"
)

type categoriesState int

const (
	categoriesStateBrowse categoriesState = iota
	categoriesStateAdd
	categoriesStateDelete
)

type CategoriesModel struct {
	categoryService *category.Service

	state      categoriesState
	table      table.Model
	categories []*category.Category
	form       *huh.Form

	loading bool
	err     error
	status  string

	fields *categoryFields
}

type categoryFields struct {
	description string
	purpose     category.Purpose
	confirm     bool
}

func NewCategoriesModel(categorySvc *category.Service) CategoriesModel {
	return CategoriesModel{
		categoryService: categorySvc,
		table: newTable([]table.Column{
			{Title: "Description", Width: 40},
			{Title: "Purpose", Width: 10},
		}),
		fields:  &categoryFields{},
		loading: true,
	}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state != categoriesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | d: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCategoriesCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.categories = msg.categories
		m.refreshTable()

		return m, nil

	case categoriesSaveMsg:
		m.status = msg.status

		switch {
		case errors.Is(msg.err, category.ErrInUse):
			m.status = errorStyle("Category still has transactions and cannot be deleted.")
		case msg.err != nil:
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
		}

		m.state = categoriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCategoriesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == categoriesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCategoriesCmd()
		case "a":
			return m.startAdd()
		case "d":
			return m.startDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) startAdd() (tea.Model, tea.Cmd) {
	*m.fields = categoryFields{purpose: category.PurposeExpense}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.fields.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[category.Purpose]().
				Key("purpose").
				Title("Purpose").
				Options(
					huh.NewOption(category.PurposeExpense.String(), category.PurposeExpense),
					huh.NewOption(category.PurposeIncome.String(), category.PurposeIncome),
					huh.NewOption(category.PurposeBoth.String(), category.PurposeBoth),
				).
				Value(&m.fields.purpose),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = categoriesStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) startDelete() (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	m.fields.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s?", c.Description)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fields.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = categoriesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = categoriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == categoriesStateAdd {
		return m, m.createCmd()
	}

	return m, m.deleteCmd()
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.state != categoriesStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CategoriesModel) selected() *category.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.categories) {
		return nil
	}

	return m.categories[idx]
}

func (m *CategoriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.categories))
	for _, c := range m.categories {
		rows = append(rows, table.Row{c.Description, c.Purpose.String()})
	}

	m.table.SetRows(rows)
}

// Messages

type loadCategoriesMsg struct {
	categories []*category.Category
	err        error
}

func (m CategoriesModel) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		categories, err := m.categoryService.List(ctx)

		return loadCategoriesMsg{categories: categories, err: err}
	}
}

type categoriesSaveMsg struct {
	status string
	err    error
}

func (m CategoriesModel) createCmd() tea.Cmd {
	params := category.CreateParams{Description: m.fields.description, Purpose: m.fields.purpose}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.categoryService.Create(ctx, params)
		if err != nil {
			return categoriesSaveMsg{err: err}
		}

		return categoriesSaveMsg{status: fmt.Sprintf("Added %s.", c.Description)}
	}
}

func (m CategoriesModel) deleteCmd() tea.Cmd {
	c := m.selected()
	if c == nil || !m.fields.confirm {
		return func() tea.Msg { return categoriesSaveMsg{} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.categoryService.Delete(ctx, c.ID); err != nil {
			return categoriesSaveMsg{err: err}
		}

		return categoriesSaveMsg{status: fmt.Sprintf("Deleted %s.", c.Description)}
	}
}
