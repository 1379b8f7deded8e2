package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

type totalsTab int

const (
	totalsTabPeople totalsTab = iota
	totalsTabCategories
)

type TotalsModel struct {
	reportService *report.Service

	tab        totalsTab
	people     table.Model
	categories table.Model
	peopleSum  report.Totals
	catSum     report.Totals

	loading bool
	err     error
}

func NewTotalsModel(reportSvc *report.Service) TotalsModel {
	money := func(title string) table.Column { return table.Column{Title: title, Width: 12} }

	return TotalsModel{
		reportService: reportSvc,
		people: newTable([]table.Column{
			{Title: "Name", Width: 30},
			{Title: "Age", Width: 5},
			money("Income"), money("Expense"), money("Balance"),
		}),
		categories: newTable([]table.Column{
			{Title: "Category", Width: 30},
			{Title: "Purpose", Width: 8},
			money("Income"), money("Expense"), money("Balance"),
		}),
		loading: true,
	}
}

func (m TotalsModel) Title() string { return "Totals" }

func (m TotalsModel) ShortHelp() string {
	return "Esc: back | Tab: people/categories | r: refresh"
}

func (m TotalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TotalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTotalsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.setPeople(msg.people)
		m.setCategories(msg.categories)

		return m, nil

	case tea.WindowSizeMsg:
		m.people.SetHeight(msg.Height - 12)
		m.categories.SetHeight(msg.Height - 12)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.tab = (m.tab + 1) % 2
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	if m.tab == totalsTabPeople {
		m.people, cmd = m.people.Update(msg)
	} else {
		m.categories, cmd = m.categories.Update(msg)
	}

	return m, cmd
}

func (m TotalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading totals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	peopleLabel, categoriesLabel := "People", "Categories"
	body, sum := m.people.View(), m.peopleSum

	if m.tab == totalsTabPeople {
		peopleLabel = activeStyle(peopleLabel)
	} else {
		categoriesLabel = activeStyle(categoriesLabel)
		body, sum = m.categories.View(), m.catSum
	}

	footer := fmt.Sprintf("Total  income %s  expense %s  balance %s",
		FormatAmount(sum.Income), FormatAmount(sum.Expense), balanceStyle(sum))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(peopleLabel+" | "+categoriesLabel),
		boxed(body),
		footer,
	))
}

func balanceStyle(t report.Totals) string {
	color := lipgloss.Color("46")
	if t.Balance.IsNegative() {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Foreground(color).Render(FormatAmount(t.Balance))
}

func moneyCells(t report.Totals) []string {
	return []string{FormatAmount(t.Income), FormatAmount(t.Expense), FormatAmount(t.Balance)}
}

func (m *TotalsModel) setPeople(r *report.PersonReport) {
	rows := make([]table.Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, append(table.Row{row.Name, strconv.Itoa(row.Age)}, moneyCells(row.Totals)...))
	}

	m.people.SetRows(rows)
	m.peopleSum = r.Total
}

func (m *TotalsModel) setCategories(r *report.CategoryReport) {
	rows := make([]table.Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, append(table.Row{row.Description, row.Purpose.String()}, moneyCells(row.Totals)...))
	}

	m.categories.SetRows(rows)
	m.catSum = r.Total
}

// Messages

type loadTotalsMsg struct {
	people     *report.PersonReport
	categories *report.CategoryReport
	err        error
}

func (m TotalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.reportService.PersonTotals(ctx)
		if err != nil {
			return loadTotalsMsg{err: err}
		}

		categories, err := m.reportService.CategoryTotals(ctx)
		if err != nil {
			return loadTotalsMsg{err: err}
		}

		return loadTotalsMsg{people: people, categories: categories}
	}
}
