package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/person"
)

type peopleState int

const (
	peopleStateBrowse peopleState = iota
	peopleStateAdd
	peopleStateDelete
)

type PeopleModel struct {
	personService *person.Service

	state  peopleState
	table  table.Model
	people []*person.Person
	form   *huh.Form

	loading bool
	err     error
	status  string

	fields *personFields
}

// personFields is shared by pointer so huh keeps writing to the same values
// after bubbletea copies the model.
type personFields struct {
	name      string
	birthDate string
	confirm   bool
}

func NewPeopleModel(personSvc *person.Service) PeopleModel {
	return PeopleModel{
		personService: personSvc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 30},
			{Title: "Birth date", Width: 12},
			{Title: "Age", Width: 5},
			{Title: "Minor", Width: 6},
		}),
		fields:  &personFields{},
		loading: true,
	}
}

func (m PeopleModel) Title() string { return "People" }

func (m PeopleModel) ShortHelp() string {
	if m.state != peopleStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | d: delete | r: refresh"
}

func (m PeopleModel) Init() tea.Cmd {
	return m.loadPeopleCmd()
}

func (m PeopleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPeopleMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.people = msg.people
		m.refreshTable()

		return m, nil

	case peopleSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
		}

		m.state = peopleStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadPeopleCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == peopleStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m PeopleModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPeopleCmd()
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

func (m PeopleModel) startAdd() (tea.Model, tea.Cmd) {
	*m.fields = personFields{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.fields.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("birth_date").
				Title("Birth date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.birthDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = peopleStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m PeopleModel) startDelete() (tea.Model, tea.Cmd) {
	p := m.selected()
	if p == nil {
		return m, nil
	}

	m.fields.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s?", p.Name)).
				Description("All of their transactions are deleted too.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fields.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = peopleStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m PeopleModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = peopleStateBrowse
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

	if m.state == peopleStateAdd {
		return m, m.createCmd()
	}

	return m, m.deleteCmd()
}

func (m PeopleModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading people...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.state != peopleStateBrowse && m.form != nil {
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

func (m PeopleModel) selected() *person.Person {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.people) {
		return nil
	}

	return m.people[idx]
}

func (m *PeopleModel) refreshTable() {
	today := m.personService.Today()

	rows := make([]table.Row, 0, len(m.people))
	for _, p := range m.people {
		minor := ""
		if p.IsMinorOn(today) {
			minor = "yes"
		}

		rows = append(rows, table.Row{
			p.Name,
			FormatDate(p.BirthDate),
			strconv.Itoa(p.AgeOn(today)),
			minor,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadPeopleMsg struct {
	people []*person.Person
	err    error
}

func (m PeopleModel) loadPeopleCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.personService.List(ctx)

		return loadPeopleMsg{people: people, err: err}
	}
}

type peopleSaveMsg struct {
	status string
	err    error
}

func (m PeopleModel) createCmd() tea.Cmd {
	name := m.fields.name
	birth := m.fields.birthDate

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		birthDate, err := time.Parse(time.DateOnly, birth)
		if err != nil {
			return peopleSaveMsg{err: err}
		}

		p, err := m.personService.Create(ctx, person.CreateParams{Name: name, BirthDate: birthDate})
		if err != nil {
			return peopleSaveMsg{err: err}
		}

		return peopleSaveMsg{status: fmt.Sprintf("Added %s.", p.Name)}
	}
}

func (m PeopleModel) deleteCmd() tea.Cmd {
	p := m.selected()
	if p == nil || !m.fields.confirm {
		return func() tea.Msg { return peopleSaveMsg{} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.personService.Delete(ctx, p.ID); err != nil {
			return peopleSaveMsg{err: err}
		}

		return peopleSaveMsg{status: fmt.Sprintf("Deleted %s and their transactions.", p.Name)}
	}
}
