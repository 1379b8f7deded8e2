package view

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/person"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateBankSelect importState = iota
	importStatePersonSelect
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	txService       *transaction.Service
	importService   *importer.Service
	matchingService *matching.Service
	personService   *person.Service

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int

	people       []*person.Person
	personCursor int

	result *transaction.ImportResult
	status string
	err    error
}

func NewImportModel(
	txSvc *transaction.Service,
	impSvc *importer.Service,
	matchSvc *matching.Service,
	personSvc *person.Service,
) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:       txSvc,
		importService:   impSvc,
		matchingService: matchSvc,
		personService:   personSvc,
		filePicker:      fp,
		bankOptions:     []importer.Bank{importer.BankCGD},
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadPeopleCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateBankSelect:
			return m.updateBankSelect(msg)
		case importStatePersonSelect:
			return m.updatePersonSelect(msg)
		}

	case loadPeopleMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.people = msg.people

		return m, nil

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.result = msg.result
		m.status = fmt.Sprintf("Imported %d transactions, rejected %d.",
			len(msg.result.Imported), len(msg.result.Rejected))

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePersonSelect:
		m.state = importStateBankSelect
		return m, nil
	case importStateFilePick:
		m.state = importStatePersonSelect
		return m, nil
	case importStateResult:
		m.state = importStateBankSelect
		m.err = nil
		m.result = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case tea.KeyDown:
		if m.bankCursor < len(m.bankOptions)-1 {
			m.bankCursor++
		}
	case tea.KeyEnter:
		m.selectedBank = m.bankOptions[m.bankCursor]
		m.state = importStatePersonSelect
	}

	return m, nil
}

func (m ImportModel) updatePersonSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.personCursor > 0 {
			m.personCursor--
		}
	case tea.KeyDown:
		if m.personCursor < len(m.people)-1 {
			m.personCursor++
		}
	case tea.KeyEnter:
		if len(m.people) == 0 {
			return m, nil
		}

		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateBankSelect:
		return m.viewBankSelect()
	case importStatePersonSelect:
		return m.viewPersonSelect()
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	s := "Select Bank:\n\n"

	for i, bank := range m.bankOptions {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(bank))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewPersonSelect() string {
	if len(m.people) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No people registered yet.\n\n(Esc to go back)")
	}

	var b strings.Builder
	b.WriteString("Import into whose account?\n\n")

	for i, p := range m.people {
		cursor := " "
		if i == m.personCursor {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, p.Name)
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func (m ImportModel) viewFilePick() string {
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status))

	if m.result != nil && len(m.result.Rejected) > 0 {
		b.WriteString("\n\nRejected rows:\n")

		for _, rej := range m.result.Rejected {
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				FormatAmount(rej.Params.Amount),
				rej.Params.Description,
				lipgloss.NewStyle().Faint(true).Render(rej.Reason),
			)
		}
	}

	b.WriteString("\n\n(Esc to go back)")

	return style.Render(b.String())
}

// Messages

type importResultMsg struct {
	result *transaction.ImportResult
	err    error
}

func (m ImportModel) loadPeopleCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.personService.List(ctx)

		return loadPeopleMsg{people: people, err: err}
	}
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	bank := m.selectedBank
	personID := m.people[m.personCursor].ID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(bank, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		for i, p := range params {
			categoryID, ok, err := m.matchingService.Suggest(ctx, p.Description)
			if err != nil {
				slog.Warn("failed to suggest category", "description", p.Description, "error", err)
				continue
			}

			if ok {
				params[i].CategoryID = categoryID
			}
		}

		result, err := m.txService.ImportBatch(ctx, personID, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}
