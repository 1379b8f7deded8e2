package view

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/person"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type txState int

const (
	txStateList txState = iota
	txStateAdding
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) Title() string {
	kind := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Kind))
	return fmt.Sprintf("%s  %10s  %s  %s", FormatDate(i.tx.CreatedAt), FormatAmount(i.tx.Amount), kind, i.tx.Description)
}

func (i txItem) Description() string {
	return fmt.Sprintf("%s · %s", i.tx.PersonName, i.tx.CategoryDescription)
}

func (i txItem) FilterValue() string {
	return i.tx.Description
}

type TransactionsModel struct {
	txService       *transaction.Service
	personService   *person.Service
	categoryService *category.Service

	state txState
	list  list.Model
	form  *huh.Form

	txs        []*transaction.Transaction
	people     []*person.Person
	categories []*category.Category

	// 0 shows everyone, i > 0 filters on people[i-1].
	personFilterIdx int

	loading bool
	status  string

	fields *txFields
}

type txFields struct {
	personID    uuid.UUID
	kind        transaction.Kind
	description string
	amount      string
	categoryID  uuid.UUID
}

func NewTransactionsModel(txSvc *transaction.Service, personSvc *person.Service, categorySvc *category.Service) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txService:       txSvc,
		personService:   personSvc,
		categoryService: categorySvc,
		list:            l,
		fields:          &txFields{},
		loading:         true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateAdding {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | p: person filter | /: filter"
}

func (m TransactionsModel) Init() tea.Cmd {
	return tea.Batch(m.loadRefsCmd(), m.loadTxsCmd())
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRefsMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.people = msg.people
		m.categories = msg.categories

		return m, nil

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.txs = msg.txs
		m.refreshListItems()

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case saveTxResultMsg:
		m.state = txStateList
		m.form = nil

		var violation *transaction.RuleViolation

		switch {
		case errors.As(msg.err, &violation):
			m.status = errorStyle("Rejected: " + violation.Reason)
			return m, nil
		case msg.err != nil:
			m.status = errorStyle(fmt.Sprintf("Error saving: %v", msg.err))
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateList:
		return m.updateList(msg)
	case txStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startAdding()
		case "p":
			m.personFilterIdx = (m.personFilterIdx + 1) % (len(m.people) + 1)
			m.loading = true

			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startAdding() (tea.Model, tea.Cmd) {
	if len(m.people) == 0 || len(m.categories) == 0 {
		m.status = "Add at least one person and one category first."
		return m, nil
	}

	*m.fields = txFields{personID: m.people[0].ID, kind: transaction.KindExpense}
	fields := m.fields
	today := m.personService.Today()

	personOptions := make([]huh.Option[uuid.UUID], 0, len(m.people))
	for _, p := range m.people {
		personOptions = append(personOptions, huh.NewOption(fmt.Sprintf("%s (%d)", p.Name, p.AgeOn(today)), p.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Key("person").
				Title("Person").
				Options(personOptions...).
				Value(&fields.personID),

			huh.NewSelect[transaction.Kind]().
				Key("kind").
				Title("Kind").
				OptionsFunc(func() []huh.Option[transaction.Kind] {
					return m.kindOptions(fields.personID, today)
				}, &fields.personID).
				Value(&fields.kind),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&fields.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&fields.amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return fmt.Errorf("amount must be a positive number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[uuid.UUID] {
					return m.categoryOptions(fields.kind)
				}, &fields.kind).
				Value(&fields.categoryID),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateAdding

	return m, m.form.Init()
}

// kindOptions offers income only to adults; the service enforces the same rule.
func (m TransactionsModel) kindOptions(personID uuid.UUID, today time.Time) []huh.Option[transaction.Kind] {
	opts := []huh.Option[transaction.Kind]{huh.NewOption(transaction.KindExpense.String(), transaction.KindExpense)}

	for _, p := range m.people {
		if p.ID == personID && !p.IsMinorOn(today) {
			opts = append(opts, huh.NewOption(transaction.KindIncome.String(), transaction.KindIncome))
		}
	}

	return opts
}

func (m TransactionsModel) categoryOptions(kind transaction.Kind) []huh.Option[uuid.UUID] {
	var opts []huh.Option[uuid.UUID]

	for _, c := range m.categories {
		if transaction.IsKindCompatible(kind, c.Purpose) {
			opts = append(opts, huh.NewOption(c.Description, c.ID))
		}
	}

	return opts
}

func (m TransactionsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	if m.state == txStateAdding && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render("New Transaction\n\n" + m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	header := "Person: " + activeStyle(m.personFilterLabel())

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(header + "\n" + statusLine + m.list.View())
}

func (m TransactionsModel) personFilterLabel() string {
	if m.personFilterIdx == 0 || m.personFilterIdx > len(m.people) {
		return "Everyone"
	}

	return m.people[m.personFilterIdx-1].Name
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type loadRefsMsg struct {
	people     []*person.Person
	categories []*category.Category
	err        error
}

func (m TransactionsModel) loadRefsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		people, err := m.personService.List(ctx)
		if err != nil {
			return loadRefsMsg{err: err}
		}

		categories, err := m.categoryService.List(ctx)

		return loadRefsMsg{people: people, categories: categories, err: err}
	}
}

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	var filter transaction.ListFilter
	if m.personFilterIdx > 0 && m.personFilterIdx <= len(m.people) {
		filter.PersonID = &m.people[m.personFilterIdx-1].ID
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type saveTxResultMsg struct {
	err error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	f := *m.fields

	return func() tea.Msg {
		amount, err := decimal.NewFromString(strings.TrimSpace(f.amount))
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.txService.Create(ctx, transaction.CreateParams{
			Description: f.description,
			Amount:      amount,
			Kind:        f.kind,
			PersonID:    f.personID,
			CategoryID:  f.categoryID,
		})

		return saveTxResultMsg{err: err}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
