package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryStore "github.com/MrJamesThe3rd/tally/internal/category/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/person"
	personStore "github.com/MrJamesThe3rd/tally/internal/person/store"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type model struct {
	personService   *person.Service
	categoryService *category.Service
	txService       *transaction.Service
	matchingService *matching.Service
	importService   *importer.Service
	reportService   *report.Service

	appName     string
	currentView View
	active      view.View
}

type View int

const (
	ViewMenu View = iota
	ViewPeople
	ViewCategories
	ViewTransactions
	ViewTotals
	ViewImport
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	personSvc := person.NewService(personStore.New(db))
	categorySvc := category.NewService(categoryStore.New(db))
	txSvc := transaction.NewService(txStore.New(db), personSvc, categorySvc)

	return model{
		personService:   personSvc,
		categoryService: categorySvc,
		txService:       txSvc,
		matchingService: matching.NewService(matchingStore.New(db)),
		importService:   importer.NewService(),
		reportService:   report.NewService(personSvc, categorySvc, txSvc),
		appName:         cfg.App.Name,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (model, tea.Cmd) {
	m.currentView = v

	switch v {
	case ViewPeople:
		m.active = view.NewPeopleModel(m.personService)
	case ViewCategories:
		m.active = view.NewCategoriesModel(m.categoryService)
	case ViewTransactions:
		m.active = view.NewTransactionsModel(m.txService, m.personService, m.categoryService)
	case ViewTotals:
		m.active = view.NewTotalsModel(m.reportService)
	case ViewImport:
		m.active = view.NewImportModel(m.txService, m.importService, m.matchingService, m.personService)
	default:
		m.active = nil
		return m, nil
	}

	return m, m.active.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewPeople)
			case "2":
				return m.open(ViewCategories)
			case "3":
				return m.open(ViewTransactions)
			case "4":
				return m.open(ViewTotals)
			case "5":
				return m.open(ViewImport)
			}

			return m, nil
		}
	case view.BackMsg:
		return m.open(ViewMenu)
	}

	if m.active == nil {
		return m, nil
	}

	newModel, cmd := m.active.Update(msg)
	if v, ok := newModel.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. People\n" +
				"2. Categories\n" +
				"3. Transactions\n" +
				"4. Totals\n" +
				"5. Import Bank Statement\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).Render(m.active.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.active.Title()),
		m.active.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(help),
	)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
