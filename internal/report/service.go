package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/person"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report
type PersonLister interface {
	List(ctx context.Context) ([]*person.Person, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]*category.Category, error)
}

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	people       PersonLister
	categories   CategoryLister
	transactions TransactionLister
	now          func() time.Time
}

func NewService(people PersonLister, categories CategoryLister, transactions TransactionLister) *Service {
	return &Service{
		people:       people,
		categories:   categories,
		transactions: transactions,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to compute ages.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type PersonRow struct {
	PersonID uuid.UUID
	Name     string
	Age      int
	Totals
}

type PersonReport struct {
	Rows  []PersonRow
	Total Totals
}

type CategoryRow struct {
	CategoryID  uuid.UUID
	Description string
	Purpose     category.Purpose
	Totals
}

type CategoryReport struct {
	Rows  []CategoryRow
	Total Totals
}

// PersonTotals lists every registered person, including those with no
// transactions, sorted by name.
func (s *Service) PersonTotals(ctx context.Context) (*PersonReport, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}

	txs, err := s.transactions.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	byPerson := AggregateByPerson(txs)
	today := s.now()

	report := &PersonReport{Rows: make([]PersonRow, 0, len(people))}
	for _, p := range people {
		t := byPerson[p.ID]
		report.Rows = append(report.Rows, PersonRow{
			PersonID: p.ID,
			Name:     p.Name,
			Age:      p.AgeOn(today),
			Totals:   t,
		})
		report.Total = report.Total.Plus(t)
	}

	slices.SortStableFunc(report.Rows, func(a, b PersonRow) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return report, nil
}

// CategoryTotals lists every category, including unused ones, sorted by description.
func (s *Service) CategoryTotals(ctx context.Context) (*CategoryReport, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	txs, err := s.transactions.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	byCategory := AggregateByCategory(txs)

	report := &CategoryReport{Rows: make([]CategoryRow, 0, len(categories))}
	for _, c := range categories {
		t := byCategory[c.ID]
		report.Rows = append(report.Rows, CategoryRow{
			CategoryID:  c.ID,
			Description: c.Description,
			Purpose:     c.Purpose,
			Totals:      t,
		})
		report.Total = report.Total.Plus(t)
	}

	slices.SortStableFunc(report.Rows, func(a, b CategoryRow) int {
		return cmp.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	})

	return report, nil
}

func (s *Service) Summary(ctx context.Context, filter transaction.ListFilter) (Totals, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return Totals{}, fmt.Errorf("listing transactions: %w", err)
	}

	return Aggregate(txs), nil
}
