package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/person"
)

const maxDescriptionLength = 200

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrInvalidAmount      = errors.New("amount must be positive with at most two decimal places")
	ErrInvalidKind        = errors.New("kind must be expense or income")
	ErrInvalidDescription = errors.New("description is required and must be at most 200 characters")

	// ErrReferenceNotFound is wrapped by every error reporting a person or
	// category id that does not resolve.
	ErrReferenceNotFound = errors.New("reference not found")
	ErrPersonNotFound    = fmt.Errorf("person: %w", ErrReferenceNotFound)
	ErrCategoryNotFound  = fmt.Errorf("category: %w", ErrReferenceNotFound)
)

// ReferenceError reports the id that failed to resolve. It unwraps to
// ErrPersonNotFound or ErrCategoryNotFound.
type ReferenceError struct {
	Err error
	ID  uuid.UUID
}

func (e *ReferenceError) Error() string {
	entity := "category"
	if errors.Is(e.Err, ErrPersonNotFound) {
		entity = "person"
	}

	return fmt.Sprintf("%s %s not found", entity, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	BeginImport(ctx context.Context, personID uuid.UUID) (ImportTx, error)
}

type ImportTx interface {
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type PersonFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*person.Person, error)
}

type CategoryFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

// Publisher is notified after a transaction has been stored.
type Publisher interface {
	PublishRecorded(ctx context.Context, tx *Transaction) error
}

type Service struct {
	repo       Repository
	people     PersonFinder
	categories CategoryFinder
	publisher  Publisher
	now        func() time.Time
}

type Option func(*Service)

// WithClock sets the clock that decides "today" for age-based rules.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPublisher sends every recorded transaction to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(repo Repository, people PersonFinder, categories CategoryFinder, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		people:     people,
		categories: categories,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	Kind        Kind
	PersonID    uuid.UUID
	CategoryID  uuid.UUID
}

type ListFilter struct {
	PersonID   *uuid.UUID
	CategoryID *uuid.UUID
}

// Create records a transaction once its references resolve and every business
// rule accepts it. Errors are ErrReferenceNotFound-wrapped lookups, a
// *RuleViolation, an input validation sentinel, or a storage failure.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := newTransaction(params)
	if err != nil {
		return nil, err
	}

	p, err := s.lookupPerson(ctx, tx.PersonID)
	if err != nil {
		return nil, err
	}

	c, err := s.lookupCategory(ctx, tx.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := Validate(tx, p, c, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	tx.PersonName = p.Name
	tx.CategoryDescription = c.Description

	s.publish(ctx, tx)

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

type ImportResult struct {
	Imported []*Transaction
	Rejected []Rejection
}

// Rejection is an import row that was not recorded, with the reason why.
type Rejection struct {
	Params CreateParams
	Reason string
}

// ImportBatch records rows for a single person. Each row is checked against the
// same rules as Create; rows that fail are reported in Rejected and the rest are
// stored together in one database transaction.
func (s *Service) ImportBatch(ctx context.Context, personID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	p, err := s.lookupPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	var (
		today      = s.now()
		categories = make(map[uuid.UUID]*category.Category)
		accepted   []*Transaction
		rejected   []Rejection
	)

	for _, row := range params {
		row.PersonID = personID

		reason, tx, err := s.checkImportRow(ctx, row, p, categories, today)
		if err != nil {
			return nil, err
		}

		if reason != "" {
			rejected = append(rejected, Rejection{Params: row, Reason: reason})
			continue
		}

		accepted = append(accepted, tx)
	}

	if len(accepted) == 0 {
		return &ImportResult{Rejected: rejected}, nil
	}

	itx, err := s.repo.BeginImport(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateTransactions(ctx, accepted); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	for _, tx := range accepted {
		tx.PersonName = p.Name
		tx.CategoryDescription = categories[tx.CategoryID].Description
		s.publish(ctx, tx)
	}

	return &ImportResult{Imported: accepted, Rejected: rejected}, nil
}

// checkImportRow returns a non-empty reason when the row must be skipped.
// Only infrastructure failures are returned as errors.
func (s *Service) checkImportRow(
	ctx context.Context,
	row CreateParams,
	p *person.Person,
	categories map[uuid.UUID]*category.Category,
	today time.Time,
) (string, *Transaction, error) {
	if row.CategoryID == uuid.Nil {
		return "no category matched this description.", nil, nil
	}

	tx, err := newTransaction(row)
	if err != nil {
		return err.Error(), nil, nil
	}

	c, ok := categories[row.CategoryID]
	if !ok {
		c, err = s.lookupCategory(ctx, row.CategoryID)
		if errors.Is(err, ErrReferenceNotFound) {
			return err.Error(), nil, nil
		}

		if err != nil {
			return "", nil, err
		}

		categories[row.CategoryID] = c
	}

	var violation *RuleViolation
	if err := Validate(tx, p, c, today); errors.As(err, &violation) {
		return violation.Reason, nil, nil
	}

	return "", tx, nil
}

func (s *Service) lookupPerson(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	p, err := s.people.Get(ctx, id)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, &ReferenceError{Err: ErrPersonNotFound, ID: id}
		}

		return nil, fmt.Errorf("looking up person: %w", err)
	}

	return p, nil
}

func (s *Service) lookupCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, &ReferenceError{Err: ErrCategoryNotFound, ID: id}
		}

		return nil, fmt.Errorf("looking up category: %w", err)
	}

	return c, nil
}

func (s *Service) publish(ctx context.Context, tx *Transaction) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishRecorded(ctx, tx); err != nil {
		slog.Error("failed to publish recorded transaction", "id", tx.ID, "error", err)
	}
}

func newTransaction(params CreateParams) (*Transaction, error) {
	desc := strings.TrimSpace(params.Description)
	if desc == "" || utf8.RuneCountInString(desc) > maxDescriptionLength {
		return nil, ErrInvalidDescription
	}

	if !params.Amount.IsPositive() || !params.Amount.Equal(params.Amount.Round(2)) {
		return nil, ErrInvalidAmount
	}

	if !params.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	return &Transaction{
		Description: desc,
		Amount:      params.Amount,
		Kind:        params.Kind,
		PersonID:    params.PersonID,
		CategoryID:  params.CategoryID,
	}, nil
}
