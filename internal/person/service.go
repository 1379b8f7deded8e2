package person

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxNameLength = 100

var (
	ErrNotFound         = errors.New("person not found")
	ErrInvalidName      = errors.New("name is required and must be at most 100 characters")
	ErrInvalidBirthDate = errors.New("birth date is required and cannot be in the future")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=person
type Repository interface {
	CreatePerson(ctx context.Context, p *Person) error
	GetPerson(ctx context.Context, id uuid.UUID) (*Person, error)
	ListPeople(ctx context.Context) ([]*Person, error)
	UpdatePerson(ctx context.Context, p *Person) error
	DeletePerson(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the clock used to reject future birth dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateParams struct {
	Name      string
	BirthDate time.Time
}

type UpdateParams struct {
	Name      *string
	BirthDate *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Person, error) {
	p := &Person{
		Name:      strings.TrimSpace(params.Name),
		BirthDate: dateOnly(params.BirthDate),
	}
	if err := s.validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePerson(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Person, error) {
	return s.repo.GetPerson(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Person, error) {
	return s.repo.ListPeople(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Person, error) {
	p, err := s.repo.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		p.Name = strings.TrimSpace(*params.Name)
	}

	if params.BirthDate != nil {
		p.BirthDate = dateOnly(*params.BirthDate)
	}

	if err := s.validate(p); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePerson(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete removes the person together with all of their transactions.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePerson(ctx, id)
}

// Today is the calendar day the service currently considers "today".
func (s *Service) Today() time.Time {
	return dateOnly(s.now())
}

func (s *Service) validate(p *Person) error {
	if p.Name == "" || utf8.RuneCountInString(p.Name) > maxNameLength {
		return ErrInvalidName
	}

	if p.BirthDate.IsZero() || p.BirthDate.After(s.Today()) {
		return ErrInvalidBirthDate
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
