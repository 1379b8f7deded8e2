package category

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxDescriptionLength = 100

var (
	ErrNotFound           = errors.New("category not found")
	ErrInvalidDescription = errors.New("description is required and must be at most 100 characters")
	ErrInvalidPurpose     = errors.New("purpose must be one of expense, income or both")
	ErrInUse              = errors.New("category still has transactions")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Description string
	Purpose     Purpose
}

type UpdateParams struct {
	Description *string
	Purpose     *Purpose
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	c := &Category{
		Description: strings.TrimSpace(params.Description),
		Purpose:     params.Purpose,
	}
	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

// Update changes description and/or purpose. Existing transactions are not
// re-validated against a new purpose: rules apply when a transaction is recorded.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		c.Description = strings.TrimSpace(*params.Description)
	}

	if params.Purpose != nil {
		c.Purpose = *params.Purpose
	}

	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}

func validate(c *Category) error {
	if c.Description == "" || utf8.RuneCountInString(c.Description) > maxDescriptionLength {
		return ErrInvalidDescription
	}

	if !c.Purpose.Valid() {
		return ErrInvalidPurpose
	}

	return nil
}
