package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPattern   = errors.New("pattern is required")
	ErrCategoryNotFound = errors.New("category not found")
)

// Rule maps every bank description containing Pattern to a category.
type Rule struct {
	ID         uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	CreatedAt  time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the category of the longest pattern contained in
	// rawDescription, case-insensitively, or uuid.Nil when none matches.
	FindMatch(ctx context.Context, rawDescription string) (uuid.UUID, error)
	SaveRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category learned for a description, if any.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (uuid.UUID, bool, error) {
	if strings.TrimSpace(rawDescription) == "" {
		return uuid.Nil, false, nil
	}

	id, err := s.repo.FindMatch(ctx, rawDescription)
	if err != nil {
		return uuid.Nil, false, err
	}

	return id, id != uuid.Nil, nil
}

// Learn remembers that descriptions containing pattern belong to categoryID.
// Learning an existing pattern again moves it to the new category.
func (s *Service) Learn(ctx context.Context, pattern string, categoryID uuid.UUID) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrInvalidPattern
	}

	if categoryID == uuid.Nil {
		return nil, ErrCategoryNotFound
	}

	r := &Rule{Pattern: pattern, CategoryID: categoryID}
	if err := s.repo.SaveRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}
