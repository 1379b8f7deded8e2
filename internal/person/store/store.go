package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/person"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, birth_date, created_at, updated_at
func scanPerson(s scanner) (*person.Person, error) {
	var p person.Person
	if err := s.Scan(&p.ID, &p.Name, &p.BirthDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}

const selectPersonColumns = `id, name, birth_date, created_at, updated_at`

func (s *Store) CreatePerson(ctx context.Context, p *person.Person) error {
	query := `
		INSERT INTO people (name, birth_date, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, p.Name, p.BirthDate).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("creating person: %w", err)
	}

	return nil
}

func (s *Store) GetPerson(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	query := `SELECT ` + selectPersonColumns + ` FROM people WHERE id = $1`

	p, err := scanPerson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, person.ErrNotFound
		}

		return nil, fmt.Errorf("getting person: %w", err)
	}

	return p, nil
}

func (s *Store) ListPeople(ctx context.Context) ([]*person.Person, error) {
	query := `SELECT ` + selectPersonColumns + ` FROM people ORDER BY name ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*person.Person

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}

		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}

	return people, nil
}

func (s *Store) UpdatePerson(ctx context.Context, p *person.Person) error {
	query := `
		UPDATE people
		SET name = $1, birth_date = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, p.Name, p.BirthDate, p.ID).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return person.ErrNotFound
		}

		return fmt.Errorf("updating person: %w", err)
	}

	return nil
}

// DeletePerson removes the person; their transactions go with them via ON DELETE CASCADE.
func (s *Store) DeletePerson(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	if n == 0 {
		return person.ErrNotFound
	}

	return nil
}
