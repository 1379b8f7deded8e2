package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, description, amount, kind, person_id, category_id, created_at, person name, category description
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx   transaction.Transaction
		kind string
	)

	if err := s.Scan(
		&tx.ID, &tx.Description, &tx.Amount, &kind, &tx.PersonID, &tx.CategoryID, &tx.CreatedAt,
		&tx.PersonName, &tx.CategoryDescription,
	); err != nil {
		return nil, err
	}

	tx.Kind = transaction.Kind(kind)

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.description, t.amount, t.kind, t.person_id, t.category_id, t.created_at,
	p.name, c.description
`

const fromTransactions = `
	FROM transactions t
	JOIN people p ON p.id = t.person_id
	JOIN categories c ON c.id = t.category_id
`

const insertTransaction = `
	INSERT INTO transactions (description, amount, kind, person_id, category_id, created_at)
	VALUES ($1, $2, $3, $4, $5, clock_timestamp())
	RETURNING id, created_at
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, db execer, tx *transaction.Transaction) error {
	err := db.QueryRowContext(ctx, insertTransaction,
		tx.Description,
		tx.Amount,
		tx.Kind,
		tx.PersonID,
		tx.CategoryID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return mapInsertError(tx, err)
	}

	return nil
}

// mapInsertError turns a foreign key failure, caused by a person or category
// deleted after it was looked up, into the matching reference error.
func mapInsertError(tx *transaction.Transaction, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.ForeignKeyViolation {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if pgErr.ConstraintName == "transactions_person_id_fkey" {
		return &transaction.ReferenceError{Err: transaction.ErrPersonNotFound, ID: tx.PersonID}
	}

	return &transaction.ReferenceError{Err: transaction.ErrCategoryNotFound, ID: tx.CategoryID}
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return insert(ctx, s.db, tx)
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.PersonID != nil {
		query += fmt.Sprintf(" AND t.person_id = $%d", argIdx)

		args = append(args, *filter.PersonID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
	}

	query += " ORDER BY t.created_at ASC, t.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// importLockKey serialises concurrent imports for the same person.
func importLockKey(personID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("import"))
	h.Write([]byte{0})
	h.Write(personID[:])

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, personID uuid.UUID) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(personID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error { return itx.tx.Commit() }

// Rollback after a successful Commit is a no-op.
func (itx *importTx) Rollback() error {
	if err := itx.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := insert(ctx, itx.tx, tx); err != nil {
			return err
		}
	}

	return nil
}
