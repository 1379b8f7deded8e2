package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Statement is the set of transactions matching a filter together with their totals.
type Statement struct {
	Transactions []*transaction.Transaction
	Totals       report.Totals
}

// Service builds downloadable statements.
type Service struct {
	transactions TransactionLister
}

func NewService(transactions TransactionLister) *Service {
	return &Service{transactions: transactions}
}

// Export collects the transactions matching filter in recording order.
func (s *Service) Export(ctx context.Context, filter transaction.ListFilter) (*Statement, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &Statement{
		Transactions: txs,
		Totals:       report.Aggregate(txs),
	}, nil
}

var csvHeader = []string{"date", "description", "kind", "amount", "person", "category"}

// WriteCSV writes one row per transaction. Amounts keep two decimal places.
func WriteCSV(w io.Writer, st *Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, tx := range st.Transactions {
		record := []string{
			tx.CreatedAt.Format(time.DateOnly),
			tx.Description,
			string(tx.Kind),
			tx.Amount.StringFixed(2),
			tx.PersonName,
			tx.CategoryDescription,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders a plain-text statement suitable for pasting into an email.
func Summary(st *Statement) string {
	var sb strings.Builder

	for _, tx := range st.Transactions {
		sign := "-"
		if tx.Kind == transaction.KindIncome {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s € | %s | %s\n",
			tx.CreatedAt.Format(time.DateOnly),
			tx.Description,
			sign, tx.Amount.StringFixed(2),
			tx.PersonName,
			tx.CategoryDescription,
		)
	}

	fmt.Fprintf(&sb, "\nIncome: %s €\nExpense: %s €\nBalance: %s €\n",
		st.Totals.Income.StringFixed(2),
		st.Totals.Expense.StringFixed(2),
		st.Totals.Balance.StringFixed(2),
	)

	return sb.String()
}

// WriteArchive bundles transactions.csv and summary.txt into a zip written to w.
func WriteArchive(w io.Writer, st *Statement) error {
	zw := zip.NewWriter(w)

	f, err := zw.Create("transactions.csv")
	if err != nil {
		return fmt.Errorf("creating transactions.csv: %w", err)
	}

	if err := WriteCSV(f, st); err != nil {
		return fmt.Errorf("writing transactions.csv: %w", err)
	}

	f, err = zw.Create("summary.txt")
	if err != nil {
		return fmt.Errorf("creating summary.txt: %w", err)
	}

	if _, err := io.WriteString(f, Summary(st)); err != nil {
		return fmt.Errorf("writing summary.txt: %w", err)
	}

	return zw.Close()
}
