package cgd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/importer/charset"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const dateLayout = "02-01-2006"

// Parser reads CGD bank CSV exports and produces transaction params.
// It auto-detects which CGD format (conta, extrato, cartão) is being used
// by matching column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one CreateParams per movement. Person and category are left
// unset for the caller to fill in.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := charset.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching CGD format found: expected columns for conta, extrato, or cartão")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

// detectProfile returns the first profile whose columns all appear in a
// single row, along with that row's column map and index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func parseRows(p *Profile, cols colIndex, rows [][]string, firstRow int) ([]transaction.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var out []transaction.CreateParams

	for i, row := range rows {
		// Footer and pagination rows carry no date.
		if !isDate(cellValue(row, dateIdx)) {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", firstRow+i+1)
		}

		amount, kind, ok := p.amount(cols, row)
		if !ok {
			continue
		}

		out = append(out, transaction.CreateParams{
			Description: desc,
			Amount:      amount,
			Kind:        kind,
		})
	}

	return out, nil
}

func isDate(s string) bool {
	if s == "" {
		return false
	}

	_, err := time.Parse(dateLayout, s)

	return err == nil
}

// amount extracts the absolute amount and its direction from a row.
func (p *Profile) amount(cols colIndex, row []string) (decimal.Decimal, transaction.Kind, bool) {
	switch p.AmountMode {
	case amountSingle:
		return signedAmount(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		if d, ok := nonZero(cellValue(row, cols[p.DebitCol])); ok {
			return d.Abs(), transaction.KindExpense, true
		}

		if d, ok := nonZero(cellValue(row, cols[p.CreditCol])); ok {
			return d.Abs(), transaction.KindIncome, true
		}
	}

	return decimal.Zero, "", false
}

// signedAmount maps a negative value to an expense and a positive one to income.
func signedAmount(s string) (decimal.Decimal, transaction.Kind, bool) {
	d, ok := nonZero(s)
	if !ok {
		return decimal.Zero, "", false
	}

	if d.IsNegative() {
		return d.Neg(), transaction.KindExpense, true
	}

	return d, transaction.KindIncome, true
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseEuropeanAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
