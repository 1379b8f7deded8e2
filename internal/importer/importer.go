package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var ErrUnknownBank = errors.New("unknown bank")

type Bank string

const (
	BankCGD Bank = "cgd"
)

// Importer turns a bank export into unsaved transactions. Person and category
// are assigned by the caller.
type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
