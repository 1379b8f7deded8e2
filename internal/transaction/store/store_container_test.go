//go:build container

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryStore "github.com/MrJamesThe3rd/tally/internal/category/store"
	"github.com/MrJamesThe3rd/tally/internal/person"
	personStore "github.com/MrJamesThe3rd/tally/internal/person/store"
	"github.com/MrJamesThe3rd/tally/internal/testhelpers"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type fixture struct {
	store  *store.Store
	people *personStore.Store
	ana    *person.Person
	food   *category.Category
	salary *category.Category
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	db := testhelpers.NewPostgres(t)

	f := fixture{
		store:  store.New(db),
		people: personStore.New(db),
		ana:    &person.Person{Name: "Ana", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
		food:   &category.Category{Description: "Food", Purpose: category.PurposeExpense},
		salary: &category.Category{Description: "Salary", Purpose: category.PurposeIncome},
	}

	require.NoError(t, f.people.CreatePerson(ctx, f.ana))

	categories := categoryStore.New(db)
	require.NoError(t, categories.CreateCategory(ctx, f.food))
	require.NoError(t, categories.CreateCategory(ctx, f.salary))

	return f
}

func (f fixture) tx(desc, amount string, kind transaction.Kind, c *category.Category) *transaction.Transaction {
	return &transaction.Transaction{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		PersonID:    f.ana.ID,
		CategoryID:  c.ID,
	}
}

func TestStore_CreateAndList(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	bread := f.tx("Bread", "1.20", transaction.KindExpense, f.food)
	pay := f.tx("October pay", "2500.55", transaction.KindIncome, f.salary)
	require.NoError(t, f.store.CreateTransaction(ctx, bread))
	require.NoError(t, f.store.CreateTransaction(ctx, pay))

	got, err := f.store.GetTransaction(ctx, bread.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.2").Equal(got.Amount))
	assert.Equal(t, "Ana", got.PersonName)
	assert.Equal(t, "Food", got.CategoryDescription)

	all, err := f.store.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bread.ID, all[0].ID)

	onlySalary, err := f.store.ListTransactions(ctx, transaction.ListFilter{CategoryID: &f.salary.ID})
	require.NoError(t, err)
	require.Len(t, onlySalary, 1)
	assert.Equal(t, "2500.55", onlySalary[0].Amount.StringFixed(2))

	_, err = f.store.GetTransaction(ctx, uuid.New())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestStore_CreateWithMissingReference(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	orphan := f.tx("Bread", "1.20", transaction.KindExpense, f.food)
	orphan.PersonID = uuid.New()

	err := f.store.CreateTransaction(ctx, orphan)
	assert.ErrorIs(t, err, transaction.ErrPersonNotFound)

	orphan = f.tx("Bread", "1.20", transaction.KindExpense, f.food)
	orphan.CategoryID = uuid.New()

	err = f.store.CreateTransaction(ctx, orphan)
	assert.ErrorIs(t, err, transaction.ErrCategoryNotFound)
}

func TestStore_DeletingPersonCascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	require.NoError(t, f.store.CreateTransaction(ctx, f.tx("Bread", "1.20", transaction.KindExpense, f.food)))
	require.NoError(t, f.people.DeletePerson(ctx, f.ana.ID))

	all, err := f.store.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Import(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("CommitKeepsOrder", func(t *testing.T) {
		itx, err := f.store.BeginImport(ctx, f.ana.ID)
		require.NoError(t, err)

		batch := []*transaction.Transaction{
			f.tx("first", "1", transaction.KindExpense, f.food),
			f.tx("second", "2", transaction.KindExpense, f.food),
			f.tx("third", "3", transaction.KindExpense, f.food),
		}
		require.NoError(t, itx.CreateTransactions(ctx, batch))
		require.NoError(t, itx.Commit())
		require.NoError(t, itx.Rollback())

		all, err := f.store.ListTransactions(ctx, transaction.ListFilter{PersonID: &f.ana.ID})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"first", "second", "third"},
			[]string{all[0].Description, all[1].Description, all[2].Description})
	})

	t.Run("RollbackDiscardsBatch", func(t *testing.T) {
		itx, err := f.store.BeginImport(ctx, f.ana.ID)
		require.NoError(t, err)

		require.NoError(t, itx.CreateTransactions(ctx, []*transaction.Transaction{
			f.tx("discarded", "9", transaction.KindExpense, f.food),
		}))
		require.NoError(t, itx.Rollback())

		all, err := f.store.ListTransactions(ctx, transaction.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("SamePersonImportsSerialise", func(t *testing.T) {
		first, err := f.store.BeginImport(ctx, f.ana.ID)
		require.NoError(t, err)

		var (
			wg       sync.WaitGroup
			acquired = make(chan struct{})
		)

		wg.Go(func() {
			second, err := f.store.BeginImport(ctx, f.ana.ID)
			if !assert.NoError(t, err) {
				return
			}

			close(acquired)
			assert.NoError(t, second.Rollback())
		})

		select {
		case <-acquired:
			t.Fatal("second import started while the first held the lock")
		case <-time.After(200 * time.Millisecond):
		}

		require.NoError(t, first.Rollback())
		wg.Wait()
	})
}
