package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/person"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type mocks struct {
	people       *report.MockPersonLister
	categories   *report.MockCategoryLister
	transactions *report.MockTransactionLister
}

func setup(t *testing.T) (*report.Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		people:       report.NewMockPersonLister(ctrl),
		categories:   report.NewMockCategoryLister(ctrl),
		transactions: report.NewMockTransactionLister(ctrl),
	}

	svc := report.NewService(m.people, m.categories, m.transactions).
		WithClock(func() time.Time { return now })

	return svc, m
}

func TestService_PersonTotals(t *testing.T) {
	svc, m := setup(t)

	zoe := &person.Person{ID: uuid.New(), Name: "Zoe", BirthDate: time.Date(2010, 11, 1, 0, 0, 0, 0, time.UTC)}
	ana := &person.Person{ID: uuid.New(), Name: "ana", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	idle := &person.Person{ID: uuid.New(), Name: "Bruno", BirthDate: time.Date(2000, 5, 5, 0, 0, 0, 0, time.UTC)}
	food := uuid.New()

	m.people.EXPECT().List(gomock.Any()).Return([]*person.Person{zoe, ana, idle}, nil)
	m.transactions.EXPECT().List(gomock.Any(), transaction.ListFilter{}).Return([]*transaction.Transaction{
		tx(ana.ID, food, transaction.KindIncome, "100"),
		tx(zoe.ID, food, transaction.KindExpense, "20.50"),
		tx(ana.ID, food, transaction.KindExpense, "40"),
	}, nil)

	got, err := svc.PersonTotals(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Rows, 3)
	assert.Equal(t, []string{"ana", "Bruno", "Zoe"}, []string{got.Rows[0].Name, got.Rows[1].Name, got.Rows[2].Name})

	assert.Equal(t, 36, got.Rows[0].Age)
	assertTotals(t, "100", "40", "60", got.Rows[0].Totals)

	assert.Equal(t, idle.ID, got.Rows[1].PersonID)
	assertTotals(t, "0", "0", "0", got.Rows[1].Totals)

	assert.Equal(t, 15, got.Rows[2].Age)
	assertTotals(t, "0", "20.50", "-20.50", got.Rows[2].Totals)

	assertTotals(t, "100", "60.50", "39.50", got.Total)
}

func TestService_CategoryTotals(t *testing.T) {
	svc, m := setup(t)

	salary := &category.Category{ID: uuid.New(), Description: "Salary", Purpose: category.PurposeIncome}
	food := &category.Category{ID: uuid.New(), Description: "Food", Purpose: category.PurposeExpense}
	p := uuid.New()

	m.categories.EXPECT().List(gomock.Any()).Return([]*category.Category{salary, food}, nil)
	m.transactions.EXPECT().List(gomock.Any(), transaction.ListFilter{}).Return([]*transaction.Transaction{
		tx(p, salary.ID, transaction.KindIncome, "3000"),
		tx(p, food.ID, transaction.KindExpense, "500"),
	}, nil)

	got, err := svc.CategoryTotals(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Food", got.Rows[0].Description)
	assert.Equal(t, category.PurposeExpense, got.Rows[0].Purpose)
	assertTotals(t, "0", "500", "-500", got.Rows[0].Totals)
	assertTotals(t, "3000", "0", "3000", got.Rows[1].Totals)
	assertTotals(t, "3000", "500", "2500", got.Total)
}

func TestService_Summary(t *testing.T) {
	svc, m := setup(t)

	personID := uuid.New()
	filter := transaction.ListFilter{PersonID: &personID}

	m.transactions.EXPECT().List(gomock.Any(), filter).Return([]*transaction.Transaction{
		tx(personID, uuid.New(), transaction.KindIncome, "10"),
		tx(personID, uuid.New(), transaction.KindExpense, "2.5"),
	}, nil)

	got, err := svc.Summary(context.Background(), filter)
	require.NoError(t, err)
	assertTotals(t, "10", "2.5", "7.5", got)
}

func TestService_PersonTotals_ListError(t *testing.T) {
	svc, m := setup(t)

	m.people.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))

	_, err := svc.PersonTotals(context.Background())
	assert.EqualError(t, err, "listing people: db error")
}
