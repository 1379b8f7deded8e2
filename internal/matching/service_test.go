package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/matching"
)

func TestService_Suggest(t *testing.T) {
	groceries := uuid.New()

	tests := []struct {
		name        string
		description string
		setupMock   func(m *matching.MockRepository)
		wantID      uuid.UUID
		wantOK      bool
		wantErr     string
	}{
		{
			name:        "Match",
			description: "COMPRA CONTINENTE LISBOA",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "COMPRA CONTINENTE LISBOA").Return(groceries, nil)
			},
			wantID: groceries,
			wantOK: true,
		},
		{
			name:        "NoMatch",
			description: "TRF 0001",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "TRF 0001").Return(uuid.Nil, nil)
			},
		},
		{
			name:        "BlankSkipsLookup",
			description: "   ",
		},
		{
			name:        "RepoError",
			description: "X",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "X").Return(uuid.Nil, errors.New("db error"))
			},
			wantErr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			id, ok, err := matching.NewService(repo).Suggest(context.Background(), tt.description)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestService_Learn(t *testing.T) {
	categoryID := uuid.New()

	t.Run("TrimsPattern", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := matching.NewMockRepository(ctrl)

		repo.EXPECT().
			SaveRule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *matching.Rule) error {
				assert.Equal(t, "CONTINENTE", r.Pattern)
				assert.Equal(t, categoryID, r.CategoryID)
				r.ID = uuid.New()
				return nil
			})

		r, err := matching.NewService(repo).Learn(context.Background(), "  CONTINENTE ", categoryID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID)
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := matching.NewService(matching.NewMockRepository(ctrl)).Learn(context.Background(), " ", categoryID)
		assert.ErrorIs(t, err, matching.ErrInvalidPattern)
	})

	t.Run("NilCategory", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := matching.NewService(matching.NewMockRepository(ctrl)).Learn(context.Background(), "EDP", uuid.Nil)
		assert.ErrorIs(t, err, matching.ErrCategoryNotFound)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := matching.NewMockRepository(ctrl)
		repo.EXPECT().SaveRule(gomock.Any(), gomock.Any()).Return(matching.ErrCategoryNotFound)

		_, err := matching.NewService(repo).Learn(context.Background(), "EDP", categoryID)
		assert.ErrorIs(t, err, matching.ErrCategoryNotFound)
	})
}
