package cost_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
)

func TestService_Add(t *testing.T) {
	ownerID := uuid.New()
	worksiteID := uuid.New()

	type args struct {
		params cost.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *cost.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *cost.Entry)
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.CategoryMaterials,
					Type:       cost.TypeCommitted,
					Amount:     250000,
					Label:      "Béton C25/30",
					CostDate:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
				},
			},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), ownerID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, e *cost.Entry) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, got *cost.Entry) {
				assert.Equal(t, int64(250000), got.Amount)
				assert.Equal(t, cost.CategoryMaterials, got.Category)
			},
		},
		{
			name: "ZeroCostDateDefaultsToNow",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.CategoryLabor,
					Type:       cost.TypeEstimated,
					Amount:     100,
				},
			},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), ownerID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, e *cost.Entry) error {
						e.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, got *cost.Entry) {
				assert.False(t, got.CostDate.IsZero())
			},
		},
		{
			name: "ZeroAmount",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.CategoryMaterials,
					Type:       cost.TypeCommitted,
					Amount:     0,
				},
			},
			wantErr: cost.ErrInvalidAmount,
		},
		{
			name: "NegativeAmount",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.CategoryMaterials,
					Type:       cost.TypeCommitted,
					Amount:     -500,
				},
			},
			wantErr: cost.ErrInvalidAmount,
		},
		{
			name: "UnknownCategory",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.Category("fuel"),
					Type:       cost.TypeCommitted,
					Amount:     100,
				},
			},
			wantErr: cost.ErrInvalidCategory,
		},
		{
			name: "UnknownType",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.CategoryOther,
					Type:       cost.Type("projected"),
					Amount:     100,
				},
			},
			wantErr: cost.ErrInvalidType,
		},
		{
			name: "WorksiteNotFound",
			args: args{
				params: cost.CreateParams{
					WorksiteID: worksiteID,
					Category:   cost.CategoryOther,
					Type:       cost.TypeCommitted,
					Amount:     100,
				},
			},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), ownerID, gomock.Any()).
					Return(errors.New("worksite not found"))
			},
			wantErr: errors.New("worksite not found"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cost.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := cost.NewService(repo)
			got, err := svc.Add(context.Background(), ownerID, tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	entryID := uuid.New()

	existing := func() *cost.Entry {
		return &cost.Entry{
			ID:       entryID,
			Category: cost.CategoryMaterials,
			Type:     cost.TypeEstimated,
			Amount:   100000,
			Label:    "Charpente",
		}
	}

	type args struct {
		params cost.UpdateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *cost.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *cost.Entry)
	}

	tests := []testCase{
		{
			name: "PromoteEstimateToCommitted",
			args: args{
				params: cost.UpdateParams{
					Type:   ptr(cost.TypeCommitted),
					Amount: ptr(int64(120000)),
				},
			},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), ownerID, entryID).
					Return(existing(), nil)
				m.EXPECT().
					UpdateEntry(gomock.Any(), ownerID, gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, got *cost.Entry) {
				assert.Equal(t, cost.TypeCommitted, got.Type)
				assert.Equal(t, int64(120000), got.Amount)
				assert.Equal(t, "Charpente", got.Label)
			},
		},
		{
			name: "InvalidAmount",
			args: args{
				params: cost.UpdateParams{Amount: ptr(int64(0))},
			},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), ownerID, entryID).
					Return(existing(), nil)
			},
			wantErr: cost.ErrInvalidAmount,
		},
		{
			name: "InvalidCategory",
			args: args{
				params: cost.UpdateParams{Category: ptr(cost.Category(""))},
			},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), ownerID, entryID).
					Return(existing(), nil)
			},
			wantErr: cost.ErrInvalidCategory,
		},
		{
			name: "NotFound",
			args: args{params: cost.UpdateParams{}},
			setupMock: func(m *cost.MockRepository) {
				m.EXPECT().
					GetEntry(gomock.Any(), ownerID, entryID).
					Return(nil, cost.ErrNotFound)
			},
			wantErr: cost.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cost.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := cost.NewService(repo)
			got, err := svc.Update(context.Background(), ownerID, entryID, tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Summary(t *testing.T) {
	ownerID := uuid.New()
	worksiteID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := cost.NewMockRepository(ctrl)
		repo.EXPECT().
			SumByType(gomock.Any(), ownerID, worksiteID, cost.TypeCommitted).
			Return(int64(450000), nil)
		repo.EXPECT().
			SumByType(gomock.Any(), ownerID, worksiteID, cost.TypeEstimated).
			Return(int64(120000), nil)
		repo.EXPECT().
			SumByCategory(gomock.Any(), ownerID, worksiteID).
			Return(map[cost.Category]int64{
				cost.CategoryMaterials: 300000,
				cost.CategoryLabor:     270000,
			}, nil)

		svc := cost.NewService(repo)
		got, err := svc.Summary(context.Background(), ownerID, worksiteID)

		assert.NoError(t, err)
		assert.Equal(t, int64(450000), got.Committed)
		assert.Equal(t, int64(120000), got.Estimated)
		assert.Equal(t, int64(300000), got.ByCategory[cost.CategoryMaterials])
	})

	t.Run("SumError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := cost.NewMockRepository(ctrl)
		repo.EXPECT().
			SumByType(gomock.Any(), ownerID, worksiteID, cost.TypeCommitted).
			Return(int64(0), errors.New("db error"))

		svc := cost.NewService(repo)
		got, err := svc.Summary(context.Background(), ownerID, worksiteID)

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func ptr[T any](v T) *T { return &v }
