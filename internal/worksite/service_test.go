package worksite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

func TestService_Create(t *testing.T) {
	ownerID := uuid.New()

	type args struct {
		params worksite.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *worksite.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *worksite.Worksite)
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: worksite.CreateParams{
					OwnerID:       ownerID,
					Name:          "Villa Dupont",
					Address:       "12 rue des Lilas, Nantes",
					BudgetInitial: 5000000,
				},
			},
			setupMock: func(m *worksite.MockRepository) {
				m.EXPECT().
					CreateWorksite(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *worksite.Worksite) error {
						w.ID = uuid.New()
						w.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, got *worksite.Worksite) {
				assert.Equal(t, worksite.StatusActive, got.Status)
				assert.Equal(t, worksite.Profitable, got.Profitability)
				assert.Equal(t, int64(5000000), got.MarginEstimated)
				assert.InDelta(t, 100.0, got.MarginPercentage, 0.0001)
				assert.False(t, got.BudgetAlert)
			},
		},
		{
			name: "EmptyName",
			args: args{
				params: worksite.CreateParams{
					OwnerID:       ownerID,
					BudgetInitial: 100000,
				},
			},
			wantErr: worksite.ErrInvalidName,
		},
		{
			name: "NegativeBudget",
			args: args{
				params: worksite.CreateParams{
					OwnerID:       ownerID,
					Name:          "Villa Dupont",
					BudgetInitial: -1,
				},
			},
			wantErr: worksite.ErrInvalidBudget,
		},
		{
			name: "PlannedEndBeforeStart",
			args: args{
				params: worksite.CreateParams{
					OwnerID:        ownerID,
					Name:           "Villa Dupont",
					StartDate:      ptr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
					PlannedEndDate: ptr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
				},
			},
			wantErr: worksite.ErrDatesOutOfOrder,
		},
		{
			name: "RepoError",
			args: args{
				params: worksite.CreateParams{
					OwnerID: ownerID,
					Name:    "Villa Dupont",
				},
			},
			setupMock: func(m *worksite.MockRepository) {
				m.EXPECT().
					CreateWorksite(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := worksite.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := worksite.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	worksiteID := uuid.New()
	clientID := uuid.New()

	existing := func() *worksite.Worksite {
		return &worksite.Worksite{
			ID:       worksiteID,
			OwnerID:  ownerID,
			ClientID: &clientID,
			Name:     "Villa Dupont",
			Address:  "12 rue des Lilas, Nantes",
			Status:   worksite.StatusActive,
		}
	}

	type args struct {
		params worksite.UpdateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *worksite.MockRepository)
		wantErr   error
		check     func(t *testing.T, got *worksite.Worksite)
	}

	tests := []testCase{
		{
			name: "RenameAndDetachClient",
			args: args{
				params: worksite.UpdateParams{
					Name:         ptr("Villa Martin"),
					RemoveClient: true,
				},
			},
			setupMock: func(m *worksite.MockRepository) {
				m.EXPECT().
					GetWorksite(gomock.Any(), ownerID, worksiteID).
					Return(existing(), nil)
				m.EXPECT().
					UpdateWorksite(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, got *worksite.Worksite) {
				assert.Equal(t, "Villa Martin", got.Name)
				assert.Nil(t, got.ClientID)
			},
		},
		{
			name: "EmptyNameRejected",
			args: args{
				params: worksite.UpdateParams{Name: ptr("")},
			},
			setupMock: func(m *worksite.MockRepository) {
				m.EXPECT().
					GetWorksite(gomock.Any(), ownerID, worksiteID).
					Return(existing(), nil)
			},
			wantErr: worksite.ErrInvalidName,
		},
		{
			name: "DatesOutOfOrder",
			args: args{
				params: worksite.UpdateParams{
					StartDate:      ptr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
					PlannedEndDate: ptr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
				},
			},
			setupMock: func(m *worksite.MockRepository) {
				m.EXPECT().
					GetWorksite(gomock.Any(), ownerID, worksiteID).
					Return(existing(), nil)
			},
			wantErr: worksite.ErrDatesOutOfOrder,
		},
		{
			name: "NotFound",
			args: args{params: worksite.UpdateParams{}},
			setupMock: func(m *worksite.MockRepository) {
				m.EXPECT().
					GetWorksite(gomock.Any(), ownerID, worksiteID).
					Return(nil, worksite.ErrNotFound)
			},
			wantErr: worksite.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := worksite.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := worksite.NewService(repo)
			got, err := svc.Update(context.Background(), ownerID, worksiteID, tt.args.params)

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

func TestService_UpdateStatus(t *testing.T) {
	ownerID := uuid.New()
	worksiteID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := worksite.NewMockRepository(ctrl)
		repo.EXPECT().
			UpdateStatus(gomock.Any(), ownerID, worksiteID, worksite.StatusCompleted).
			Return(&worksite.Worksite{ID: worksiteID, Status: worksite.StatusCompleted}, nil)

		svc := worksite.NewService(repo)
		got, err := svc.UpdateStatus(context.Background(), ownerID, worksiteID, worksite.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, worksite.StatusCompleted, got.Status)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := worksite.NewService(worksite.NewMockRepository(ctrl))
		got, err := svc.UpdateStatus(context.Background(), ownerID, worksiteID, worksite.Status("paused"))

		assert.ErrorIs(t, err, worksite.ErrInvalidStatus)
		assert.Nil(t, got)
	})
}

func TestService_UpdateBudget(t *testing.T) {
	ownerID := uuid.New()
	worksiteID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := worksite.NewMockRepository(ctrl)
		repo.EXPECT().
			UpdateBudget(gomock.Any(), ownerID, worksiteID, int64(2000000)).
			Return(&worksite.Worksite{ID: worksiteID, BudgetInitial: 2000000}, nil)

		svc := worksite.NewService(repo)
		got, err := svc.UpdateBudget(context.Background(), ownerID, worksiteID, 2000000)

		assert.NoError(t, err)
		assert.Equal(t, int64(2000000), got.BudgetInitial)
	})

	t.Run("NegativeBudget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := worksite.NewService(worksite.NewMockRepository(ctrl))
		got, err := svc.UpdateBudget(context.Background(), ownerID, worksiteID, -100)

		assert.ErrorIs(t, err, worksite.ErrInvalidBudget)
		assert.Nil(t, got)
	})
}

func ptr[T any](v T) *T { return &v }
