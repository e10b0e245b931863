package categorize_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ziz0u9/MillesBTP-sub000/internal/categorize"
	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
)

func TestService_Suggest(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Match", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := categorize.NewMockRepository(ctrl)
		repo.EXPECT().
			FindCategory(gomock.Any(), ownerID, "Facture Point P béton").
			Return(cost.CategoryMaterials, nil)

		svc := categorize.NewService(repo)
		got, err := svc.Suggest(context.Background(), ownerID, "Facture Point P béton")

		assert.NoError(t, err)
		assert.Equal(t, cost.CategoryMaterials, got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := categorize.NewMockRepository(ctrl)
		repo.EXPECT().
			FindCategory(gomock.Any(), ownerID, "Libellé inconnu").
			Return(cost.Category(""), nil)

		svc := categorize.NewService(repo)
		got, err := svc.Suggest(context.Background(), ownerID, "Libellé inconnu")

		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_Learn(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := categorize.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateMapping(gomock.Any(), ownerID, "point p", cost.CategoryMaterials).
			Return(nil)

		svc := categorize.NewService(repo)
		err := svc.Learn(context.Background(), ownerID, "point p", cost.CategoryMaterials)

		assert.NoError(t, err)
	})

	t.Run("EmptyKeyword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := categorize.NewService(categorize.NewMockRepository(ctrl))
		err := svc.Learn(context.Background(), ownerID, "", cost.CategoryMaterials)

		assert.ErrorIs(t, err, categorize.ErrInvalidKeyword)
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := categorize.NewService(categorize.NewMockRepository(ctrl))
		err := svc.Learn(context.Background(), ownerID, "point p", cost.Category("fuel"))

		assert.ErrorIs(t, err, cost.ErrInvalidCategory)
	})
}
