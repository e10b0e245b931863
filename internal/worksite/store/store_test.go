package store_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	costStore "github.com/ziz0u9/MillesBTP-sub000/internal/cost/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
	eventStore "github.com/ziz0u9/MillesBTP-sub000/internal/event/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping database-backed test")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))

	return db
}

func createWorksite(t *testing.T, s *store.Store, ownerID uuid.UUID, budget int64) *worksite.Worksite {
	t.Helper()

	w := &worksite.Worksite{
		OwnerID:          ownerID,
		Name:             "Chantier test",
		Status:           worksite.StatusActive,
		BudgetInitial:    budget,
		MarginEstimated:  budget,
		MarginPercentage: 100,
		Profitability:    worksite.Profitable,
	}
	require.NoError(t, s.CreateWorksite(context.Background(), w))

	return w
}

func addCost(t *testing.T, cs *costStore.Store, ownerID, worksiteID uuid.UUID, typ cost.Type, amount int64) {
	t.Helper()

	e := &cost.Entry{
		WorksiteID: worksiteID,
		Category:   cost.CategoryMaterials,
		Type:       typ,
		Amount:     amount,
		Label:      "Ligne test",
		CostDate:   time.Now().UTC(),
	}
	require.NoError(t, cs.CreateEntry(context.Background(), ownerID, e))
}

func TestStore_RecalculateMatchesLedger(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := store.New(db)
	cs := costStore.New(db)
	ownerID := uuid.New()

	w := createWorksite(t, s, ownerID, 1000000)
	addCost(t, cs, ownerID, w.ID, cost.TypeCommitted, 300000)
	addCost(t, cs, ownerID, w.ID, cost.TypeCommitted, 150000)
	addCost(t, cs, ownerID, w.ID, cost.TypeEstimated, 100000)

	got, err := s.Recalculate(ctx, ownerID, w.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(450000), got.CostsCommitted)
	assert.Equal(t, int64(100000), got.CostsEstimated)
	assert.Equal(t, int64(550000), got.MarginEstimated)
	assert.InDelta(t, 55.0, got.MarginPercentage, 0.001)
	assert.Equal(t, worksite.Profitable, got.Profitability)
	assert.False(t, got.BudgetAlert)
}

func TestStore_RecalculateIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := store.New(db)
	cs := costStore.New(db)
	ownerID := uuid.New()

	w := createWorksite(t, s, ownerID, 1000000)
	addCost(t, cs, ownerID, w.ID, cost.TypeCommitted, 950000)

	first, err := s.Recalculate(ctx, ownerID, w.ID)
	require.NoError(t, err)

	second, err := s.Recalculate(ctx, ownerID, w.ID)
	require.NoError(t, err)

	assert.Equal(t, first.CostsCommitted, second.CostsCommitted)
	assert.Equal(t, first.CostsEstimated, second.CostsEstimated)
	assert.Equal(t, first.MarginEstimated, second.MarginEstimated)
	assert.Equal(t, first.MarginPercentage, second.MarginPercentage)
	assert.Equal(t, first.Profitability, second.Profitability)
	assert.Equal(t, first.BudgetAlert, second.BudgetAlert)
	assert.Equal(t, first.AmendmentAlert, second.AmendmentAlert)
	assert.Equal(t, first.AdminAlert, second.AdminAlert)

	assert.Equal(t, worksite.Watch, second.Profitability)
	assert.True(t, second.BudgetAlert)
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := store.New(db)
	es := eventStore.New(db)
	ownerID := uuid.New()

	w := createWorksite(t, s, ownerID, 500000)

	got, err := s.UpdateStatus(ctx, ownerID, w.ID, worksite.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, worksite.StatusCompleted, got.Status)

	events, err := es.ListEvents(ctx, ownerID, w.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, event.TypeStatusChanged, events[0].Type)
	assert.Equal(t, event.StatusPayload{From: "active", To: "completed"}, events[0].Payload)
	assert.Equal(t, event.TypeCreation, events[1].Type)
}

func TestStore_UpdateStatus_NoOpTransitionHasNoEvent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := store.New(db)
	es := eventStore.New(db)
	ownerID := uuid.New()

	w := createWorksite(t, s, ownerID, 500000)

	got, err := s.UpdateStatus(ctx, ownerID, w.ID, worksite.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, worksite.StatusActive, got.Status)

	events, err := es.ListEvents(ctx, ownerID, w.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeCreation, events[0].Type)
}
