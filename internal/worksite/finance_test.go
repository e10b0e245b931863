package worksite_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

func TestDerive(t *testing.T) {
	type testCase struct {
		name              string
		budget            int64
		committed         int64
		wantMargin        int64
		wantPct           float64
		wantProfitability worksite.Profitability
		wantBudgetAlert   bool
	}

	tests := []testCase{
		{
			name:              "HealthyMargin",
			budget:            1000000,
			committed:         500000,
			wantMargin:        500000,
			wantPct:           50,
			wantProfitability: worksite.Profitable,
			wantBudgetAlert:   false,
		},
		{
			name:              "ThinMarginWatch",
			budget:            1000000,
			committed:         880000,
			wantMargin:        120000,
			wantPct:           12,
			wantProfitability: worksite.Watch,
			wantBudgetAlert:   false,
		},
		{
			name:              "NearOverrun",
			budget:            1000000,
			committed:         950000,
			wantMargin:        50000,
			wantPct:           5,
			wantProfitability: worksite.Watch,
			wantBudgetAlert:   true,
		},
		{
			name:              "JustUnderAtRiskThreshold",
			budget:            1000000,
			committed:         960000,
			wantMargin:        40000,
			wantPct:           4,
			wantProfitability: worksite.AtRisk,
			wantBudgetAlert:   true,
		},
		{
			name:              "Overrun",
			budget:            1000000,
			committed:         1100000,
			wantMargin:        -100000,
			wantPct:           -10,
			wantProfitability: worksite.AtRisk,
			wantBudgetAlert:   true,
		},
		{
			name:              "ExactWatchBoundaryIsProfitable",
			budget:            1000000,
			committed:         850000,
			wantMargin:        150000,
			wantPct:           15,
			wantProfitability: worksite.Profitable,
			wantBudgetAlert:   false,
		},
		{
			name:              "ExactBudgetAlertBoundaryDoesNotFire",
			budget:            1000000,
			committed:         900000,
			wantMargin:        100000,
			wantPct:           10,
			wantProfitability: worksite.Watch,
			wantBudgetAlert:   false,
		},
		{
			name:              "ZeroBudgetNoCosts",
			budget:            0,
			committed:         0,
			wantMargin:        0,
			wantPct:           0,
			wantProfitability: worksite.Profitable,
			wantBudgetAlert:   false,
		},
		{
			name:              "ZeroBudgetWithCosts",
			budget:            0,
			committed:         100,
			wantMargin:        -100,
			wantPct:           0,
			wantProfitability: worksite.AtRisk,
			wantBudgetAlert:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := worksite.Derive(tt.budget, tt.committed)

			assert.Equal(t, tt.wantMargin, d.MarginEstimated)
			assert.InDelta(t, tt.wantPct, d.MarginPercentage, 0.0001)
			assert.Equal(t, tt.wantProfitability, d.Profitability)
			assert.Equal(t, tt.wantBudgetAlert, d.BudgetAlert)
		})
	}
}

func TestDeriveAmendmentAlert(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name          string
		oldestPending *time.Time
		want          bool
	}

	tests := []testCase{
		{
			name:          "NoPendingAmendment",
			oldestPending: nil,
			want:          false,
		},
		{
			name:          "RecentPending",
			oldestPending: ptr(now.Add(-3 * 24 * time.Hour)),
			want:          false,
		},
		{
			name:          "StalePending",
			oldestPending: ptr(now.Add(-8 * 24 * time.Hour)),
			want:          true,
		},
		{
			name:          "ExactlyAtMaxAge",
			oldestPending: ptr(now.Add(-worksite.PendingAmendmentMaxAge)),
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, worksite.DeriveAmendmentAlert(tt.oldestPending, now))
		})
	}
}

func TestDeriveAdminAlert(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name       string
		status     worksite.Status
		startDate  *time.Time
		plannedEnd *time.Time
		want       bool
	}

	tests := []testCase{
		{
			name:       "PlannedEndInThePast",
			status:     worksite.StatusActive,
			plannedEnd: ptr(now.Add(-24 * time.Hour)),
			want:       true,
		},
		{
			name:       "PlannedEndInTheFuture",
			status:     worksite.StatusActive,
			plannedEnd: ptr(now.Add(30 * 24 * time.Hour)),
			want:       false,
		},
		{
			name:      "OpenEndedRunningTooLong",
			status:    worksite.StatusActive,
			startDate: ptr(now.Add(-200 * 24 * time.Hour)),
			want:      true,
		},
		{
			name:      "OpenEndedStillFresh",
			status:    worksite.StatusActive,
			startDate: ptr(now.Add(-30 * 24 * time.Hour)),
			want:      false,
		},
		{
			name:   "NoDatesAtAll",
			status: worksite.StatusActive,
			want:   false,
		},
		{
			name:       "CompletedNeverAlerts",
			status:     worksite.StatusCompleted,
			plannedEnd: ptr(now.Add(-24 * time.Hour)),
			want:       false,
		},
		{
			name:      "CancelledNeverAlerts",
			status:    worksite.StatusCancelled,
			startDate: ptr(now.Add(-400 * 24 * time.Hour)),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := worksite.DeriveAdminAlert(tt.status, tt.startDate, tt.plannedEnd, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
