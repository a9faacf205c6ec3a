package services

import (
	"testing"

	"pulserisk/internal/models"
	"pulserisk/internal/store"
	"pulserisk/internal/testutil"
)

func TestDashboard(t *testing.T) {
	cfg := AnalyticsConfig{RiskFreeRate: 0.04, SeriesLength: 120, CurveStartValue: 138000}

	t.Run("rejects_unsupported_lookback", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stores := store.NewGormStores(db)
		svc := NewAnalyticsService(NewScopeService(stores), cfg)

		_, err := svc.Dashboard(ScopeCombined, "", 45, "SPY")
		testutil.AssertAppError(t, err, "INVALID_LOOKBACK")
	})

	t.Run("rejects_unknown_benchmark", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stores := store.NewGormStores(db)
		svc := NewAnalyticsService(NewScopeService(stores), cfg)

		_, err := svc.Dashboard(ScopeCombined, "", 60, "DIA")
		testutil.AssertAppError(t, err, "INVALID_BENCHMARK")
	})

	t.Run("full_view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stores := store.NewGormStores(db)
		svc := NewAnalyticsService(NewScopeService(stores), cfg)

		account := testutil.CreateTestAccount(t, db)
		testutil.CreateTestHolding(t, db, account.ID, "AAPL", 10, 150)
		testutil.CreateTestTransaction(t, db, account.ID, models.ActivityDeposit, "2025-06-02", 5000)

		view, err := svc.Dashboard(ScopeSingle, account.ID, 60, "SPY")
		testutil.AssertNoError(t, err)

		if view.Equity != 10*150+5000 {
			t.Errorf("expected equity %v, got %v", 10*150+5000, view.Equity)
		}
		if view.Benchmark != "SPY" || view.Lookback != 60 {
			t.Errorf("unexpected view identity %s/%d", view.Benchmark, view.Lookback)
		}
		if len(view.EquityCurve) != 61 {
			t.Errorf("expected 61 curve points, got %d", len(view.EquityCurve))
		}
		if view.AsOf == "" {
			t.Error("expected as-of date")
		}
	})

	t.Run("deterministic_across_calls", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stores := store.NewGormStores(db)
		svc := NewAnalyticsService(NewScopeService(stores), cfg)

		first, err := svc.Dashboard(ScopeCombined, "", 120, "QQQ")
		testutil.AssertNoError(t, err)
		second, err := svc.Dashboard(ScopeCombined, "", 120, "QQQ")
		testutil.AssertNoError(t, err)

		if first.Volatility != second.Volatility || first.Sharpe != second.Sharpe || first.Beta != second.Beta {
			t.Error("expected identical metrics across refreshes")
		}
		if first.EquityCurve[0] != second.EquityCurve[0] {
			t.Error("expected identical curves across refreshes")
		}
	})

	t.Run("benchmarks_differ", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stores := store.NewGormStores(db)
		svc := NewAnalyticsService(NewScopeService(stores), cfg)

		spy, err := svc.Dashboard(ScopeCombined, "", 60, "SPY")
		testutil.AssertNoError(t, err)
		qqq, err := svc.Dashboard(ScopeCombined, "", 60, "QQQ")
		testutil.AssertNoError(t, err)

		if spy.Beta == qqq.Beta {
			t.Error("expected different beta against different benchmarks")
		}
	})
}
