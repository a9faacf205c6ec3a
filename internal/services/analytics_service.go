package services

import (
	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/series"
)

// benchmarkSpec is the deterministic generation recipe for one benchmark.
type benchmarkSpec struct {
	Drift float64
	Sigma float64
	Seed  int64
}

// benchmarks is the registry of supported benchmark series.
var benchmarks = map[string]benchmarkSpec{
	"SPY": {Drift: 0.00035, Sigma: 0.009, Seed: 44},
	"QQQ": {Drift: 0.00045, Sigma: 0.011, Seed: 63},
}

// Portfolio series derivation constants. The portfolio series is seeded
// independently of its base benchmark.
const (
	portfolioAlpha = 0.00018
	portfolioNoise = 0.004
	portfolioSeed  = 101
)

// supportedLookbacks are the trailing window lengths the dashboard accepts.
var supportedLookbacks = map[int]bool{20: true, 60: true, 120: true}

// AnalyticsConfig carries the session-level analytics parameters.
type AnalyticsConfig struct {
	RiskFreeRate    float64
	SeriesLength    int
	CurveStartValue float64
}

// analyticsService assembles dashboard views from scoped data and synthetic
// return series.
type analyticsService struct {
	scope ScopeServicer
	cfg   AnalyticsConfig
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(scope ScopeServicer, cfg AnalyticsConfig) AnalyticsServicer {
	return &analyticsService{scope: scope, cfg: cfg}
}

// Dashboard computes the full ViewState for one (scope, lookback, benchmark)
// request.
func (s *analyticsService) Dashboard(scope Scope, accountID string, lookback int, benchmark string) (*ViewState, error) {
	if !supportedLookbacks[lookback] {
		return nil, apperrors.ErrInvalidLookback
	}
	spec, ok := benchmarks[benchmark]
	if !ok {
		return nil, apperrors.ErrInvalidBenchmark
	}

	holdings, err := s.scope.Holdings(scope, accountID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.scope.Transactions(scope, accountID)
	if err != nil {
		return nil, err
	}
	lots, err := s.scope.TaxLots(scope, accountID)
	if err != nil {
		return nil, err
	}

	benchmarkReturns := series.Returns(s.cfg.SeriesLength, spec.Drift, spec.Sigma, spec.Seed)
	portfolioReturns := series.PortfolioReturns(benchmarkReturns, portfolioAlpha, portfolioNoise, portfolioSeed)
	curve := series.Curve(portfolioReturns, s.cfg.CurveStartValue)

	return ComputeView(ViewInput{
		Scope:            scope,
		AccountID:        accountID,
		Benchmark:        benchmark,
		Lookback:         lookback,
		Holdings:         holdings,
		Transactions:     transactions,
		TaxLots:          lots,
		PortfolioReturns: portfolioReturns,
		BenchmarkReturns: benchmarkReturns,
		EquityCurve:      curve,
		RiskFreeRate:     s.cfg.RiskFreeRate,
	}), nil
}
