package services

import (
	"math"
	"sort"

	"pulserisk/internal/models"
	"pulserisk/internal/series"
	"pulserisk/internal/stats"
)

// tradingDays is the annualization factor for daily return series.
const tradingDays = 252

// epsilon floors denominators so constant series produce 0 instead of NaN.
const epsilon = 1e-9

// recentActivityLimit is how many transactions the view surfaces.
const recentActivityLimit = 8

// HoldingRow is one holding with its derived per-position figures.
type HoldingRow struct {
	models.Holding
	MarketValue float64 `json:"market_value"`
	CostBasis   float64 `json:"cost_basis"`
	Unrealized  float64 `json:"unrealized"`
	DayPnl      float64 `json:"day_pnl"`
	MovePct     float64 `json:"move_pct"`
	Weight      float64 `json:"weight"`
}

// ViewState is the immutable analytics snapshot for one
// (scope, lookback, benchmark) request.
type ViewState struct {
	Scope     Scope  `json:"scope"`
	AccountID string `json:"account_id,omitempty"`
	Benchmark string `json:"benchmark"`
	Lookback  int    `json:"lookback"`
	AsOf      string `json:"as_of"`

	Holdings []HoldingRow `json:"holdings"`
	// Contributors is the same rows ordered by day P&L, best first.
	Contributors []HoldingRow `json:"contributors"`

	Equity         float64 `json:"equity"`
	Cash           float64 `json:"cash"`
	Unrealized     float64 `json:"unrealized"`
	Realized       float64 `json:"realized"`
	DividendIncome float64 `json:"dividend_income"`
	NetDeposits    float64 `json:"net_deposits"`
	DayPnl         float64 `json:"day_pnl"`

	Volatility  float64 `json:"volatility"`
	Sharpe      float64 `json:"sharpe"`
	Beta        float64 `json:"beta"`
	VaR95       float64 `json:"var95"`
	MaxDrawdown float64 `json:"max_drawdown"`

	SectorWeights     map[string]float64 `json:"sector_weights"`
	TopPositionWeight float64            `json:"top_position_weight"`
	TopSectorWeight   float64            `json:"top_sector_weight"`
	HHI               float64            `json:"hhi"`

	EquityCurve    []series.Point       `json:"equity_curve"`
	BenchmarkCurve []series.Point       `json:"benchmark_curve"`
	TaxLots        []models.TaxLot      `json:"tax_lots"`
	RecentActivity []models.Transaction `json:"recent_activity"`
}

// ViewInput bundles everything the view computation needs. All fields are
// read-only to the computation.
type ViewInput struct {
	Scope            Scope
	AccountID        string
	Benchmark        string
	Lookback         int
	Holdings         []models.Holding
	Transactions     []models.Transaction
	TaxLots          []models.TaxLot
	PortfolioReturns []float64
	BenchmarkReturns []float64
	EquityCurve      []series.Point
	RiskFreeRate     float64
}

// ComputeView derives the full analytics snapshot from its inputs. It never
// divides by a true zero: every denominator is epsilon- or 1-floored, and an
// empty scope yields a zeroed view.
func ComputeView(in ViewInput) *ViewState {
	view := &ViewState{
		Scope:         in.Scope,
		AccountID:     in.AccountID,
		Benchmark:     in.Benchmark,
		Lookback:      in.Lookback,
		Holdings:      []HoldingRow{},
		SectorWeights: map[string]float64{},
		TaxLots:       in.TaxLots,
	}
	if view.TaxLots == nil {
		view.TaxLots = []models.TaxLot{}
	}

	// Cash is the sum of all signed ledger amounts in scope.
	for _, tx := range in.Transactions {
		view.Cash += tx.Amount
		switch tx.Type {
		case models.ActivityDividend:
			view.DividendIncome += tx.Amount
		case models.ActivityDeposit, models.ActivityWithdrawal:
			view.NetDeposits += tx.Amount
		}
	}

	rows := make([]HoldingRow, 0, len(in.Holdings))
	totalMarketValue := 0.0
	for _, h := range in.Holdings {
		row := HoldingRow{Holding: h}
		row.MarketValue = h.Qty * h.Last * h.Multiplier
		row.CostBasis = h.Qty * h.AvgCost * h.Multiplier
		row.Unrealized = row.MarketValue - row.CostBasis
		row.DayPnl = (h.Last - h.PrevClose) * h.Qty * h.Multiplier
		if h.PrevClose > 0 {
			row.MovePct = h.Last/h.PrevClose - 1
		}
		totalMarketValue += row.MarketValue
		view.Unrealized += row.Unrealized
		view.DayPnl += row.DayPnl
		rows = append(rows, row)
	}

	view.Equity = totalMarketValue + view.Cash
	equityDenom := view.Equity
	if equityDenom == 0 {
		equityDenom = 1
	}
	for i := range rows {
		rows[i].Weight = rows[i].MarketValue / equityDenom
		view.SectorWeights[rows[i].Sector] += rows[i].Weight
		if rows[i].Weight > view.TopPositionWeight {
			view.TopPositionWeight = rows[i].Weight
		}
		view.HHI += rows[i].Weight * rows[i].Weight
	}
	view.Holdings = rows
	view.Contributors = make([]HoldingRow, len(rows))
	copy(view.Contributors, rows)
	sort.SliceStable(view.Contributors, func(i, j int) bool {
		return view.Contributors[i].DayPnl > view.Contributors[j].DayPnl
	})
	if len(rows) == 0 {
		view.SectorWeights = map[string]float64{}
	}
	for _, w := range view.SectorWeights {
		if w > view.TopSectorWeight {
			view.TopSectorWeight = w
		}
	}

	view.Realized = realizedPnl(in.Holdings, in.Transactions, in.TaxLots)

	// Risk metrics over the trailing lookback samples.
	portfolio := tail(in.PortfolioReturns, in.Lookback)
	benchmark := tail(in.BenchmarkReturns, in.Lookback)
	if len(portfolio) > 0 {
		view.Volatility = stats.StdDev(portfolio) * math.Sqrt(tradingDays)

		excess := make([]float64, len(portfolio))
		for i, r := range portfolio {
			excess[i] = r - in.RiskFreeRate/tradingDays
		}
		view.Sharpe = stats.Mean(excess) / math.Max(stats.StdDev(excess), epsilon) * math.Sqrt(tradingDays)

		if len(benchmark) == len(portfolio) {
			view.Beta = stats.Covariance(portfolio, benchmark) / math.Max(stats.Variance(benchmark), epsilon)
		}

		view.VaR95 = -stats.Quantile(portfolio, 0.05) * view.Equity
	}

	// The view curve is the trailing lookback window plus its starting point.
	curve := in.EquityCurve
	if len(curve) > in.Lookback+1 {
		curve = curve[len(curve)-(in.Lookback+1):]
	}
	view.EquityCurve = curve
	view.MaxDrawdown = maxDrawdown(curve)
	view.BenchmarkCurve = rebaseBenchmark(curve, benchmark)
	if len(curve) > 0 {
		view.AsOf = curve[len(curve)-1].Date
	}

	if len(in.Transactions) > recentActivityLimit {
		view.RecentActivity = in.Transactions[:recentActivityLimit]
	} else {
		view.RecentActivity = in.Transactions
	}
	if view.RecentActivity == nil {
		view.RecentActivity = []models.Transaction{}
	}

	return view
}

// realizedPnl sums closed tax lots plus the ledger-derived component: each
// SELL/ASSIGNMENT/EXPIRY matched by (symbol, assetType) to a current holding
// contributes proceeds minus basis at that holding's average cost. Unmatched
// transactions contribute nothing.
func realizedPnl(holdings []models.Holding, transactions []models.Transaction, lots []models.TaxLot) float64 {
	total := 0.0
	for i := range lots {
		total += lots[i].Realized()
	}

	for _, tx := range transactions {
		switch tx.Type {
		case models.ActivitySell, models.ActivityAssignment, models.ActivityExpiry:
		default:
			continue
		}
		for _, h := range holdings {
			if h.Symbol != tx.Symbol || h.AssetType != tx.AssetType {
				continue
			}
			proceeds := tx.Qty*tx.Price*tx.Multiplier - tx.Fees
			basis := tx.Qty * h.AvgCost * tx.Multiplier
			total += proceeds - basis
			break
		}
	}
	return total
}

// maxDrawdown runs the running-peak algorithm over the curve, returning the
// most negative drawdown observed (0 for a monotonically non-decreasing
// curve).
func maxDrawdown(curve []series.Point) float64 {
	if len(curve) == 0 {
		return 0
	}
	peak := curve[0].Value
	worst := 0.0
	for _, p := range curve {
		if p.Value > peak {
			peak = p.Value
		}
		drawdown := (p.Value - peak) / peak
		if drawdown < worst {
			worst = drawdown
		}
	}
	return worst
}

// rebaseBenchmark compounds the benchmark's trailing returns from the view
// curve's starting value so both curves are visually comparable.
func rebaseBenchmark(curve []series.Point, benchmarkReturns []float64) []series.Point {
	if len(curve) == 0 {
		return []series.Point{}
	}
	out := make([]series.Point, 0, len(benchmarkReturns)+1)
	out = append(out, curve[0])
	value := curve[0].Value
	for i, r := range benchmarkReturns {
		value *= 1 + r
		date := ""
		if i+1 < len(curve) {
			date = curve[i+1].Date
		}
		out = append(out, series.Point{Date: date, Value: value})
	}
	return out
}

// tail returns the trailing n elements of values.
func tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
