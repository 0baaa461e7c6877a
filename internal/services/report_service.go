package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/aggregate"
	"fintrack/internal/budget"
	"fintrack/internal/compare"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/taxonomy"
)

// Feed sizes and windows of the dashboard widgets.
const (
	RecentActivityLimit     = 5
	RecentTransactionsLimit = 10
	BusinessDaySeriesLength = 5

	newUserWindow           = 30 * 24 * time.Hour
	recentTransactionWindow = 24 * time.Hour
)

// reportService composes ledger reads into dashboard views.
type reportService struct {
	users     UserServicer
	store     ledger.Store
	taxonomy  *taxonomy.Taxonomy
	periods   *period.Resolver
	evaluator *budget.Evaluator
}

// NewReportService creates a new ReportServicer. users supplies the
// cross-user counts of the admin view.
func NewReportService(users UserServicer, store ledger.Store, tax *taxonomy.Taxonomy, periods *period.Resolver) ReportServicer {
	return &reportService{
		users:     users,
		store:     store,
		taxonomy:  tax,
		periods:   periods,
		evaluator: budget.NewEvaluator(tax, tax.Values(models.TransactionTypeExpense)),
	}
}

func (s *reportService) totals(ctx context.Context, userID string, r period.Range) (aggregate.Totals, error) {
	rows, err := s.store.ListTransactions(ctx, ledger.Filter{UserID: userID, Range: &r})
	if err != nil {
		return aggregate.Totals{}, err
	}
	return aggregate.Sum(rows), nil
}

// Dashboard summarizes the current month against the previous one.
func (s *reportService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var cur, prev aggregate.Totals

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.totals(gctx, userID, s.periods.CurrentMonth())
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = s.totals(gctx, userID, s.periods.PreviousMonth())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalBalance:    cur.Balance(),
		MonthlyIncome:   cur.Income,
		MonthlyExpenses: cur.Expenses,
		NetSavings:      cur.Savings,
		Investments:     cur.Investments,
		Changes:         compare.Between(snapshot(cur), snapshot(prev)),
	}, nil
}

func snapshot(t aggregate.Totals) compare.Snapshot {
	return compare.Snapshot{
		Balance:  t.Balance(),
		Income:   t.Income,
		Expenses: t.Expenses,
		Savings:  t.Savings,
	}
}

// MonthlySeries returns income and expenses for every month of the current
// year, January first. Months without activity are zero.
func (s *reportService) MonthlySeries(ctx context.Context, userID string) ([]MonthlyPoint, error) {
	year := s.periods.CurrentYear()
	rows, err := s.store.ListTransactions(ctx, ledger.Filter{
		UserID: userID,
		Range:  &year,
		Types:  []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense},
	})
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]aggregate.Totals)
	for _, g := range aggregate.Aggregate(rows, aggregate.GroupMonth).Groups {
		byMonth[g.Key] = g.Totals
	}

	points := make([]MonthlyPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		first := time.Date(year.Start.Year(), m, 1, 0, 0, 0, 0, time.UTC)
		t := byMonth[first.Format("2006-01")]
		points = append(points, MonthlyPoint{
			Month:       first.Format("Jan"),
			MonthNumber: int(m),
			Income:      t.Income,
			Expenses:    t.Expenses,
		})
	}
	return points, nil
}

// SpendingCategories returns the current month's expense breakdown.
func (s *reportService) SpendingCategories(ctx context.Context, userID string) ([]aggregate.Share, error) {
	month := s.periods.CurrentMonth()
	rows, err := s.store.ListTransactions(ctx, ledger.Filter{
		UserID: userID,
		Range:  &month,
		Types:  []models.TransactionType{models.TransactionTypeExpense},
	})
	if err != nil {
		return nil, err
	}

	shares := aggregate.CategoryShares(rows)
	for i := range shares {
		shares[i].Name = s.taxonomy.Label(shares[i].Name)
	}
	return shares, nil
}

// BudgetGrid evaluates every expense category of the taxonomy for the
// current month.
func (s *reportService) BudgetGrid(ctx context.Context, userID string) (*budget.Report, error) {
	spend, err := monthlySpend(ctx, s.store, userID, s.periods.CurrentMonth())
	if err != nil {
		return nil, err
	}
	limits, err := s.store.ListBudgetLimits(ctx, userID, s.taxonomy.Values(models.TransactionTypeExpense))
	if err != nil {
		return nil, err
	}
	report := s.evaluator.Grid(spend, limits)
	return &report, nil
}

func (s *reportService) RecentActivity(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.recent(ctx, userID, ledger.ByCreated, RecentActivityLimit)
}

func (s *reportService) RecentTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.recent(ctx, userID, ledger.ByDate, RecentTransactionsLimit)
}

func (s *reportService) recent(ctx context.Context, userID string, order ledger.RecentOrder, limit int) ([]models.Transaction, error) {
	rows, err := s.store.RecentTransactions(ctx, userID, order, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Transaction{}
	}
	return rows, nil
}

// InvestmentPerformance sums investments per recent business day.
func (s *reportService) InvestmentPerformance(ctx context.Context, userID string) ([]DailyPoint, error) {
	return s.businessDaySeries(ctx, userID, []models.TransactionType{models.TransactionTypeInvestment},
		func(t aggregate.Totals) decimal.Decimal { return t.Investments })
}

// MarketOverview sums activity of every type per recent business day.
func (s *reportService) MarketOverview(ctx context.Context, userID string) ([]DailyPoint, error) {
	return s.businessDaySeries(ctx, userID, nil, aggregate.Totals.Volume)
}

// businessDaySeries groups the window's rows by date, keeps the most recent
// business days and orders them Monday to Friday.
func (s *reportService) businessDaySeries(ctx context.Context, userID string, types []models.TransactionType, value func(aggregate.Totals) decimal.Decimal) ([]DailyPoint, error) {
	window := s.periods.LastBusinessDays(BusinessDaySeriesLength)
	rows, err := s.store.ListTransactions(ctx, ledger.Filter{UserID: userID, Range: &window.Range, Types: types})
	if err != nil {
		return nil, err
	}

	groups := aggregate.Aggregate(rows, aggregate.GroupWeekday).Groups
	byDate := make(map[time.Time]aggregate.Group, len(groups))
	dates := make([]time.Time, 0, len(groups))
	for _, g := range groups {
		byDate[g.Date] = g
		dates = append(dates, g.Date)
	}

	selected := window.Select(dates)
	sort.Slice(selected, func(i, j int) bool {
		if wi, wj := selected[i].Weekday(), selected[j].Weekday(); wi != wj {
			return wi < wj
		}
		return selected[i].Before(selected[j])
	})

	points := make([]DailyPoint, 0, len(selected))
	for _, d := range selected {
		g := byDate[d]
		points = append(points, DailyPoint{
			Name:  g.Label,
			Date:  period.FormatDate(d),
			Value: value(g.Totals),
		})
	}
	return points, nil
}

// PeriodOverview reports income, expenses and savings per month of an
// explicit range.
func (s *reportService) PeriodOverview(ctx context.Context, userID string, start, end time.Time) ([]PeriodPoint, error) {
	r, err := period.ExplicitRange(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListTransactions(ctx, ledger.Filter{UserID: userID, Range: &r})
	if err != nil {
		return nil, err
	}

	groups := aggregate.Aggregate(rows, aggregate.GroupMonth).Groups
	points := make([]PeriodPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, PeriodPoint{
			Period:   g.Key,
			Income:   g.Totals.Income,
			Expenses: g.Totals.Expenses,
			Savings:  g.Totals.Savings,
		})
	}
	return points, nil
}

// AdminStats reports user and transaction figures across every user.
func (s *reportService) AdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.users.CountUsers(gctx, s.periods.Trailing(newUserWindow).Start)
		if err != nil {
			return err
		}
		stats.Users = *users
		return nil
	})
	g.Go(func() error {
		fleet, err := s.store.FleetStats(gctx, s.periods.Trailing(recentTransactionWindow).Start)
		if err != nil {
			return err
		}
		stats.Transactions = TransactionStats{
			TotalTransactions: fleet.TotalTransactions,
			Transactions24h:   fleet.RecentCount,
			TotalIncome:       fleet.TotalIncome,
			TotalExpenses:     fleet.TotalExpenses,
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
