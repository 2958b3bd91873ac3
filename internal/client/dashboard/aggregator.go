package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Fetcher lists transactions. *api.Client implements it.
type Fetcher interface {
	ListIncome(ctx context.Context, q api.TransactionQuery) (*models.Page[models.Transaction], error)
	ListExpenses(ctx context.Context, q api.TransactionQuery) (*models.Page[models.Transaction], error)
}

// Stats is one month's figures. Averages are per calendar day, rounded to
// cents.
type Stats struct {
	Year          int
	Month         int
	Days          int
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	AvgIncome     decimal.Decimal
	AvgExpenses   decimal.Decimal
	Loading       bool
	Generation    uint64
}

// Net is income minus expenses.
func (s Stats) Net() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpenses)
}

type Option func(*Aggregator)

// WithCurrency selects the currency totals are computed in. Unsupported
// codes are ignored; supported ones match in any letter case.
func WithCurrency(code string) Option {
	return func(a *Aggregator) {
		if c, ok := models.CanonicalCurrency(code); ok {
			a.currency = c
		}
	}
}

// WithPageSize sets how many records each list call asks for, capped at
// api.MaxPageSize.
func WithPageSize(n int) Option {
	return func(a *Aggregator) {
		if n > 0 && n <= api.MaxPageSize {
			a.pageSize = n
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(a *Aggregator) { a.log = logging.Component(l, logging.ComponentDashboard) }
}

// Aggregator computes Stats for a selected month. Selecting a new month
// cancels the computation in flight; a result that arrives for an older
// selection is dropped.
type Aggregator struct {
	fetch    Fetcher
	currency string
	pageSize int
	log      logging.Logger

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	stats     Stats
	observers map[int]func(Stats)
	nextObs   int

	wg sync.WaitGroup
}

func NewAggregator(f Fetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetch:     f,
		currency:  common.DefaultCurrency,
		pageSize:  api.MaxPageSize,
		log:       logging.Component(nil, logging.ComponentDashboard),
		observers: make(map[int]func(Stats)),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Aggregator) Currency() string { return a.currency }

// Compute fetches income and expenses for the month in parallel and sums
// them. If either side fails, both totals are zero and the error is
// returned.
func (a *Aggregator) Compute(ctx context.Context, year, month int) (Stats, error) {
	from, to, err := MonthRange(year, month)
	if err != nil {
		return Stats{Year: year, Month: month}, err
	}
	days := to.Day()
	zero := Stats{
		Year: year, Month: month, Days: days,
		TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero,
		AvgIncome: decimal.Zero, AvgExpenses: decimal.Zero,
	}

	q := api.TransactionQuery{From: from, To: to, Currencies: []string{a.currency}}

	var income, expenses decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = a.sum(gctx, a.fetch.ListIncome, q)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = a.sum(gctx, a.fetch.ListExpenses, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return zero, err
	}

	st := zero
	st.TotalIncome = income
	st.TotalExpenses = expenses
	st.AvgIncome = perDay(income, days)
	st.AvgExpenses = perDay(expenses, days)
	return st, nil
}

type listFunc func(ctx context.Context, q api.TransactionQuery) (*models.Page[models.Transaction], error)

// sum walks every page until count records were read.
func (a *Aggregator) sum(ctx context.Context, list listFunc, q api.TransactionQuery) (decimal.Decimal, error) {
	total := decimal.Zero
	q.Limit = a.pageSize
	for {
		page, err := list(ctx, q)
		if err != nil {
			return decimal.Zero, err
		}
		for _, tx := range page.Data {
			total = total.Add(tx.Amount(a.currency))
		}
		q.Skip += len(page.Data)
		if len(page.Data) == 0 || q.Skip >= page.Count {
			return total, nil
		}
	}
}

func perDay(total decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(days))).Round(2)
}

// Select starts computing the month in the background and returns its
// generation. The previous computation, if still running, is cancelled.
// Failures are logged and published as zero totals.
func (a *Aggregator) Select(ctx context.Context, year, month int) uint64 {
	cctx, cancel := context.WithCancel(ctx)
	days, _ := DaysIn(year, month)

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	gen := a.gen
	a.cancel = cancel
	a.stats = Stats{Year: year, Month: month, Days: days, Loading: true, Generation: gen,
		TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero,
		AvgIncome: decimal.Zero, AvgExpenses: decimal.Zero}
	a.unlockAndPublish()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()

		st, err := a.Compute(cctx, year, month)
		st.Generation = gen

		a.mu.Lock()
		if gen != a.gen {
			a.mu.Unlock()
			a.log.Debug(ctx, "stale result dropped", logging.FieldGeneration, gen)
			return
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn(ctx, "dashboard computation failed",
				logging.FieldYear, year, logging.FieldMonth, month,
				logging.FieldGeneration, gen, logging.FieldError, err)
		}
		a.stats = st
		a.cancel = nil
		a.unlockAndPublish()
	}()
	return gen
}

// Stats returns the latest published figures.
func (a *Aggregator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Subscribe registers fn to receive every published Stats.
func (a *Aggregator) Subscribe(fn func(Stats)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextObs
	a.nextObs++
	a.observers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.observers, id)
		a.mu.Unlock()
	}
}

// Wait blocks until every started computation has returned.
func (a *Aggregator) Wait() { a.wg.Wait() }

// Close cancels the computation in flight and waits for it.
func (a *Aggregator) Close() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.mu.Unlock()
	a.Wait()
}

func (a *Aggregator) unlockAndPublish() {
	st := a.stats
	obs := make([]func(Stats), 0, len(a.observers))
	for _, o := range a.observers {
		obs = append(obs, o)
	}
	a.mu.Unlock()

	for _, o := range obs {
		o(st)
	}
}
