package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/client/dashboard"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

// monthArg reads an optional YYYY-MM argument, defaulting to the current
// month.
func (a *App) monthArg(args []string) (int, int, error) {
	if len(args) == 0 {
		now := a.now()
		return now.Year(), int(now.Month()), nil
	}
	return dashboard.ParseMonth(args[0])
}

// Dashboard prints the month's totals and daily averages. Fetch failures
// show as zeros, like the home screen does.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	year, month, err := a.monthArg(args)
	if err != nil {
		return err
	}

	a.dash.Select(ctx, year, month)
	a.dash.Wait()
	st := a.dash.Stats()

	cur := a.dash.Currency()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%04d-%02d\t(%d days, %s)\n", st.Year, st.Month, st.Days, cur)
	fmt.Fprintf(tw, "Income\t%s\t%s/day\n", st.TotalIncome.StringFixed(2), st.AvgIncome.StringFixed(2))
	fmt.Fprintf(tw, "Expenses\t%s\t%s/day\n", st.TotalExpenses.StringFixed(2), st.AvgExpenses.StringFixed(2))
	fmt.Fprintf(tw, "Net\t%s\t\n", st.Net().StringFixed(2))
	return tw.Flush()
}

func (a *App) Income(ctx context.Context, args []string) error {
	return a.listTransactions(ctx, args, a.lister.ListIncome)
}

func (a *App) Expenses(ctx context.Context, args []string) error {
	return a.listTransactions(ctx, args, a.lister.ListExpenses)
}

type listFunc func(ctx context.Context, q api.TransactionQuery) (*models.Page[models.Transaction], error)

// listTransactions prints the first page of the month's records.
func (a *App) listTransactions(ctx context.Context, args []string, list listFunc) error {
	year, month, err := a.monthArg(args)
	if err != nil {
		return err
	}
	from, to, err := dashboard.MonthRange(year, month)
	if err != nil {
		return err
	}

	cur := a.dash.Currency()
	page, err := list(ctx, api.TransactionQuery{
		From:       from,
		To:         to,
		Currencies: []string{cur},
		Limit:      api.MaxPageSize,
	})
	if err != nil {
		return err
	}

	if len(page.Data) == 0 {
		a.printf("No records for %04d-%02d.\n", year, month)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "DATE\tACCOUNT\tNARRATION\t%s\n", cur)
	for _, tx := range page.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tx.Date, tx.Account, tx.Narration, tx.Amount(cur).StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Showing %d of %d.\n", len(page.Data), page.Count)
	return nil
}
