package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// MaxPageSize is the largest limit the backend accepts on list endpoints.
const MaxPageSize = 100

// TransactionQuery filters the income and expense listings. Zero fields are
// omitted from the query string.
type TransactionQuery struct {
	From       time.Time
	To         time.Time
	Currencies []string
	Skip       int
	Limit      int
}

func (q TransactionQuery) Values() url.Values {
	v := url.Values{}
	if !q.From.IsZero() {
		v.Set("from_date", q.From.Format(common.DateLayout))
	}
	if !q.To.IsZero() {
		v.Set("to_date", q.To.Format(common.DateLayout))
	}
	for _, c := range q.Currencies {
		v.Add("currencies", c)
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
