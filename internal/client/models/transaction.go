package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Supported currency codes, spelled as the backend expects them in the
// currencies query parameter. The backend compares them case-sensitively.
const (
	CurrencyARS  = "ARS"
	CurrencyUSD  = "USD"
	CurrencyCARS = "cARS"
)

// SupportedCurrencies lists the codes accepted by Transaction.Amount.
var SupportedCurrencies = []string{CurrencyARS, CurrencyUSD, CurrencyCARS}

// CanonicalCurrency maps code, in any letter case, to its entry in
// SupportedCurrencies.
func CanonicalCurrency(code string) (string, bool) {
	for _, c := range SupportedCurrencies {
		if strings.EqualFold(c, code) {
			return c, true
		}
	}
	return "", false
}

// IsSupportedCurrency reports whether code names one of SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	_, ok := CanonicalCurrency(code)
	return ok
}

// Transaction is one income or expense posting. Income rows fill Origin,
// expense rows fill Category and Subcategory.
type Transaction struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	Account     string              `json:"account"`
	Payee       *string             `json:"payee,omitempty"`
	Narration   string              `json:"narration"`
	AmountARS   decimal.NullDecimal `json:"amount_ars"`
	AmountUSD   decimal.NullDecimal `json:"amount_usd"`
	AmountCARS  decimal.NullDecimal `json:"amount_cars"`
	Category    string              `json:"category,omitempty"`
	Subcategory string              `json:"subcategory,omitempty"`
	Origin      string              `json:"origin,omitempty"`
	Tags        *string             `json:"tags,omitempty"`
}

// Amount returns the amount in the given currency. Absent amounts and unknown
// currencies count as zero.
func (t Transaction) Amount(currency string) decimal.Decimal {
	var v decimal.NullDecimal
	code, _ := CanonicalCurrency(currency)
	switch code {
	case CurrencyARS:
		v = t.AmountARS
	case CurrencyUSD:
		v = t.AmountUSD
	case CurrencyCARS:
		v = t.AmountCARS
	}
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

// Pagination echoes the skip/limit window a page was cut with.
type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Page is the backend's paginated envelope: {data, count, pagination}.
// Count is the total number of matching records, not len(Data).
type Page[T any] struct {
	Data       []T        `json:"data"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
}
