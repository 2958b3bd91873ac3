package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Amount_PicksCurrencyAndTreatsNullAsZero(t *testing.T) {
	body := `{
		"id": "t1", "date": "2024-02-10", "account": "Income:Salary",
		"narration": "salary", "amount_ars": 1500.25, "amount_usd": null,
		"origin": "work"
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(body), &tx))

	assert.True(t, tx.Amount("ARS").Equal(decimal.RequireFromString("1500.25")))
	assert.True(t, tx.Amount("ars").Equal(decimal.RequireFromString("1500.25")))
	assert.True(t, tx.Amount(CurrencyUSD).IsZero(), "null amount counts as zero")
	assert.True(t, tx.Amount(CurrencyCARS).IsZero(), "missing amount counts as zero")
	assert.True(t, tx.Amount("EUR").IsZero(), "unknown currency counts as zero")
}

func TestTransaction_Amount_CARS(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t2","amount_cars":"12.5"}`), &tx))

	assert.True(t, tx.Amount(CurrencyCARS).Equal(decimal.RequireFromString("12.5")))
	assert.True(t, tx.Amount("CARS").Equal(decimal.RequireFromString("12.5")))
}

func TestPage_Decode(t *testing.T) {
	body := `{"data":[{"id":"a","amount_ars":1},{"id":"b","amount_ars":2}],"count":7,"pagination":{"skip":0,"limit":2}}`

	var p Page[Transaction]
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Len(t, p.Data, 2)
	assert.Equal(t, 7, p.Count)
	assert.Equal(t, Pagination{Skip: 0, Limit: 2}, p.Pagination)
}

func TestPage_NullPagination(t *testing.T) {
	var p Page[Transaction]
	require.NoError(t, json.Unmarshal([]byte(`{"data":[],"count":0,"pagination":null}`), &p))
	assert.Equal(t, Pagination{}, p.Pagination)
}

func TestIsSupportedCurrency(t *testing.T) {
	assert.True(t, IsSupportedCurrency("ARS"))
	assert.True(t, IsSupportedCurrency("usd"))
	assert.False(t, IsSupportedCurrency("EUR"))
	assert.False(t, IsSupportedCurrency(""))
}

func TestCanonicalCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"ARS", "ARS", true},
		{"usd", "USD", true},
		{"CARS", "cARS", true},
		{"cars", "cARS", true},
		{"cARS", "cARS", true},
		{"EUR", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := CanonicalCurrency(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUser_DisplayName(t *testing.T) {
	name := "Ana Perez"
	empty := ""

	assert.Equal(t, "Ana Perez", User{Email: "ana@example.com", FullName: &name}.DisplayName())
	assert.Equal(t, "ana@example.com", User{Email: "ana@example.com", FullName: &empty}.DisplayName())
	assert.Equal(t, "ana@example.com", User{Email: "ana@example.com"}.DisplayName())
}

func TestUserUpdateMe_IsEmpty(t *testing.T) {
	email := "new@example.com"
	assert.True(t, UserUpdateMe{}.IsEmpty())
	assert.False(t, UserUpdateMe{Email: &email}.IsEmpty())
}
