// Package common contains shared constants and small helpers used across
// fintrack client components.
package common

// AccessTokenKey is the storage key under which the bearer token is kept in
// both credential tiers.
const AccessTokenKey = "access_token"

// AuthorizationHeader and BearerScheme form the header attached to
// authenticated requests: "Authorization: Bearer <token>".
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// DateLayout is the wire format of dates exchanged with the backend.
const DateLayout = "2006-01-02"

// DefaultCurrency is the currency the dashboard totals are computed in.
const DefaultCurrency = "ARS"
