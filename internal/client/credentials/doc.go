// Package credentials keeps the access token in one of two tiers: a durable
// tier that survives restarts (SQLite metadata table or OS keyring) and a
// session tier that lives as long as the process.
package credentials
