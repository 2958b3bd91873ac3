// Package models defines the client-side view of the backend's resources:
// users, tokens, income/expense transactions and the paginated envelope.
package models
