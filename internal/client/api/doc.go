// Package api is the HTTP client for the finance backend. The bearer token is
// not held by the client: a TokenSource is asked for it each time a request
// is sent, so logins and logouts take effect on the very next call.
package api
