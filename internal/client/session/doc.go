// Package session holds who is logged in. It drives the login, profile and
// password flows against the backend, keeps the access token in the
// credential store and tells subscribers about every state change.
//
// A session is authenticated exactly when the credential store holds a token.
// The cached user may lag behind: right after login, or while a profile
// fetch is failing for reasons other than a rejected token, the session is
// authenticated with no user.
package session
