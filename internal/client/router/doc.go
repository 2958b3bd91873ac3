// Package router resolves navigation paths against a static route table and
// gates them on the session: auth-only routes send anonymous users to the
// login page, guest-only routes send logged-in users home.
package router
