package controller

import (
	"errors"

	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/service"
	"doc-research-fe/internal/session"
)

// flashFor maps a service/gateway error onto the user-facing message the
// next render shows. Unexpected errors get the generic text; the gateway
// already logged their detail.
func flashFor(sess *session.Session, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		sess.AddFlash("error", "Username and Password are required.")
	case errors.Is(err, gateway.ErrInvalidCredentials):
		sess.AddFlash("error", "Invalid credentials. Please try again.")
	case errors.Is(err, gateway.ErrUserNotFound):
		sess.AddFlash("error", "User does not exist. Please register first.")
	case errors.Is(err, gateway.ErrUserExists):
		sess.AddFlash("error", "User already exists. Please choose a different username.")
	case errors.Is(err, gateway.ErrUnauthorized):
		sess.Logout()
		sess.AddFlash("error", "Session expired. Please login again.")
	case errors.Is(err, gateway.ErrConnection):
		sess.AddFlash("error", "Unable to connect to the backend. Please try again later.")
	case errors.Is(err, service.ErrNotReady):
		sess.AddFlash("warning", "The document is still being prepared. Please wait a moment.")
	case errors.Is(err, service.ErrEmptyHistory):
		sess.AddFlash("warning", "No Q&A history to save.")
	case errors.Is(err, service.ErrDocumentNotFound):
		sess.AddFlash("error", "Document not found.")
	default:
		sess.AddFlash("error", "Something went wrong. Please try again.")
	}
}
