package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/session"
)

// PageGuard enforces the router transition table for a protected page.
// Unauthenticated sessions bounce to login; an invalid combination (Q&A
// without a selected document) forces a logout before bouncing.
func PageGuard(page session.Page) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess := SessionFromCtx(ctx)

		switch session.Resolve(sess.Authenticated(), page, sess.Selected != nil) {
		case session.ViewLogin, session.ViewRegister:
			return ctx.Redirect("/login", fiber.StatusSeeOther)
		case session.ViewForbidden:
			sess.Logout()
			sess.AddFlash("error", "Invalid page or authentication state.")
			return ctx.Redirect("/login", fiber.StatusSeeOther)
		}

		sess.Page = page
		return ctx.Next()
	}
}
