package controller

import (
	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/pkg/serverutils"
	"doc-research-fe/internal/service"
	"doc-research-fe/internal/session"
	"doc-research-fe/internal/view"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	LoginPage(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	RegisterPage(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	renderer *view.Renderer
}

func NewAuthController(service service.IAuthService, renderer *view.Renderer) IAuthController {
	return &authController{service: service, renderer: renderer}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/login", c.LoginPage)
	r.Post("/login", c.Login)
	r.Get("/register", c.RegisterPage)
	r.Post("/register", c.Register)
	r.Post("/logout", c.Logout)
}

// Root re-enters the session wherever it left off.
func (c *authController) Root(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	switch session.Resolve(sess.Authenticated(), sess.Page, sess.Selected != nil) {
	case session.ViewRegister:
		return ctx.Redirect("/register", fiber.StatusSeeOther)
	case session.ViewHome:
		return ctx.Redirect("/home", fiber.StatusSeeOther)
	case session.ViewQnA:
		return ctx.Redirect("/qna", fiber.StatusSeeOther)
	case session.ViewForbidden:
		sess.Logout()
		sess.AddFlash("error", "Invalid page or authentication state.")
		return ctx.Redirect("/login", fiber.StatusSeeOther)
	default:
		return ctx.Redirect("/login", fiber.StatusSeeOther)
	}
}

func (c *authController) LoginPage(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	sess.Page = session.PageLogin
	return c.renderer.Render(ctx, "login", view.Data{Title: "Login", Session: sess})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	var form dto.CredentialsForm
	if err := ctx.BodyParser(&form); err != nil {
		flashFor(sess, service.ErrValidation)
		return ctx.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := c.service.Login(ctx.Context(), sess, &form); err != nil {
		flashFor(sess, err)
		return ctx.Redirect("/login", fiber.StatusSeeOther)
	}

	sess.AddFlash("success", "Login successful!")
	return ctx.Redirect("/home", fiber.StatusSeeOther)
}

func (c *authController) RegisterPage(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	sess.Page = session.PageRegister
	return c.renderer.Render(ctx, "register", view.Data{Title: "Register", Session: sess})
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	var form dto.CredentialsForm
	if err := ctx.BodyParser(&form); err != nil {
		flashFor(sess, service.ErrValidation)
		return ctx.Redirect("/register", fiber.StatusSeeOther)
	}

	if err := c.service.Register(ctx.Context(), sess, &form); err != nil {
		flashFor(sess, err)
		return ctx.Redirect("/register", fiber.StatusSeeOther)
	}

	sess.AddFlash("success", "Registration successful! Please login.")
	return ctx.Redirect("/login", fiber.StatusSeeOther)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	c.service.Logout(sess)
	return ctx.Redirect("/login", fiber.StatusSeeOther)
}
