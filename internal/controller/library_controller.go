package controller

import (
	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/pkg/serverutils"
	"doc-research-fe/internal/service"
	"doc-research-fe/internal/session"
	"doc-research-fe/internal/view"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
}

type libraryController struct {
	service  service.ILibraryService
	renderer *view.Renderer
}

func NewLibraryController(service service.ILibraryService, renderer *view.Renderer) ILibraryController {
	return &libraryController{service: service, renderer: renderer}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	r.Get("/home", serverutils.PageGuard(session.PageHome), c.Home)
	r.Post("/documents/select", serverutils.PageGuard(session.PageHome), c.Select)
}

func (c *libraryController) Home(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	docs, err := c.service.Documents(ctx.Context(), sess)
	if err != nil {
		flashFor(sess, err)
	}

	return c.renderer.Render(ctx, "home", view.Data{
		Title:     "Document Library",
		Session:   sess,
		Documents: docs,
	})
}

func (c *libraryController) Select(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	var form dto.SelectDocumentForm
	if err := ctx.BodyParser(&form); err != nil || form.DocumentId == "" {
		flashFor(sess, service.ErrDocumentNotFound)
		return ctx.Redirect("/home", fiber.StatusSeeOther)
	}

	if err := c.service.Select(ctx.Context(), sess, form.DocumentId); err != nil {
		flashFor(sess, err)
		return ctx.Redirect("/home", fiber.StatusSeeOther)
	}

	return ctx.Redirect("/qna", fiber.StatusSeeOther)
}
