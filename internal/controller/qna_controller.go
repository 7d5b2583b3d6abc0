package controller

import (
	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/pkg/serverutils"
	"doc-research-fe/internal/service"
	"doc-research-fe/internal/session"
	"doc-research-fe/internal/view"
)

type IQnAController interface {
	RegisterRoutes(r fiber.Router)
	Page(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	Satisfaction(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Back(ctx *fiber.Ctx) error
	RegenerateSummary(ctx *fiber.Ctx) error
	SaveNote(ctx *fiber.Ctx) error
	Notes(ctx *fiber.Ctx) error
}

type qnaController struct {
	service  service.IQnAService
	renderer *view.Renderer
}

func NewQnAController(service service.IQnAService, renderer *view.Renderer) IQnAController {
	return &qnaController{service: service, renderer: renderer}
}

func (c *qnaController) RegisterRoutes(r fiber.Router) {
	guard := serverutils.PageGuard(session.PageQnA)
	r.Get("/qna", guard, c.Page)
	r.Post("/qna/ask", guard, c.Ask)
	r.Post("/qna/satisfaction", guard, c.Satisfaction)
	r.Post("/qna/clear", guard, c.Clear)
	r.Post("/qna/back", guard, c.Back)
	r.Post("/qna/summary/regenerate", guard, c.RegenerateSummary)
	r.Post("/qna/notes", guard, c.SaveNote)
	r.Get("/qna/notes", guard, c.Notes)
}

func (c *qnaController) Page(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	summary := c.service.Summary(ctx.Context(), sess)

	return c.renderer.Render(ctx, "qna", view.Data{
		Title:   "Q/A Session",
		Session: sess,
		Summary: summary,
	})
}

func (c *qnaController) Ask(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	var form dto.AskForm
	if err := ctx.BodyParser(&form); err != nil {
		flashFor(sess, service.ErrValidation)
		return ctx.Redirect("/qna", fiber.StatusSeeOther)
	}

	if err := c.service.Ask(ctx.Context(), sess, &form); err != nil {
		flashFor(sess, err)
	}
	return ctx.Redirect("/qna", fiber.StatusSeeOther)
}

func (c *qnaController) Satisfaction(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	var form dto.SatisfactionForm
	if err := ctx.BodyParser(&form); err == nil {
		c.service.Satisfaction(sess, form.Satisfied == "yes")
	}
	return ctx.Redirect("/qna", fiber.StatusSeeOther)
}

func (c *qnaController) Clear(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	c.service.Clear(sess)
	return ctx.Redirect("/qna", fiber.StatusSeeOther)
}

func (c *qnaController) Back(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	if err := c.service.Leave(ctx.Context(), sess); err != nil {
		sess.AddFlash("error", "Failed to save session history.")
	} else {
		sess.AddFlash("success", "Session history saved.")
	}
	return ctx.Redirect("/home", fiber.StatusSeeOther)
}

func (c *qnaController) RegenerateSummary(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	c.service.RegenerateSummary(sess)
	return ctx.Redirect("/qna", fiber.StatusSeeOther)
}

func (c *qnaController) SaveNote(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	if err := c.service.SaveNote(ctx.Context(), sess); err != nil {
		flashFor(sess, err)
	} else {
		sess.AddFlash("success", "Entire Q&A session saved as a research note successfully.")
	}
	return ctx.Redirect("/qna", fiber.StatusSeeOther)
}

// Notes renders the Q&A page with the stored research notes expanded.
func (c *qnaController) Notes(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	notes, err := c.service.Notes(ctx.Context(), sess)
	if err != nil {
		flashFor(sess, err)
	}

	return c.renderer.Render(ctx, "qna", view.Data{
		Title:     "Q/A Session",
		Session:   sess,
		Summary:   c.service.Summary(ctx.Context(), sess),
		Notes:     notes,
		ShowNotes: true,
	})
}
