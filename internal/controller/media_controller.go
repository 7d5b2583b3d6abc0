package controller

import (
	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/serverutils"
	"doc-research-fe/internal/session"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Cover(ctx *fiber.Ctx) error
}

// mediaController proxies document cover images so the browser always
// gets either the document's image, the configured default, or a textual
// placeholder — never a broken external link. Only URLs from the
// session's own document list (or the configured default) are fetched;
// the proxy is not open to arbitrary targets.
type mediaController struct {
	resolver *gateway.ImageResolver
}

func NewMediaController(resolver *gateway.ImageResolver) IMediaController {
	return &mediaController{resolver: resolver}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	r.Get("/media/cover", c.Cover)
}

func (c *mediaController) Cover(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	if !sess.Authenticated() {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}

	src := ctx.Query("src")
	if !c.allowed(sess, src) {
		return ctx.Status(fiber.StatusNotFound).SendString("No Image Available")
	}

	data, ctype, err := c.resolver.Resolve(ctx.Context(), src)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).SendString("No Image Available")
	}

	ctx.Set(fiber.HeaderContentType, ctype)
	return ctx.Send(data)
}

func (c *mediaController) allowed(sess *session.Session, src string) bool {
	if src == c.resolver.DefaultURL {
		return true
	}
	for _, doc := range sess.Documents {
		if doc.ImageLink == src {
			return true
		}
	}
	return false
}
