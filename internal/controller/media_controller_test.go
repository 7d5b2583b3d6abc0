package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
)

func newMediaApp(sess *session.Session, resolver *gateway.ImageResolver) *fiber.App {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("session", sess)
		return ctx.Next()
	})
	NewMediaController(resolver).RegisterRoutes(app)
	return app
}

func coverRequest(src string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/media/cover?src="+url.QueryEscape(src), nil)
}

func TestCoverRequiresAuthentication(t *testing.T) {
	var hits int32
	img := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("bytes"))
	}))
	defer img.Close()

	sess := session.New()
	sess.Documents = []dto.Document{{Id: "D7", ImageLink: img.URL}}
	app := newMediaApp(sess, gateway.NewImageResolver("", logger.NewNopLogger()))

	resp, err := app.Test(coverRequest(img.URL))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestCoverProxiesLibraryImage(t *testing.T) {
	img := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("cover-bytes"))
	}))
	defer img.Close()

	sess := session.New()
	sess.Token = "T1"
	sess.Documents = []dto.Document{{Id: "D7", ImageLink: img.URL}}
	app := newMediaApp(sess, gateway.NewImageResolver("", logger.NewNopLogger()))

	resp, err := app.Test(coverRequest(img.URL), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "cover-bytes", string(body))
}

func TestCoverRejectsURLOutsideLibrary(t *testing.T) {
	var hits int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("secret"))
	}))
	defer target.Close()

	sess := session.New()
	sess.Token = "T1"
	sess.Documents = []dto.Document{{Id: "D7", ImageLink: "http://img/d7.png"}}
	app := newMediaApp(sess, gateway.NewImageResolver("", logger.NewNopLogger()))

	resp, err := app.Test(coverRequest(target.URL))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "No Image Available", string(body))
	assert.Zero(t, atomic.LoadInt32(&hits), "arbitrary targets are never fetched")
}

func TestCoverAllowsConfiguredDefault(t *testing.T) {
	img := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("default-bytes"))
	}))
	defer img.Close()

	sess := session.New()
	sess.Token = "T1"
	app := newMediaApp(sess, gateway.NewImageResolver(img.URL, logger.NewNopLogger()))

	resp, err := app.Test(coverRequest(img.URL), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
