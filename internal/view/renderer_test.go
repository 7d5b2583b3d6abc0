package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/session"
)

// renderPage executes one template through a throwaway fiber handler and
// returns the HTML, so each test exercises the real Render path.
func renderPage(t *testing.T, name string, data Data) string {
	t.Helper()
	r := NewRenderer()
	app := fiber.New()
	app.Get("/", func(ctx *fiber.Ctx) error {
		return r.Render(ctx, name, data)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		sb.Write(buf[:n])
		if readErr != nil {
			break
		}
	}
	return sb.String()
}

func TestRenderLoginWithFlashes(t *testing.T) {
	sess := session.New()
	sess.AddFlash("error", "Invalid credentials. Please try again.")

	html := renderPage(t, "login", Data{Title: "Login", Session: sess})
	assert.Contains(t, html, "Invalid credentials. Please try again.")
	assert.Contains(t, html, `action="/login"`)
	assert.Empty(t, sess.PopFlashes(), "flashes consumed by the render")
}

func TestRenderRegister(t *testing.T) {
	html := renderPage(t, "register", Data{Title: "Register", Session: session.New()})
	assert.Contains(t, html, `action="/register"`)
}

func TestRenderHomeWithDocuments(t *testing.T) {
	docs := []dto.Document{
		{Id: "D1", Title: "Annual Report", ImageLink: "http://img/d1.png"},
		{Id: "D2", Title: "Field Study"},
	}
	html := renderPage(t, "home", Data{Title: "Home", Session: session.New(), Documents: docs})
	assert.Contains(t, html, "Annual Report")
	assert.Contains(t, html, "Field Study")
	assert.Contains(t, html, "/media/cover?src=http%3A%2F%2Fimg%2Fd1.png")
}

func TestRenderHomeEmptyLibrary(t *testing.T) {
	html := renderPage(t, "home", Data{Title: "Home", Session: session.New()})
	assert.Contains(t, html, "No documents available.")
}

func TestRenderQnAStates(t *testing.T) {
	yes := true

	base := func() *session.Session {
		sess := session.New()
		sess.Token = "T1"
		sess.SelectDocument(dto.Document{Id: "D1", Title: "Annual Report", PdfLink: "http://pdf/d1.pdf"})
		return sess
	}

	t.Run("preparing document disables the question form", func(t *testing.T) {
		html := renderPage(t, "qna", Data{Title: "Q&A", Session: base(), Summary: "A short summary."})
		assert.Contains(t, html, "disabled")
		assert.Contains(t, html, "A short summary.")
	})

	t.Run("answered question offers the satisfaction prompt", func(t *testing.T) {
		sess := base()
		sess.EmbeddingsReady = true
		sess.AppendUser("What is this about?")
		sess.AppendAssistant("It covers the fiscal year.", false)
		html := renderPage(t, "qna", Data{Title: "Q&A", Session: sess})
		assert.Contains(t, html, "What is this about?")
		assert.Contains(t, html, "It covers the fiscal year.")
		assert.Contains(t, html, `name="satisfied"`)
	})

	t.Run("judged answer shows the recorded satisfaction", func(t *testing.T) {
		sess := base()
		sess.EmbeddingsReady = true
		sess.AppendUser("What is this about?")
		sess.AppendAssistant("It covers the fiscal year.", false)
		sess.History[len(sess.History)-1].Satisfied = &yes
		html := renderPage(t, "qna", Data{Title: "Q&A", Session: sess})
		assert.Contains(t, html, "User Satisfaction: Yes")
		assert.NotContains(t, html, `name="satisfied"`)
	})

	t.Run("missing pdf link gets a placeholder", func(t *testing.T) {
		sess := session.New()
		sess.Token = "T1"
		sess.SelectDocument(dto.Document{Id: "D2", Title: "Field Study"})
		html := renderPage(t, "qna", Data{Title: "Q&A", Session: sess})
		assert.Contains(t, html, "PDF link not available.")
	})
}

func TestRenderResearchNotes(t *testing.T) {
	sess := session.New()
	sess.Token = "T1"
	sess.SelectDocument(dto.Document{Id: "D1", Title: "Annual Report"})
	notes := []string{"## Research Notes\n\n**User:** q1\n\n"}
	html := renderPage(t, "qna", Data{Title: "Q&A", Session: sess, Notes: notes, ShowNotes: true})
	assert.Contains(t, html, "Research Notes")
}
