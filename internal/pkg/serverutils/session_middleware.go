package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
)

const (
	sessionCookie = "drfe_session"
	sessionLocal  = "session"
)

// SessionMiddleware resolves the browser's session on every request. The
// cookie carries only an HS256-signed session id; the state itself lives
// in the store. A missing, expired, or tampered cookie yields a fresh
// session, never an error.
type SessionMiddleware struct {
	store  session.Store
	secret []byte
	ttl    time.Duration
	log    logger.ILogger
}

func NewSessionMiddleware(store session.Store, secret string, ttl time.Duration, log logger.ILogger) *SessionMiddleware {
	return &SessionMiddleware{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}
}

func (m *SessionMiddleware) Handle(ctx *fiber.Ctx) error {
	var sess *session.Session

	if raw := ctx.Cookies(sessionCookie); raw != "" {
		if id, err := m.parse(raw); err == nil {
			if s, found := m.store.Get(id); found {
				sess = s
			}
		} else {
			m.log.Warn("session", "rejected session cookie", map[string]interface{}{"error": err.Error()})
		}
	}

	if sess == nil {
		sess = session.New()
		signed, err := m.sign(sess.Id)
		if err != nil {
			return fmt.Errorf("sign session cookie: %w", err)
		}
		ctx.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    signed,
			Expires:  time.Now().Add(m.ttl),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}

	ctx.Locals(sessionLocal, sess)
	err := ctx.Next()
	m.persist(sess)
	return err
}

// persist merges the request's copy back into the store. The embeddings
// consumer may have marked the selected document ready while this request
// ran; that flip survives the write-back as long as the selection did not
// change.
func (m *SessionMiddleware) persist(sess *session.Session) {
	updated := m.store.Update(sess.Id, func(cur *session.Session) {
		ready := cur.EmbeddingsReady &&
			cur.Selected != nil && sess.Selected != nil &&
			cur.Selected.Id == sess.Selected.Id
		*cur = *sess.Clone()
		if ready {
			cur.EmbeddingsReady = true
		}
	})
	if !updated {
		m.store.Save(sess)
	}
}

func (m *SessionMiddleware) sign(id string) (string, error) {
	claims := jwt.MapClaims{
		"sid": id,
		"exp": time.Now().Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *SessionMiddleware) parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("missing session id claim")
	}
	return sid, nil
}

// SessionFromCtx fetches the session the middleware attached. Handlers
// behind the middleware can rely on it being present.
func SessionFromCtx(ctx *fiber.Ctx) *session.Session {
	return ctx.Locals(sessionLocal).(*session.Session)
}
