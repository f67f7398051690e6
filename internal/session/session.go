// Package session carries the current-user identity through a request.
// There is no package-level state: a Session is built per request by the
// middleware, stored in the request context, and discarded with it.
package session

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Header names for the trusted identity the reverse proxy injects.
// The service itself does not authenticate; it only threads identity through.
const (
	UserHeader = "X-User-ID"
	TeamHeader = "X-Team-ID"
)

// Session identifies who is acting and on behalf of which team.
type Session struct {
	UserID     string    `json:"user_id"`
	TeamID     int64     `json:"team_id,omitempty"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// Anonymous reports whether the request carried no identity at all.
func (s Session) Anonymous() bool { return s.UserID == "" }

type ctxKey struct{}

// WithSession returns a child context carrying the session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session placed by the middleware. The second
// return is false when no middleware ran (tests, background jobs).
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Clock matches the service layer's clock so sign-in times are testable.
type Clock interface {
	Now() time.Time
}

// Middleware builds a Session from the request headers and attaches it to the
// request context. Requests without identity headers still get a session; it
// is just anonymous.
func Middleware(clock Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := Session{
			UserID:     strings.TrimSpace(c.GetHeader(UserHeader)),
			SignedInAt: clock.Now(),
		}
		if raw := strings.TrimSpace(c.GetHeader(TeamHeader)); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				s.TeamID = id
			}
		}
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), s))
		c.Next()
	}
}
