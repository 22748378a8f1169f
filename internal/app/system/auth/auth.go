package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/pmhub/internal/app/system/respond"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Identity                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the caller identity resolved by the external auth service
// and carried either in a bearer token or in the cookie session.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	return FromContext(r.Context())
}

// FromContext is CurrentUser for code that only holds a context.
func FromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser injects u into the request context. Tests use it to bypass
// token parsing.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Tokens                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Claims is the JWT payload issued by the auth service.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

const (
	sessionUserID = "user_id"
	sessionName   = "user_name"
	sessionEmail  = "user_email"
	sessionRole   = "user_role"
)

// Manager resolves the caller identity for each request. Bearer tokens take
// precedence over the cookie session.
type Manager struct {
	secret      []byte
	store       *sessions.CookieStore
	sessionName string
	log         *zap.Logger
}

// NewManager builds a Manager. An empty sessionKey generates an ephemeral
// key, which means cookie sessions do not survive restarts.
func NewManager(jwtSecret, sessionKey, sessionName string, secure bool, logger *zap.Logger) (*Manager, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	keyBytes := []byte(sessionKey)
	if sessionKey == "" {
		keyBytes = securecookie.GenerateRandomKey(32)
		if keyBytes == nil {
			return nil, fmt.Errorf("could not generate session key")
		}
		logger.Warn("session key not configured; using an ephemeral key")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore(keyBytes)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((12 * time.Hour).Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		secret:      []byte(jwtSecret),
		store:       store,
		sessionName: sessionName,
		log:         logger,
	}, nil
}

// ParseToken validates a signed token and returns the identity it carries.
func (m *Manager) ParseToken(tokenString string) (*SessionUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return &SessionUser{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  strings.ToLower(claims.Role),
	}, nil
}

// IssueToken signs a token for u. The auth service owns issuance in
// production; the seed CLI and tests use this to mint development tokens.
func (m *Manager) IssueToken(u SessionUser, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadUser injects the caller into context when a valid bearer token or
// cookie session is present. A present but invalid bearer token is rejected.
func (m *Manager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok, err := bearerToken(r); err == nil {
			u, err := m.ParseToken(tok)
			if err != nil {
				m.log.Debug("rejecting bearer token", zap.Error(err))
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "Invalid token", "")
				return
			}
			next.ServeHTTP(w, withUser(r, u))
			return
		}

		if u := m.sessionUser(r); u != nil {
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests without a caller identity.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized", "Access token required", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers whose role is not in allowed.
func (m *Manager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "Access token required", "")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				respond.Error(w, http.StatusForbidden, "forbidden", "Insufficient permissions", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Cookie sessions                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// StartSession stores u in the cookie session.
func (m *Manager) StartSession(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := m.store.Get(r, m.sessionName)
	sess.Values[sessionUserID] = u.ID
	sess.Values[sessionName] = u.Name
	sess.Values[sessionEmail] = u.Email
	sess.Values[sessionRole] = u.Role
	return sess.Save(r, w)
}

// EndSession expires the cookie session.
func (m *Manager) EndSession(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.sessionName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func (m *Manager) sessionUser(r *http.Request) *SessionUser {
	sess, err := m.store.Get(r, m.sessionName)
	if err != nil {
		return nil
	}
	id := getString(sess, sessionUserID)
	role := getString(sess, sessionRole)
	if id == "" || role == "" {
		return nil
	}
	return &SessionUser{
		ID:    id,
		Name:  getString(sess, sessionName),
		Email: getString(sess, sessionEmail),
		Role:  role,
	}
}

// helpers

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, error) {
	return bearerToken(r)
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", ErrMissingToken
	}
	tok := strings.TrimPrefix(h, "Bearer ")
	if tok == h || strings.TrimSpace(tok) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(tok), nil
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
