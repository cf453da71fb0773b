package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/ratelimit"
	"sweetcrumb/internal/repository"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = "admin_session"
	HeaderName = "X-Admin-Key"
	FormField  = "adminKey"

	tokenValue = "token"
)

var ErrInvalidKey = errors.New("invalid admin key")

// KeyAttempts is the allowance rejected admin keys are charged to.
type KeyAttempts interface {
	Take(r *http.Request) ratelimit.Result
	Peek(r *http.Request) ratelimit.Result
	RetryAfter(res ratelimit.Result) int
}

// AdminService is the shared-key gate in front of every mutating route.
// A verified key opens a session whose opaque token travels in a signed
// cookie and is looked up in the session repository.
type AdminService struct {
	log      *slog.Logger
	keyHash  []byte
	sessions repository.SessionRepository
	store    sessions.Store
	ttl      time.Duration
	secure   bool
	attempts KeyAttempts
}

func NewAdminService(
	log *slog.Logger,
	adminKey string,
	sessionRepo repository.SessionRepository,
	store sessions.Store,
	ttl time.Duration,
	secure bool,
) (*AdminService, error) {
	const op = "admin_service.NewAdminService"

	if adminKey == "" {
		return nil, fmt.Errorf("%s: admin key is empty", op)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AdminService{
		log:      log,
		keyHash:  hash,
		sessions: sessionRepo,
		store:    store,
		ttl:      ttl,
		secure:   secure,
	}, nil
}

// Verify checks key and opens a session for it.
func (s *AdminService) Verify(ctx context.Context, key string) (string, time.Time, error) {
	const op = "admin_service.Verify"

	log := s.log.With(
		slog.String("op", op),
	)

	if !s.keyMatches(key) {
		log.Warn("admin key rejected")

		return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrInvalidKey)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	if err := s.sessions.SaveSession(ctx, token, s.ttl); err != nil {
		log.Error("failed to save session", sl.Err(err))

		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin session opened", slog.Time("expires_at", expiresAt))

	return token, expiresAt, nil
}

// CookieOptions are the attributes of the admin session cookie.
func (s *AdminService) CookieOptions() *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// SetToken stores token in sess so the caller can save it as the cookie.
func (s *AdminService) SetToken(sess *sessions.Session, token string) {
	sess.Options = s.CookieOptions()
	sess.Values[tokenValue] = token
}

// LimitKeyAttempts charges every rejected header or form key to attempts.
// A client out of attempts has its keys ignored until the window ends.
func (s *AdminService) LimitKeyAttempts(attempts KeyAttempts) {
	s.attempts = attempts
}

// Authorize accepts the admin key header, the admin key field of a form
// body, or a live session cookie, checked in that order. It never fails
// loudly.
func (s *AdminService) Authorize(ctx context.Context, r *http.Request) bool {
	if s.presentedKeyMatches(r) {
		return true
	}

	return s.CheckSession(ctx, r)
}

// Throttled reports whether r presents a key while its client is out of
// key attempts, with the seconds left until it may try again.
func (s *AdminService) Throttled(r *http.Request) (int, bool) {
	if s.attempts == nil {
		return 0, false
	}

	header, field := presentedKeys(r)
	if header == "" && field == "" {
		return 0, false
	}

	res := s.attempts.Peek(r)
	if res.Allowed {
		return 0, false
	}

	return s.attempts.RetryAfter(res), true
}

func (s *AdminService) presentedKeyMatches(r *http.Request) bool {
	const op = "admin_service.Authorize"

	header, field := presentedKeys(r)
	if header == "" && field == "" {
		return false
	}

	if _, throttled := s.Throttled(r); throttled {
		return false
	}

	if s.keyMatches(header) || s.keyMatches(field) {
		return true
	}

	if s.attempts != nil {
		s.attempts.Take(r)
	}

	s.log.Warn("admin key rejected", slog.String("op", op), slog.String("client", ratelimit.ClientID(r)))

	return false
}

// CheckSession reports whether the request carries a live session cookie.
// The cookie is never re-issued.
func (s *AdminService) CheckSession(ctx context.Context, r *http.Request) bool {
	const op = "admin_service.CheckSession"

	token := s.sessionToken(r)
	if token == "" {
		return false
	}

	ok, err := s.sessions.SessionValid(ctx, token)
	if err != nil {
		s.log.Error("failed to check session", slog.String("op", op), sl.Err(err))
		return false
	}

	return ok
}

// Logout drops the session behind the request cookie, if any, and expires
// the cookie in sess.
func (s *AdminService) Logout(ctx context.Context, r *http.Request, sess *sessions.Session) error {
	const op = "admin_service.Logout"

	if token := s.sessionToken(r); token != "" {
		if err := s.sessions.DeleteSession(ctx, token); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	sess.Options = s.CookieOptions()
	sess.Options.MaxAge = -1
	delete(sess.Values, tokenValue)

	return nil
}

func (s *AdminService) sessionToken(r *http.Request) string {
	sess, err := s.store.Get(r, CookieName)
	if err != nil || sess.IsNew {
		return ""
	}

	token, _ := sess.Values[tokenValue].(string)
	return token
}

func (s *AdminService) keyMatches(key string) bool {
	return key != "" && bcrypt.CompareHashAndPassword(s.keyHash, []byte(key)) == nil
}

// presentedKeys returns the header key and, for form bodies, the form
// field key.
func presentedKeys(r *http.Request) (header, field string) {
	header = r.Header.Get(HeaderName)
	if isFormBody(r) {
		field = r.FormValue(FormField)
	}

	return header, field
}

func isFormBody(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return ct == "multipart/form-data" || ct == "application/x-www-form-urlencoded"
}
