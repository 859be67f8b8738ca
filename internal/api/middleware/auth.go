package middleware

import (
	"context"
	"errors"
	"net/http"

	"staynest/internal/common"
	"staynest/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey contextKey = "userID"
	EmailCtxKey  contextKey = "userEmail"
)

// SessionCookieName is the credential carrier. Logout clears it.
const SessionCookieName = "token"

// TokenFromCookie is the find-token function handed to jwtauth.Verify: the
// session token travels in an opaque cookie, not the Authorization header.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ResolveIdentity recovers the authenticated identity from the verified
// request context. Outcomes are distinct on purpose: (id, email, nil) for a
// valid session, ("", "", nil) for an anonymous request, and a non-nil error
// when a token was presented but failed verification — that last case must
// fail closed, never be treated as anonymous.
func ResolveIdentity(r *http.Request) (userID, email string, err error) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			return "", "", nil
		}
		return "", "", common.ErrUnauthorized
	}
	if token == nil {
		return "", "", nil
	}

	userID, err = security.GetUserIDFromClaims(claims)
	if err != nil {
		return "", "", common.ErrUnauthorized
	}
	email, err = security.GetEmailFromClaims(claims)
	if err != nil {
		return "", "", common.ErrUnauthorized
	}
	return userID, email, nil
}

// Authenticator gates protected routes: anonymous and invalid-token requests
// are both rejected with 401, and the resolved identity is stored in the
// request context for handlers downstream.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, email, err := ResolveIdentity(r)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		if userID == "" {
			common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, EmailCtxKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user email from context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailCtxKey).(string)
	return email, ok
}
