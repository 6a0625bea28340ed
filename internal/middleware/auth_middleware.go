package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type contextKey string

const (
	ContextKeyUserID         = contextKey("userID")
	ContextKeyOrganizationID = contextKey("organizationID")

	// Cookie name follows the __Host- prefix rule (no Domain attribute
	// allowed).
	AccessTokenCookieName = "__Host-accessToken"

	TokenIssuer = "Ceus"
)

// AuthMiddleware guards the API: the JWT is read from the access-token
// cookie or from Authorization: Bearer, validated against the RS256
// public key, and the subject/organization claims are placed in request
// context.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			userID, orgID, vErr := validateToken(tokenStr, pub)
			if vErr != nil {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, ContextKeyOrganizationID, orgID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated agent id from request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// OrganizationID returns the caller's organization id from request
// context.
func OrganizationID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyOrganizationID).(uuid.UUID)
	return id, ok
}

func extractAccessToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing access token")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}

func validateToken(tokenString string, publicKey *rsa.PublicKey) (uuid.UUID, uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, uuid.Nil, errors.New("invalid token claims")
	}

	iss, ok := claims["iss"].(string)
	if !ok || iss != TokenIssuer {
		return uuid.Nil, uuid.Nil, errors.New("invalid token issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("missing subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("subject claim is not a UUID")
	}

	orgClaim, ok := claims["org"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("missing organization claim")
	}
	orgID, err := uuid.Parse(orgClaim)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("organization claim is not a UUID")
	}

	return userID, orgID, nil
}
