package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cinematica/cinematica-api/internal/apperrors"
)

const userIDKey = "user_id"

// Authenticator validates bearer tokens against the user pool's published
// JWKS. The key set is cached and refreshed in the background so the pool is
// not hit on every request.
type Authenticator struct {
	jwksURL string
	issuer  string
	cache   *jwk.Cache
}

func NewAuthenticator(ctx context.Context, jwksURL, issuer string) (*Authenticator, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, err
	}
	// Fail fast when the endpoint is misconfigured.
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, err
	}

	return &Authenticator{
		jwksURL: jwksURL,
		issuer:  issuer,
		cache:   cache,
	}, nil
}

// RequireAuth rejects requests without a valid signed token and stores the
// token subject in the request context.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimPrefix(strings.TrimSpace(c.GetHeader("Authorization")), "Bearer ")
		if raw == "" {
			abortUnauthorized(c, "missing authorization token")
			return
		}

		keySet, err := a.cache.Get(c.Request.Context(), a.jwksURL)
		if err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.KindUpstreamUnavailable, "identity provider unavailable", err))
			c.Abort()
			return
		}

		token, err := jwt.ParseString(raw,
			jwt.WithKeySet(keySet),
			jwt.WithValidate(true),
			jwt.WithIssuer(a.issuer),
		)
		if err != nil {
			abortUnauthorized(c, "invalid authorization token")
			return
		}

		sub := token.Subject()
		if sub == "" {
			abortUnauthorized(c, "token has no subject claim")
			return
		}

		c.Set(userIDKey, sub)
		c.Next()
	}
}

// GetUserID returns the authenticated subject stored by RequireAuth.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Code:    apperrors.KindUnauthorized.String(),
		Message: message,
	})
}
