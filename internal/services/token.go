package services

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// CheckTokenSub verifies that the bearer token in an Authorization header
// belongs to the user id named in the request. Signature and expiry are
// validated by the auth middleware upstream; this only decodes the subject
// claim and compares it, case-sensitively.
func CheckTokenSub(authorizationHeader, claimedUserID string) (bool, string) {
	raw := strings.TrimSpace(authorizationHeader)
	raw = strings.TrimPrefix(raw, "Bearer ")
	if raw == "" {
		return false, "missing authorization token"
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false, "invalid authorization token"
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return false, "token has no subject claim"
	}

	if sub != claimedUserID {
		return false, "token subject does not match the supplied user id"
	}
	return true, ""
}
