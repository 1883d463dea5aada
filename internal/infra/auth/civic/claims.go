// Package civic provides concrete implementations of the civic identity
// token verifier.
package civic

import (
	"github.com/golang-jwt/jwt/v5"

	"civicreport/internal/domain/entity"
)

// claimsFromToken maps the common OIDC-style claim names onto ExternalClaims.
// The provider may omit any of them; email falls back to preferred_username.
func claimsFromToken(claims jwt.MapClaims) *entity.ExternalClaims {
	email := stringClaim(claims, "email")
	if email == "" {
		email = stringClaim(claims, "preferred_username")
	}

	return &entity.ExternalClaims{
		Subject:    stringClaim(claims, "sub"),
		Email:      email,
		Name:       stringClaim(claims, "name"),
		GivenName:  stringClaim(claims, "given_name"),
		FamilyName: stringClaim(claims, "family_name"),
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}

	return ""
}
