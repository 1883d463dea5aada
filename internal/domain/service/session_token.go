package service

// SessionClaims is the payload carried by an application session token.
type SessionClaims struct {
	AccountID string
	Role      string
}

// SessionTokenService mints and validates application-scoped session
// credentials. Tokens are stateless: validity is signature plus expiry
// alone, no server-side session table backs them.
type SessionTokenService interface {
	// Issue creates a signed session token embedding the account id and
	// role, valid for a fixed 24-hour window.
	Issue(accountID, role string) (string, error)

	// Validate checks a session token and returns its claims. Callers must
	// not distinguish between failure causes when reporting to clients.
	Validate(tokenString string) (*SessionClaims, error)
}
