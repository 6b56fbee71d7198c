package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Carrier transports the session token between client and server, via
// an Authorization bearer header or an HTTP-only cookie.
type Carrier struct {
	cookieName string
}

// NewCarrier creates a Carrier using the given cookie name.
func NewCarrier(cookieName string) *Carrier {
	return &Carrier{cookieName: cookieName}
}

// Attach sets the session cookie on the response. The cookie expiry is
// the token's own expiry, so the carrier never outlives the credential.
func (s *Carrier) Attach(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
	})
}

// Extract reads the token from the Authorization header if present,
// falling back to the session cookie. Returns false when neither carries
// a token.
func (s *Carrier) Extract(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1], true
		}
	}

	if token := c.Cookies(s.cookieName); token != "" {
		return token, true
	}

	return "", false
}

// Clear overwrites the cookie with an empty, near-immediately expiring
// value, logging the client out. The token itself stays verifiable until
// its own expiry; there is no server-side revocation.
func (s *Carrier) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})
}
