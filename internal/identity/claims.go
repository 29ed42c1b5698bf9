package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the dashboard reads out of an ID token. The signature is
// not verified here: the backend verifies every token it receives, and the
// claims only decide what the UI shows.
type Claims struct {
	UID     string
	Email   string
	IsOwner bool
	Expiry  time.Time
}

func ParseClaims(idToken string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, mc); err != nil {
		return Claims{}, fmt.Errorf("parse id token: %w", err)
	}

	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.UID = sub
	}
	if uid, ok := mc["user_id"].(string); ok && uid != "" {
		c.UID = uid
	}
	c.Email, _ = mc["email"].(string)
	c.IsOwner, _ = mc["isOwner"].(bool)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.Expiry = exp.Time
	}
	return c, nil
}
