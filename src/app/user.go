package app

import (
	"strings"
	"time"
)

// User is the identity record. The password hash is only set for manual
// registrations, GoogleID only for accounts created through OAuth; one
// account may carry both after linking.
type User struct {
	UserID        string    `bson:"userId" json:"userId"`
	Email         string    `bson:"email" json:"email"`
	Name          string    `bson:"name" json:"name"`
	Avatar        string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	PasswordHash  string    `bson:"password,omitempty" json:"-"`
	GoogleID      string    `bson:"googleId,omitempty" json:"-"`
	EmailVerified bool      `bson:"emailVerified" json:"emailVerified"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// OAuthProfile is what the identity provider hands back after a
// successful external sign-in.
type OAuthProfile struct {
	Subject    string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Picture    string
	Verified   bool
}

// DisplayName resolves the profile name with the fallback chain:
// explicit display name, given+family, email local-part.
func (p OAuthProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	full := strings.TrimSpace(p.GivenName + " " + p.FamilyName)
	if full != "" {
		return full
	}
	return strings.SplitN(p.Email, "@", 2)[0]
}
