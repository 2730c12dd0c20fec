package entity

import (
	"time"
)

// Asset references an object stored on the asset host.
type Asset struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// IsZero reports whether a references no stored object.
func (a Asset) IsZero() bool { return a.PublicID == "" }

// User is the single admin account and the public portfolio profile.
// PasswordHash and the reset fields never leave the process.
type User struct {
	ID           string    `json:"_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Resume       Asset     `json:"resume"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	PortfolioURL string    `json:"portfolioURL"`
	GithubURL    string    `json:"githubURL"`
	InstagramURL string    `json:"instagramURL"`
	LinkedInURL  string    `json:"linkedInURL"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Both set or both nil.
	ResetPasswordToken  *string    `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`

	// Bumped on every password change; sessions minted with an older value are rejected.
	TokenVersion int `json:"-"`
}

func (u *User) ClearReset() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}

func (u User) HasPendingReset() bool {
	return u.ResetPasswordToken != nil && u.ResetPasswordExpire != nil
}
