package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// User represents a platform user.
type User struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	Password              string     `json:"-"`
	FullName              string     `json:"full_name"`
	Role                  Role       `json:"role"`
	Phone                 string     `json:"phone,omitempty"`
	SkillLevel            string     `json:"skill_level,omitempty"`
	PreferredSports       string     `json:"preferred_sports,omitempty"`
	Location              string     `json:"location,omitempty"`
	StripeCustomerID      string     `json:"-"`
	SubscriptionID        string     `json:"-"`
	SubscriptionStatus    string     `json:"subscription_status,omitempty"`
	SubscriptionPeriodEnd *time.Time `json:"subscription_period_end,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Role            Role      `json:"role"`
	Phone           string    `json:"phone,omitempty"`
	SkillLevel      string    `json:"skill_level,omitempty"`
	PreferredSports string    `json:"preferred_sports,omitempty"`
	Location        string    `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Role:            u.Role,
		Phone:           u.Phone,
		SkillLevel:      u.SkillLevel,
		PreferredSports: u.PreferredSports,
		Location:        u.Location,
		CreatedAt:       u.CreatedAt,
	}
}

// ProfileMissing lists the profile-completeness fields that are still empty.
func (u *User) ProfileMissing() []string {
	missing := []string{}
	if u.Phone == "" {
		missing = append(missing, "phone")
	}
	if u.SkillLevel == "" {
		missing = append(missing, "skill_level")
	}
	if u.PreferredSports == "" {
		missing = append(missing, "preferred_sports")
	}
	if u.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}

// VerifiedUser records a phone-verified external identity (Telegram).
// Presence of the row is what "verified" means; there is no expiry.
type VerifiedUser struct {
	ID         string    `json:"id"` // "telegram:<id>"
	Phone      string    `json:"phone"`
	VerifiedAt time.Time `json:"verified_at"`
}
