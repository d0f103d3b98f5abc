package user

import "time"

// User is the identity anchor. Authentication mechanics (OTP delivery,
// sessions) live outside this service; we only consume the resulting rows.
type User struct {
	ID              int64      `json:"id" db:"id"`
	Phone           string     `json:"phone" db:"phone"`
	IsPhoneVerified bool       `json:"is_phone_verified" db:"is_phone_verified"`
	IsPremium       bool       `json:"is_premium" db:"is_premium"`
	IsBlocked       bool       `json:"is_blocked" db:"is_blocked"`
	IsDeleted       bool       `json:"is_deleted" db:"is_deleted"`
	LastActiveAt    *time.Time `json:"last_active_at,omitempty" db:"last_active_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the account can participate in discovery at all.
func (u *User) IsActive() bool {
	return !u.IsBlocked && !u.IsDeleted
}
