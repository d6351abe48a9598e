package models

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FullName      string    `gorm:"not null" json:"full_name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Role          string    `gorm:"type:varchar(50);default:user;not null" json:"role"`
	Password      string    `gorm:"not null" json:"-"` // stored as bcrypt hash
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Blocked       bool      `json:"blocked" gorm:"default:false"`
	Bookings      []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
	BookingsCount int64     `json:"bookings_count" gorm:"-"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"size:128;index;not null" json:"-"` // sha256 hex of the raw token
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
