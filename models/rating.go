package models

import "time"

// Rating is one user's star rating of one course. One row per (user, course);
// rating again overwrites.
type Rating struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex:idx_rating_user_course;not null" json:"user_id"`
	CourseID  uint   `gorm:"uniqueIndex:idx_rating_user_course;not null" json:"course_id"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5
	Comment   string `gorm:"size:1000" json:"comment"`
	IsDeleted bool   `gorm:"default:false" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
