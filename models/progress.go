package models

import "time"

// Progress tracks which chapters of a course a user has checked off.
type Progress struct {
	ID                uint     `gorm:"primaryKey" json:"id"`
	UserID            uint     `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"user_id"`
	CourseID          uint     `gorm:"uniqueIndex:idx_progress_user_course;not null" json:"course_id"`
	CompletedChapters []string `gorm:"type:jsonb;serializer:json" json:"completedChapters"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
