package models

import (
	"time"

	"gorm.io/gorm"
)

type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type Chapter struct {
	Name         string   `json:"name"`
	Topic        string   `json:"topic"`
	VideoURL     string   `json:"videoUrl"`
	Duration     Duration `json:"duration"`
	TotalMinutes int      `json:"totalMinutes"`
}

type Lecture struct {
	Title        string    `json:"title"`
	Duration     Duration  `json:"duration"`
	TotalMinutes int       `json:"totalMinutes"`
	Chapters     []Chapter `json:"chapters"`
}

type Price struct {
	Original float64 `json:"original"`
	Sale     float64 `json:"sale"`
}

type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:300;not null" json:"name"`
	Teacher     string `gorm:"size:200" json:"teacher"`
	Image       string `json:"image"` // relative "/uploads/..." path or absolute URL
	PricingType string `gorm:"size:20;default:free" json:"pricingType"`
	Price       Price  `gorm:"type:jsonb;serializer:json" json:"price"`
	Overview    string `gorm:"type:text" json:"overview"`
	CourseType  string `gorm:"size:20;default:regular;index" json:"courseType"` // "top" or "regular"
	Category    string `gorm:"size:100" json:"category,omitempty"`
	CreatedBy   string `gorm:"size:200" json:"createdBy,omitempty"`

	Lectures      []Lecture `gorm:"type:jsonb;serializer:json" json:"lectures"`
	TotalDuration Duration  `gorm:"type:jsonb;serializer:json" json:"totalDuration"`
	TotalLectures int       `json:"totalLectures"`

	AvgRating          float64        `gorm:"default:0" json:"avgRating"`
	TotalRatings       int64          `gorm:"default:0" json:"totalRatings"`
	RatingDistribution map[string]int `gorm:"type:jsonb;serializer:json" json:"ratingDistribution,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// EffectivePrice is the amount a booking is created with: the sale price when
// set, otherwise the original price. Free courses are always 0.
func (c *Course) EffectivePrice() float64 {
	if c.PricingType == "free" {
		return 0
	}
	if c.Price.Sale > 0 {
		return c.Price.Sale
	}
	return c.Price.Original
}

// ComputeDerived normalizes the lecture tree and fills in the totals: chapter
// minutes from hours/minutes when missing, lecture minutes = own duration +
// chapters, course total duration and lecture count from the tree.
func (c *Course) ComputeDerived() {
	totalCourseMinutes := 0

	for i := range c.Lectures {
		lec := &c.Lectures[i]
		if lec.Title == "" {
			lec.Title = "Untitled lecture"
		}

		chaptersMinutes := 0
		for j := range lec.Chapters {
			ch := &lec.Chapters[j]
			if ch.TotalMinutes == 0 {
				ch.TotalMinutes = ch.Duration.Hours*60 + ch.Duration.Minutes
			}
			chaptersMinutes += ch.TotalMinutes
		}

		lec.TotalMinutes = lec.Duration.Hours*60 + lec.Duration.Minutes + chaptersMinutes
		totalCourseMinutes += lec.TotalMinutes
	}

	c.TotalDuration = Duration{
		Hours:   totalCourseMinutes / 60,
		Minutes: totalCourseMinutes % 60,
	}
	c.TotalLectures = len(c.Lectures)
}
