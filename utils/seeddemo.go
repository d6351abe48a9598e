package utils

import (
	"learnsphere/models"

	"gorm.io/gorm"
)

// SeedDemoCourses inserts a couple of starter courses so a fresh install has
// something to show. Skips any course that already exists by name.
func SeedDemoCourses(db *gorm.DB) {
	courses := []models.Course{
		{
			Name:        "Go for Backend Developers",
			Teacher:     "Asha Menon",
			PricingType: "paid",
			Price:       models.Price{Original: 1999, Sale: 499},
			Overview:    "HTTP services, databases and deployment with Go.",
			CourseType:  "top",
			Lectures: []models.Lecture{
				{
					Title: "Getting started",
					Chapters: []models.Chapter{
						{Name: "Installing the toolchain", Duration: models.Duration{Minutes: 12}},
						{Name: "Your first server", Duration: models.Duration{Minutes: 25}},
					},
				},
				{
					Title: "Working with Postgres",
					Chapters: []models.Chapter{
						{Name: "Schema design", Duration: models.Duration{Hours: 1, Minutes: 5}},
					},
				},
			},
		},
		{
			Name:        "Introduction to Web Development",
			Teacher:     "Ravi Kumar",
			PricingType: "free",
			Overview:    "HTML, CSS and the basics of the web, free for everyone.",
			CourseType:  "regular",
			Lectures: []models.Lecture{
				{
					Title: "The web platform",
					Chapters: []models.Chapter{
						{Name: "How browsers work", Duration: models.Duration{Minutes: 18}},
					},
				},
			},
		},
	}

	for _, course := range courses {
		var existing models.Course
		if err := db.Where("name = ?", course.Name).First(&existing).Error; err != nil {
			course.ComputeDerived()
			db.Create(&course)
		}
	}
}
