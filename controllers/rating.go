package controllers

import (
	"math"
	"net/http"
	"strconv"

	"learnsphere/middlewares"
	"learnsphere/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RateCourse handles POST /api/ratings/rate: one rating per (user, course),
// rating again overwrites and un-deletes. Course aggregates are recomputed
// after every write.
func RateCourse(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewares.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		var req struct {
			CourseID uint   `json:"courseId"`
			Rating   int    `json:"rating"`
			Comment  string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == 0 || req.Rating == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "courseId and rating are required"})
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "rating must be between 1 and 5"})
			return
		}

		var existing models.Rating
		err := db.Where("user_id = ? AND course_id = ?", userID, req.CourseID).First(&existing).Error
		if err == nil {
			existing.Rating = req.Rating
			if req.Comment != "" {
				existing.Comment = req.Comment
			}
			existing.IsDeleted = false
			err = db.Save(&existing).Error
		} else {
			err = db.Create(&models.Rating{
				UserID:   userID,
				CourseID: req.CourseID,
				Rating:   req.Rating,
				Comment:  req.Comment,
			}).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		avgRating, totalRatings, updateErr := UpdateCourseRatingStats(db, req.CourseID)
		if updateErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Rating saved successfully",
			"avgRating":    avgRating,
			"totalRatings": totalRatings,
		})
	}
}

// UpdateCourseRatingStats recomputes a course's average (one decimal), total
// and 1..5 distribution over its non-deleted ratings.
func UpdateCourseRatingStats(db *gorm.DB, courseID uint) (float64, int64, error) {
	var ratings []models.Rating
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&ratings).Error; err != nil {
		return 0, 0, err
	}

	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		distribution[strconv.Itoa(r.Rating)]++
	}

	total := int64(len(ratings))
	avg := 0.0
	if total > 0 {
		avg = math.Round(float64(sum)/float64(total)*10) / 10
	}

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		// Ratings can outlive a removed course; the caller still gets the
		// recomputed numbers.
		return avg, total, nil
	}

	course.AvgRating = avg
	course.TotalRatings = total
	course.RatingDistribution = distribution
	if err := db.Save(&course).Error; err != nil {
		return 0, 0, err
	}

	return avg, total, nil
}
