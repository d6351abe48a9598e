package controllers

import (
	"net/http"
	"strconv"

	"learnsphere/middlewares"
	"learnsphere/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCompletedChapters handles GET /api/progress/completed?courseId=.
// No progress row yet means an empty list, not an error.
func GetCompletedChapters(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewares.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		courseID, err := strconv.ParseUint(c.Query("courseId"), 10, 64)
		if err != nil || courseID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "courseId required"})
			return
		}

		var progress models.Progress
		if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "completedChapters": []string{}})
			return
		}

		if progress.CompletedChapters == nil {
			progress.CompletedChapters = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "completedChapters": progress.CompletedChapters})
	}
}

// MarkChapter handles POST /api/progress/mark: idempotent add or remove of a
// chapter id on the (user, course) progress row, creating it on first use.
func MarkChapter(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middlewares.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		var req struct {
			CourseID  uint   `json:"courseId"`
			ChapterID string `json:"chapterId"`
			Completed bool   `json:"completed"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == 0 || req.ChapterID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "courseId and chapterId required"})
			return
		}

		var progress models.Progress
		err := db.Where("user_id = ? AND course_id = ?", userID, req.CourseID).First(&progress).Error
		if err != nil {
			progress = models.Progress{
				UserID:            userID,
				CourseID:          req.CourseID,
				CompletedChapters: []string{},
			}
		}

		if req.Completed {
			found := false
			for _, id := range progress.CompletedChapters {
				if id == req.ChapterID {
					found = true
					break
				}
			}
			if !found {
				progress.CompletedChapters = append(progress.CompletedChapters, req.ChapterID)
			}
		} else {
			kept := progress.CompletedChapters[:0]
			for _, id := range progress.CompletedChapters {
				if id != req.ChapterID {
					kept = append(kept, id)
				}
			}
			progress.CompletedChapters = kept
		}

		if err := db.Save(&progress).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "completedChapters": progress.CompletedChapters})
	}
}
