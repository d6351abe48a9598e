package controllers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"learnsphere/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// makeImageAbsolute turns a stored "/uploads/..." path into a URL the client
// can fetch, leaving already-absolute URLs alone.
func makeImageAbsolute(image string, c *gin.Context) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := scheme + "://" + c.Request.Host

	if strings.HasPrefix(image, "/") {
		return host + image
	}
	if strings.HasPrefix(image, "uploads/") {
		return host + "/" + image
	}
	return host + "/uploads/" + image
}

func withAbsoluteImages(courses []models.Course, c *gin.Context) []models.Course {
	for i := range courses {
		courses[i].Image = makeImageAbsolute(courses[i].Image, c)
	}
	return courses
}

// GetPublicCourses handles GET /api/course/public with the storefront
// filters: home=true or type=top|regular, optional limit (home defaults to 8).
func GetPublicCourses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		home := c.Query("home")
		courseType := c.DefaultQuery("type", "all")
		limit := c.Query("limit")

		query := db.Model(&models.Course{}).Order("created_at DESC")

		if home == "true" || courseType == "top" {
			query = query.Where("course_type = ?", "top")
		} else if courseType == "regular" {
			query = query.Where("course_type = ?", "regular")
		}

		if home == "true" {
			n := 8
			if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
				n = parsed
			}
			query = query.Limit(n)
		} else if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			query = query.Limit(parsed)
		}

		var courses []models.Course
		if err := query.Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "items": withAbsoluteImages(courses, c)})
	}
}

func GetCourses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var courses []models.Course
		if err := db.Order("created_at DESC").Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "courses": withAbsoluteImages(courses, c)})
	}
}

func GetCourseByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var course models.Course
		if err := db.First(&course, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}

		course.Image = makeImageAbsolute(course.Image, c)
		c.JSON(http.StatusOK, gin.H{"success": true, "course": course})
	}
}

// parseJSONField decodes a JSON-encoded form field into dst. The admin form
// sends structured fields as strings; bad or missing JSON leaves dst at its
// zero value instead of failing the whole upload.
func parseJSONField(raw string, dst interface{}) {
	if raw == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), dst)
}

// CreateCourse handles POST /api/course/ (multipart). An uploaded image is
// stored under uploadDir and referenced by relative path so static serving
// stays consistent.
func CreateCourse(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		imagePath := c.PostForm("image")
		if file, err := c.FormFile("image"); err == nil {
			unique := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
			ext := filepath.Ext(file.Filename)
			filename := fmt.Sprintf("course-%s%s", unique, ext)

			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
				return
			}
			imagePath = "/uploads/" + filename
		}

		var price models.Price
		parseJSONField(c.PostForm("price"), &price)

		var lectures []models.Lecture
		parseJSONField(c.PostForm("lectures"), &lectures)

		course := models.Course{
			Name:        c.PostForm("name"),
			Teacher:     c.PostForm("teacher"),
			Image:       imagePath,
			PricingType: c.DefaultPostForm("pricingType", "free"),
			Price:       price,
			Overview:    c.PostForm("overview"),
			CourseType:  c.DefaultPostForm("courseType", "regular"),
			Category:    c.PostForm("category"),
			CreatedBy:   c.PostForm("createdBy"),
			Lectures:    lectures,
		}
		if course.Overview == "" {
			course.Overview = c.PostForm("description")
		}

		course.ComputeDerived()

		if err := db.Create(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
			return
		}

		course.Image = makeImageAbsolute(course.Image, c)
		c.JSON(http.StatusCreated, gin.H{"success": true, "course": course})
	}
}

// DeleteCourse handles DELETE /api/course/:id, removing the local image file
// along with the record. File removal failures are ignored.
func DeleteCourse(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var course models.Course
		if err := db.First(&course, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}

		// Stored as "/uploads/<file>"; the file itself lives under uploadDir.
		if course.Image != "" && !strings.HasPrefix(course.Image, "http") {
			_ = os.Remove(filepath.Join(uploadDir, filepath.Base(course.Image)))
		}

		if err := db.Delete(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course Deleted"})
	}
}
