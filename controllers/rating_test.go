package controllers_test

import (
	"net/http"
	"testing"

	"learnsphere/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateBody(courseID uint, rating int, comment string) map[string]interface{} {
	return map[string]interface{}{
		"courseId": courseID,
		"rating":   rating,
		"comment":  comment,
	}
}

func (ts *testServer) createCourse(t *testing.T, name string) models.Course {
	t.Helper()
	course := models.Course{Name: name, PricingType: "free"}
	require.NoError(t, ts.db.Create(&course).Error)
	return course
}

func TestRateCourse_UpdatesAggregates(t *testing.T) {
	ts := newTestServer(t)
	course := ts.createCourse(t, "Go for Backend Developers")
	alice := ts.createUser(t, "alice@example.com", "user")
	bob := ts.createUser(t, "bob@example.com", "user")

	w := ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(course.ID, 5, "great"), authHeader(t, alice))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["avgRating"])
	assert.Equal(t, float64(1), body["totalRatings"])

	w = ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(course.ID, 2, ""), authHeader(t, bob))
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, 3.5, body["avgRating"])
	assert.Equal(t, float64(2), body["totalRatings"])

	var stored models.Course
	require.NoError(t, ts.db.First(&stored, course.ID).Error)
	assert.Equal(t, 3.5, stored.AvgRating)
	assert.Equal(t, int64(2), stored.TotalRatings)
	assert.Equal(t, 1, stored.RatingDistribution["5"])
	assert.Equal(t, 1, stored.RatingDistribution["2"])
}

func TestRateCourse_SecondRatingOverwrites(t *testing.T) {
	ts := newTestServer(t)
	course := ts.createCourse(t, "Go for Backend Developers")
	user := ts.createUser(t, "u1@example.com", "user")

	w := ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(course.ID, 5, "great"), authHeader(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(course.ID, 3, ""), authHeader(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["avgRating"])
	assert.Equal(t, float64(1), body["totalRatings"])

	var count int64
	ts.db.Model(&models.Rating{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The old comment survives when the update sends none.
	var stored models.Rating
	require.NoError(t, ts.db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&stored).Error)
	assert.Equal(t, "great", stored.Comment)
}

func TestRateCourse_Validation(t *testing.T) {
	ts := newTestServer(t)
	course := ts.createCourse(t, "Go for Backend Developers")
	user := ts.createUser(t, "u1@example.com", "user")

	for _, rating := range []int{0, 6, -1} {
		w := ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(course.ID, rating, ""), authHeader(t, user))
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
	}

	w := ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(0, 4, ""), authHeader(t, user))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/ratings/rate", rateBody(course.ID, 4, ""), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
