package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"learnsphere/middlewares"
	"learnsphere/models"
	"learnsphere/payments"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const checkoutCurrency = "inr"

// BookingController owns every write to booking payment state. The gateway
// and frontend URL come in at construction so nothing reads the environment
// at handler time.
type BookingController struct {
	DB          *gorm.DB
	Gateway     payments.Gateway
	FrontendURL string
	Log         *zap.Logger
}

func NewBookingController(db *gorm.DB, gateway payments.Gateway, frontendURL string, log *zap.Logger) *BookingController {
	return &BookingController{DB: db, Gateway: gateway, FrontendURL: frontendURL, Log: log}
}

// flexNumber accepts a JSON number or a numeric string ("499"). A value that
// does not parse to a finite number stays invalid rather than failing the
// whole bind, so the handler can answer with its own message.
type flexNumber struct {
	Value float64
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

type createBookingRequest struct {
	CourseID    uint       `json:"courseId"`
	CourseName  string     `json:"courseName"`
	TeacherName string     `json:"teacherName"`
	Price       flexNumber `json:"price"`
	Notes       string     `json:"notes"`
	Email       string     `json:"email"`
	StudentName string     `json:"studentName"`
}

func genBookingID() string {
	return "BK-" + uuid.NewString()
}

// resolveFrontendBase picks where to send the customer back after checkout:
// the configured frontend URL, else the request's Origin, else its Host.
func (bc *BookingController) resolveFrontendBase(c *gin.Context) string {
	if bc.FrontendURL != "" {
		return strings.TrimSuffix(bc.FrontendURL, "/")
	}
	if origin := c.GetHeader("Origin"); origin != "" {
		return strings.TrimSuffix(origin, "/")
	}
	if host := c.Request.Host; host != "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		return scheme + "://" + host
	}
	return ""
}

// CreateBooking handles POST /api/booking/create. Idempotent per (user,
// course): an existing booking is returned, never duplicated.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.CourseID == 0 || req.CourseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "courseId and courseName required"})
		return
	}
	if !req.Price.Valid || req.Price.Value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price must be a valid number"})
		return
	}
	price := req.Price.Value

	var existing models.Booking
	if err := bc.DB.Where("user_id = ? AND course_id = ?", userID, req.CourseID).First(&existing).Error; err == nil {
		message := "Booking exists, payment pending"
		if existing.Enrolled() {
			message = "Booking already exists and confirmed"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "booking": existing})
		return
	}

	studentName := strings.TrimSpace(req.StudentName)
	if studentName == "" {
		studentName = strings.TrimSpace(req.Email)
	}
	if studentName == "" {
		studentName = fmt.Sprintf("User-%d", userID)
	}

	booking := models.Booking{
		BookingID:     genBookingID(),
		UserID:        userID,
		CourseID:      req.CourseID,
		StudentName:   studentName,
		CourseName:    req.CourseName,
		TeacherName:   req.TeacherName,
		Price:         price,
		PaymentMethod: "Online",
		PaymentStatus: models.PaymentStatusUnpaid,
		OrderStatus:   models.OrderStatusPending,
		Notes:         req.Notes,
	}

	// Free course: confirm immediately, no gateway round trip.
	if price == 0 {
		now := time.Now()
		booking.PaymentStatus = models.PaymentStatusPaid
		booking.OrderStatus = models.OrderStatusConfirmed
		booking.PaidAt = &now

		if err := bc.DB.Create(&booking).Error; err != nil {
			if bc.returnExistingOnConflict(c, err, userID, req.CourseID) {
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create booking record"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking, "checkoutUrl": nil})
		return
	}

	base := bc.resolveFrontendBase(c)
	if base == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Frontend URL not determined. Set FRONTEND_URL or send an Origin header."})
		return
	}

	session, err := bc.Gateway.CreateCheckoutSession(c.Request.Context(), payments.CreateSessionParams{
		Amount:        int64(math.Round(price * 100)),
		Currency:      checkoutCurrency,
		ProductName:   req.CourseName,
		CustomerEmail: req.Email,
		SuccessURL:    base + "/booking/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     base + "/booking/cancel",
		Metadata: map[string]string{
			"bookingId":   booking.BookingID,
			"courseId":    strconv.FormatUint(uint64(req.CourseID), 10),
			"userId":      strconv.FormatUint(uint64(userID), 10),
			"studentName": studentName,
		},
	})
	if err != nil {
		bc.Log.Error("checkout session create failed",
			zap.Uint("userId", userID),
			zap.Uint("courseId", req.CourseID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment provider error: " + err.Error()})
		return
	}

	booking.SessionID = session.ID
	booking.PaymentIntentID = session.PaymentIntentID

	if err := bc.DB.Create(&booking).Error; err != nil {
		if bc.returnExistingOnConflict(c, err, userID, req.CourseID) {
			return
		}
		// The session exists at the provider with no booking row. Keep enough
		// context in the log to reconcile it by session id.
		bc.Log.Error("booking write failed after checkout session created",
			zap.String("sessionId", session.ID),
			zap.String("bookingId", booking.BookingID),
			zap.Uint("userId", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create booking record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking, "checkoutUrl": session.URL})
}

// returnExistingOnConflict resolves the create/create race: the unique index
// on (user_id, course_id) rejects the second insert, and the winner's row is
// what the caller gets.
func (bc *BookingController) returnExistingOnConflict(c *gin.Context, err error, userID, courseID uint) bool {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false
	}
	var existing models.Booking
	if dbErr := bc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; dbErr != nil {
		return false
	}
	message := "Booking exists, payment pending"
	if existing.Enrolled() {
		message = "Booking already exists and confirmed"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "booking": existing})
	return true
}

// ConfirmPayment handles GET /api/booking/confirm. The gateway is the source
// of truth for "paid"; the booking row is only promoted after the session
// reports it. Safe to call again on a confirmed booking.
func (bc *BookingController) ConfirmPayment(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "session_id is required"})
		return
	}

	session, err := bc.Gateway.RetrieveCheckoutSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, payments.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid session"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment provider error: " + err.Error()})
		return
	}
	if session.PaymentStatus != payments.SessionPaid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment not completed"})
		return
	}

	var booking models.Booking
	err = bc.DB.Where("session_id = ?", sessionID).First(&booking).Error
	if err != nil && session.Metadata["bookingId"] != "" {
		// The session id write may not have persisted before the customer came
		// back; the booking id echoed through metadata still finds the row.
		err = bc.DB.Where("booking_id = ?", session.Metadata["bookingId"]).First(&booking).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	if booking.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	if booking.Enrolled() {
		c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status":    models.PaymentStatusPaid,
		"order_status":      models.OrderStatusConfirmed,
		"payment_intent_id": session.PaymentIntentID,
		"paid_at":           now,
	}
	if err := bc.DB.Model(&booking).Updates(updates).Error; err != nil {
		bc.Log.Error("booking confirm write failed",
			zap.String("sessionId", sessionID),
			zap.String("bookingId", booking.BookingID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	booking.PaymentStatus = models.PaymentStatusPaid
	booking.OrderStatus = models.OrderStatusConfirmed
	booking.PaymentIntentID = session.PaymentIntentID
	booking.PaidAt = &now

	bc.Log.Info("booking confirmed",
		zap.String("bookingId", booking.BookingID),
		zap.String("sessionId", sessionID),
	)

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// CheckBooking handles GET /api/booking/check?courseId=.
func (bc *BookingController) CheckBooking(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "enrolled": false, "booking": nil})
		return
	}

	courseID, err := strconv.ParseUint(c.Query("courseId"), 10, 64)
	if err != nil || courseID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "courseId required"})
		return
	}

	var booking models.Booking
	if err := bc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC").First(&booking).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "enrolled": false, "booking": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "enrolled": booking.Enrolled(), "booking": booking})
}

// GetUserBookings handles GET /api/booking/my.
func (bc *BookingController) GetUserBookings(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var bookings []models.Booking
	if err := bc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "enrolled": len(bookings) > 0, "bookings": bookings})
}

// GetBookings handles GET /api/booking/.
func (bc *BookingController) GetBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := bc.DB.Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

type topCourseStat struct {
	CourseName string  `json:"courseName"`
	Count      int64   `json:"count"`
	Revenue    float64 `json:"revenue"`
}

// GetStats handles GET /api/booking/stats. Pure read; an empty store yields
// zero values, not an error.
func (bc *BookingController) GetStats(c *gin.Context) {
	var totalBookings int64
	if err := bc.DB.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var totalRevenue float64
	if err := bc.DB.Model(&models.Booking{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	var bookingsLast7Days int64
	if err := bc.DB.Model(&models.Booking{}).
		Where("created_at >= ?", sevenDaysAgo).
		Count(&bookingsLast7Days).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	topCourses := []topCourseStat{}
	if err := bc.DB.Model(&models.Booking{}).
		Select("course_name, COUNT(*) AS count, COALESCE(SUM(price), 0) AS revenue").
		Group("course_name").
		Order("count DESC").
		Limit(6).
		Scan(&topCourses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalBookings":     totalBookings,
			"totalRevenue":      totalRevenue,
			"bookingsLast7Days": bookingsLast7Days,
			"topCourses":        topCourses,
		},
	})
}
