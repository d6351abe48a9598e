package models

import "time"

// Payment / order status values. A booking moves through them exactly once:
// Unpaid/Pending -> Paid/Confirmed. Free courses start out Paid/Confirmed.
const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"

	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Human-readable identifier ("BK-<uuid>"), also echoed into the checkout
	// session metadata so a booking can be recovered when the session id write
	// never made it to the row.
	BookingID string `gorm:"size:64;uniqueIndex;not null" json:"bookingId"`

	UserID      uint   `gorm:"uniqueIndex:idx_booking_user_course;not null" json:"userId"`
	CourseID    uint   `gorm:"uniqueIndex:idx_booking_user_course;not null" json:"courseId"`
	StudentName string `gorm:"size:200" json:"studentName"`

	// Snapshot of the course at booking time; the price is never recomputed.
	CourseName  string  `gorm:"size:300;not null" json:"courseName"`
	TeacherName string  `gorm:"size:200" json:"teacherName"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`

	PaymentMethod string `gorm:"size:50" json:"paymentMethod"`
	PaymentStatus string `gorm:"type:varchar(20);default:'Unpaid';index" json:"paymentStatus"`
	OrderStatus   string `gorm:"type:varchar(20);default:'Pending'" json:"orderStatus"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	SessionID       string     `gorm:"size:200;index" json:"sessionId,omitempty"`
	PaymentIntentID string     `gorm:"size:200" json:"paymentIntentId,omitempty"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Enrolled reports whether the booking counts as a completed purchase. Any one
// signal suffices; the OR is deliberate so a partially applied update still
// reads as enrolled.
func (b *Booking) Enrolled() bool {
	return b.PaymentStatus == PaymentStatusPaid ||
		b.OrderStatus == OrderStatusConfirmed ||
		b.PaidAt != nil
}
