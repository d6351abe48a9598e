package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func nowPtr() *time.Time {
	now := time.Now()
	return &now
}

func TestComputeDerived(t *testing.T) {
	course := Course{
		Lectures: []Lecture{
			{
				Duration: Duration{Hours: 1},
				Chapters: []Chapter{
					{Name: "Intro", Duration: Duration{Minutes: 30}},
					{Name: "Setup", TotalMinutes: 45},
				},
			},
			{Title: "Advanced", Duration: Duration{Minutes: 15}},
		},
	}

	course.ComputeDerived()

	assert.Equal(t, "Untitled lecture", course.Lectures[0].Title)
	assert.Equal(t, 30, course.Lectures[0].Chapters[0].TotalMinutes)
	assert.Equal(t, 45, course.Lectures[0].Chapters[1].TotalMinutes)
	assert.Equal(t, 135, course.Lectures[0].TotalMinutes)
	assert.Equal(t, 15, course.Lectures[1].TotalMinutes)
	assert.Equal(t, Duration{Hours: 2, Minutes: 30}, course.TotalDuration)
	assert.Equal(t, 2, course.TotalLectures)
}

func TestComputeDerived_Empty(t *testing.T) {
	var course Course
	course.ComputeDerived()

	assert.Equal(t, Duration{}, course.TotalDuration)
	assert.Zero(t, course.TotalLectures)
}

func TestEffectivePrice(t *testing.T) {
	free := Course{PricingType: "free", Price: Price{Original: 999}}
	assert.Zero(t, free.EffectivePrice())

	sale := Course{PricingType: "paid", Price: Price{Original: 1999, Sale: 499}}
	assert.Equal(t, float64(499), sale.EffectivePrice())

	full := Course{PricingType: "paid", Price: Price{Original: 1999}}
	assert.Equal(t, float64(1999), full.EffectivePrice())
}

func TestBookingEnrolled(t *testing.T) {
	assert.False(t, (&Booking{PaymentStatus: PaymentStatusUnpaid, OrderStatus: OrderStatusPending}).Enrolled())
	assert.True(t, (&Booking{PaymentStatus: PaymentStatusPaid}).Enrolled())
	assert.True(t, (&Booking{OrderStatus: OrderStatusConfirmed}).Enrolled())

	now := nowPtr()
	assert.True(t, (&Booking{PaidAt: now}).Enrolled())
}
