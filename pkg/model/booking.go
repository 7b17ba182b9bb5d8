package model

import (
	"time"
)

type Booking struct {
	ID             string    `json:"_id,omitempty" bson:"_id,omitempty"`
	PlaceID        string    `json:"place" bson:"place"`
	UserID         string    `json:"user" bson:"user"`
	Name           string    `json:"name" bson:"name"`
	CheckIn        time.Time `json:"checkIn" bson:"checkIn"`
	CheckOut       time.Time `json:"checkOut" bson:"checkOut"`
	Phone          string    `json:"phone" bson:"phone"`
	Price          float64   `json:"price" bson:"price"`
	NumberOfGuests int       `json:"numberOfGuests" bson:"numberOfGuests"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// PopulatedBooking is a Booking with its place reference expanded. Place is
// nil when the referenced place no longer exists.
type PopulatedBooking struct {
	*Booking
	Place *Place `json:"place"`
}

// BookingRequest carries dates as strings so both RFC 3339 timestamps and
// plain YYYY-MM-DD values from date inputs are accepted.
type BookingRequest struct {
	Place          string  `json:"place" validate:"required,mongodb"`
	Name           string  `json:"name" validate:"required,max=100"`
	CheckIn        string  `json:"checkIn" validate:"required"`
	CheckOut       string  `json:"checkOut" validate:"required"`
	Phone          string  `json:"phone" validate:"required,max=32"`
	Price          float64 `json:"price"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"required,min=1"`
}
