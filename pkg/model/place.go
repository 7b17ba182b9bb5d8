package model

import "time"

type Place struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Owner       string    `json:"owner" bson:"owner"`
	Title       string    `json:"title" bson:"title"`
	Address     string    `json:"address" bson:"address"`
	Photos      []string  `json:"photos" bson:"photos"`
	Description string    `json:"description" bson:"description"`
	Perks       []string  `json:"perks" bson:"perks"`
	ExtraInfo   string    `json:"extraInfo" bson:"extraInfo"`
	CheckIn     int       `json:"checkIn" bson:"checkIn"`
	CheckOut    int       `json:"checkOut" bson:"checkOut"`
	MaxGuests   int       `json:"maxGuests" bson:"maxGuests"`
	Price       float64   `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// PlaceRequest is the body of POST and PUT /api/places. The field names are
// the ones the web client sends, which differ from the stored ones.
type PlaceRequest struct {
	ID           string   `json:"id,omitempty" validate:"omitempty,mongodb"`
	Title        string   `json:"title" validate:"required,max=200"`
	Address      string   `json:"address" validate:"required,max=300"`
	AddPhotos    []string `json:"addPhotos" validate:"omitempty,max=100,dive,required,max=2048"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Perks        []string `json:"perks" validate:"omitempty,max=50,dive,required,max=50"`
	ExtraInfo    string   `json:"extraInfo" validate:"omitempty,max=5000"`
	CheckInTime  int      `json:"checkInTime"`
	CheckOutTime int      `json:"checkOutTime"`
	MaxGuest     int      `json:"maxGuest"`
	Price        float64  `json:"price"`
}

// ApplyTo copies the editable fields onto p. Owner and ID are never touched.
func (r *PlaceRequest) ApplyTo(p *Place) {
	p.Title = r.Title
	p.Address = r.Address
	p.Photos = r.AddPhotos
	p.Description = r.Description
	p.Perks = r.Perks
	p.ExtraInfo = r.ExtraInfo
	p.CheckIn = r.CheckInTime
	p.CheckOut = r.CheckOutTime
	p.MaxGuests = r.MaxGuest
	p.Price = r.Price
}
