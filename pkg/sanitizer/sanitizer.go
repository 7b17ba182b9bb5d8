package sanitizer

import (
	"strings"

	"staynest/pkg/model"
)

func SanitizeRegister(req *model.RegisterRequest) {
	req.Name = NormalizeName(req.Name)
	req.Email = NormalizeEmail(req.Email)
}

func SanitizeLogin(req *model.LoginRequest) {
	req.Email = NormalizeEmail(req.Email)
}

// SanitizePlace leaves line breaks inside description and extraInfo alone.
func SanitizePlace(req *model.PlaceRequest) {
	req.ID = strings.TrimSpace(req.ID)
	req.Title = TrimAndNormalize(req.Title)
	req.Address = TrimAndNormalize(req.Address)
	req.AddPhotos = NormalizePhotos(req.AddPhotos)
	req.Perks = NormalizePerks(req.Perks)
	req.Description = strings.TrimSpace(req.Description)
	req.ExtraInfo = strings.TrimSpace(req.ExtraInfo)
}

func SanitizeBooking(req *model.BookingRequest, defaultRegion string) {
	req.Place = strings.TrimSpace(req.Place)
	req.Name = NormalizeName(req.Name)
	req.CheckIn = strings.TrimSpace(req.CheckIn)
	req.CheckOut = strings.TrimSpace(req.CheckOut)
	req.Phone = NormalizePhone(req.Phone, defaultRegion)
}
