package validator

import (
	"staynest/pkg/logger"
	"staynest/pkg/model"
	"staynest/pkg/validation"
)

type PlaceValidator struct {
	validate *validation.Validator
	logger   *logger.Logger
}

func NewPlaceValidator(log *logger.Logger) *PlaceValidator {
	log.Info("Place validator initialized successfully")
	return &PlaceValidator{
		validate: validation.New(),
		logger:   log,
	}
}

// Validate checks presence and lengths only; numbers are stored as given.
func (v *PlaceValidator) Validate(req *model.PlaceRequest) error {
	return v.validate.Struct(req)
}

// ValidateUpdate additionally requires the id of the place being edited.
func (v *PlaceValidator) ValidateUpdate(req *model.PlaceRequest) error {
	if req.ID == "" {
		return validation.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return v.validate.Struct(req)
}
