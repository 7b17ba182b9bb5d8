package validator

import (
	"staynest/pkg/logger"
	"staynest/pkg/model"
	"staynest/pkg/validation"
)

type BookingValidator struct {
	validate *validation.Validator
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Info("Booking validator initialized successfully")
	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	return v.validate.Struct(req)
}
