package validator

import (
	"errors"
	"fmt"

	"staynest/pkg/logger"
	"staynest/pkg/model"
	"staynest/pkg/validation"
)

// bcrypt rejects longer input; the struct tag limit counts runes, not bytes.
const maxPasswordBytes = 72

type UserValidator struct {
	validate *validation.Validator
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	log.Info("User validator initialized successfully")
	return &UserValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *UserValidator) ValidateRegister(req *model.RegisterRequest) error {
	err := v.validate.Struct(req)
	if len(req.Password) <= maxPasswordBytes {
		return err
	}

	var verrs validation.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return err
	}
	for _, e := range verrs {
		if e.Field == "password" {
			return verrs
		}
	}
	return append(verrs, validation.ValidationError{
		Field:   "password",
		Message: fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes),
	})
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.validate.Struct(req)
}
