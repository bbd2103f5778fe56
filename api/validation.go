package api

import (
	"errors"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding rules used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("dccresult", func(fl validator.FieldLevel) bool {
		return domain.DccResult(fl.Field().String()).Valid()
	})
}
