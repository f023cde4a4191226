package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/ExamPortal/internal/model"
)

// RegisterValidators adds the project's binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("response_status", func(fl validator.FieldLevel) bool {
		return model.ResponseStatus(fl.Field().String()).Valid()
	})
}
