package interview

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("futuretime", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.After(time.Now())
	})
	return v
}

// ValidationErrors maps json field names to human readable messages. All
// checks run locally before any network call.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for field, msg := range e {
		msgs = append(msgs, field+": "+msg)
	}
	return strings.Join(msgs, "; ")
}

// Validate checks an interview before it is sent upstream and returns one
// message per offending field.
func Validate(iv Interview) error {
	err := validate.Struct(iv)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "futuretime":
		return "must be in the future"
	case "oneof":
		return "must be one of " + strings.Join(types, ", ")
	case "required_if":
		switch fe.Field() {
		case "meeting_link":
			return "a meeting link is required for video interviews"
		case "location":
			return "a location is required for in-person interviews"
		}
		return "this field is required"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "min", "max":
		return "duration must be between 5 and 480 minutes"
	}
	return "is invalid"
}
