package validator

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("room_type", validRoomType)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string)
	for _, e := range verrs {
		out[e.Field()] = e.Tag()
	}
	return out
}

// ParseDate parses a calendar date and returns it at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}

func validRoomType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "Single", "Double", "Twin", "Suite", "Family", "Deluxe":
		return true
	}
	return false
}
