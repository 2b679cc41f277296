package notification

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Compose is the payload of an admin "send notification" action.
type Compose struct {
	Title      string `json:"title" validate:"required,max=200"`
	Message    string `json:"message" validate:"required,max=2000"`
	TargetUser string `json:"targetUser" validate:"required"`
	Type       Type   `json:"type" validate:"required,oneof=info warning success"`
}

// ValidationError is returned for input rejected before it reaches the
// backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var validate = newValidator()

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Normalize trims the free-text fields and fills the defaults: broadcast
// target and info type.
func (c Compose) Normalize() Compose {
	c.Title = strings.TrimSpace(c.Title)
	c.Message = strings.TrimSpace(c.Message)
	c.TargetUser = strings.TrimSpace(c.TargetUser)
	if c.TargetUser == "" {
		c.TargetUser = Broadcast
	}
	if c.Type == "" {
		c.Type = TypeInfo
	}
	return c
}

// Validate checks c after normalization. The first failing field is reported
// as a *ValidationError.
func (c Compose) Validate() error {
	err := validate.Struct(c.Normalize())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "is required"}
	case "max":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %s characters", fe.Param())}
	case "oneof":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %s", fe.Param())}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}
