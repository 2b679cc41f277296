package notification

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_Normalize(t *testing.T) {
	c := Compose{Title: "  Sale ", Message: "\t50% off\n"}.Normalize()

	assert.Equal(t, "Sale", c.Title)
	assert.Equal(t, "50% off", c.Message)
	assert.Equal(t, Broadcast, c.TargetUser)
	assert.Equal(t, TypeInfo, c.Type)
}

func TestCompose_Validate(t *testing.T) {
	valid := Compose{Title: "Sale", Message: "50% off", TargetUser: "u1", Type: TypeWarning}

	tests := []struct {
		name      string
		mutate    func(c *Compose)
		wantField string
		wantMsg   string
	}{
		{name: "valid"},
		{name: "defaults fill target and type", mutate: func(c *Compose) { c.TargetUser, c.Type = "", "" }},
		{name: "blank title", mutate: func(c *Compose) { c.Title = "   " }, wantField: "title", wantMsg: "is required"},
		{name: "missing message", mutate: func(c *Compose) { c.Message = "" }, wantField: "message", wantMsg: "is required"},
		{name: "long title", mutate: func(c *Compose) { c.Title = strings.Repeat("á", 201) }, wantField: "title", wantMsg: "must be at most 200 characters"},
		{name: "order type not allowed", mutate: func(c *Compose) { c.Type = TypeOrder }, wantField: "type", wantMsg: "must be one of: info warning success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			if tt.mutate != nil {
				tt.mutate(&c)
			}

			err := c.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "title: is required", (&ValidationError{Field: "title", Message: "is required"}).Error())
	assert.Equal(t, "nothing selected", (&ValidationError{Message: "nothing selected"}).Error())
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	err := validate.Struct(Compose{Title: "Sale", Message: "50% off", Type: TypeInfo})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "targetUser", verrs[0].Field())
}
