// Package note defines the note entity shared by the dashboard, the API client
// and the reference server.
package note

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxTitleLength is the maximum number of characters accepted in a title.
	MaxTitleLength = 200
	// MaxBodyBytes is the maximum size of a note body.
	MaxBodyBytes = 64 * 1024
)

// ErrInvalidForm indicates the editor form failed local validation.
var ErrInvalidForm = errors.New("invalid note form")

// ID is an opaque note identifier assigned by the remote store.
// The client never generates one.
type ID string

// String returns the identifier as a string.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("note id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("note id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Note is a single user note.
type Note struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Form is the title/body payload produced by the editor.
type Form struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"maxbytes"`
}

var formValidate *validator.Validate

func init() {
	formValidate = validator.New()
	_ = formValidate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxBodyBytes
	})
}

// Normalized returns a copy of the form with the title trimmed.
func (f Form) Normalized() Form {
	f.Title = strings.TrimSpace(f.Title)
	return f
}

// Validate checks the normalized form. Errors wrap ErrInvalidForm.
func (f Form) Validate() error {
	n := f.Normalized()
	if err := formValidate.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidForm, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Title" && fe.Tag() == "required":
		return "title cannot be empty"
	case fe.Field() == "Title" && fe.Tag() == "max":
		return fmt.Sprintf("title too long (max %d characters)", MaxTitleLength)
	case fe.Field() == "Body":
		return fmt.Sprintf("body too large (max %d bytes)", MaxBodyBytes)
	default:
		return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}

// FormOf returns the form that would reproduce n.
func FormOf(n Note) Form {
	return Form{Title: n.Title, Body: n.Body}
}
