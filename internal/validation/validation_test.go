package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title   string `json:"title" validate:"required,notblank,min=3,max=100"`
	Content string `json:"content" validate:"required,notblank"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         sample
		wantFields map[string]string
	}{
		{
			name: "valid",
			in:   sample{Title: "Hello World", Content: "First post"},
		},
		{
			name: "title at lower bound",
			in:   sample{Title: "abc", Content: "x"},
		},
		{
			name: "title at upper bound",
			in:   sample{Title: strings.Repeat("a", 100), Content: "x"},
		},
		{
			name: "multibyte title counted in characters",
			in:   sample{Title: "日本語", Content: "x"},
		},
		{
			name:       "missing everything",
			in:         sample{},
			wantFields: map[string]string{"title": "title is required", "content": "content is required"},
		},
		{
			name:       "blank content",
			in:         sample{Title: "Hello", Content: "   \t"},
			wantFields: map[string]string{"content": "content is required"},
		},
		{
			name:       "title too short",
			in:         sample{Title: "ab", Content: "x"},
			wantFields: map[string]string{"title": "title must be at least 3 characters"},
		},
		{
			name:       "title too long",
			in:         sample{Title: strings.Repeat("a", 101), Content: "x"},
			wantFields: map[string]string{"title": "title must be at most 100 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *Error
			require.True(t, errors.As(err, &verr))
			got := make(map[string]string, len(verr.Fields))
			for _, f := range verr.Fields {
				got[f.Field] = f.Message
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: []FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "content", Message: "content is required"},
	}}
	assert.Equal(t, "validation failed: title is required; content is required", err.Error())
}
