package validation

import (
	"errors"
	"strings"
	"testing"

	"simplepost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPostCreate_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		content     string
		expectError bool
	}{
		{"Minimal valid", "T", "0123456789", false},
		{"Content of 9 rejected", "T", "012345678", true},
		{"Content of 10 accepted", "T", strings.Repeat("c", 10), false},
		{"Empty title rejected", "", "0123456789", true},
		{"Title of 256 accepted", strings.Repeat("t", 256), "0123456789", false},
		{"Title of 257 rejected", strings.Repeat("t", 257), "0123456789", true},
		{"Length counts characters, not bytes", strings.Repeat("ж", 256), "ёёёёёёёёёё", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PostCreate(models.PostCreate{Title: tt.title, Content: tt.content})
			if tt.expectError {
				require.Error(t, err)
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, models.CodeValidation, appErr.Code)
				assert.NotEmpty(t, appErr.Fields)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostCreate_ReportsJSONFieldNames(t *testing.T) {
	err := PostCreate(models.PostCreate{})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))

	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "content"}, names)
	assert.Contains(t, appErr.Message, "title: field required")
}

func TestPostUpdate(t *testing.T) {
	tests := []struct {
		name        string
		in          models.PostUpdate
		expectError bool
	}{
		{"No fields", models.PostUpdate{}, false},
		{"Title only", models.PostUpdate{Title: strPtr("T2")}, false},
		{"Content only", models.PostUpdate{Content: strPtr("new content here")}, false},
		{"Empty title present", models.PostUpdate{Title: strPtr("")}, true},
		{"Short content present", models.PostUpdate{Content: strPtr("short")}, true},
		{"Long title present", models.PostUpdate{Title: strPtr(strings.Repeat("t", 257))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PostUpdate(tt.in)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
