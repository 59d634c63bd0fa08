package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

var testSchema = Schema{
	{Name: "email", Rules: []Rule{
		Required("email"),
		NotEmpty("email"),
		Tag("email", "email must be an accurate email format"),
	}},
	{Name: "image_url", Rules: []Rule{
		Required("Image URL"),
		NotEmpty("Image URL"),
		WebURL("Wrong URL format"),
	}},
}

func TestOf(t *testing.T) {
	assert.Equal(t, Field{}, Of(nil))
	assert.Equal(t, Field{Present: true, Value: ""}, Of(strPtr("")))
	assert.Equal(t, Field{Present: true, Value: "x"}, Of(strPtr("x")))
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]Field
		want   []string
	}{
		{
			name: "all_valid",
			values: map[string]Field{
				"email":     Of(strPtr("luki@example.com")),
				"image_url": Of(strPtr("https://picsum.photos/20/20")),
			},
			want: nil,
		},
		{
			name:   "all_absent_reports_only_presence_in_declared_order",
			values: map[string]Field{},
			want:   []string{"email cannot be omitted", "Image URL cannot be omitted"},
		},
		{
			name: "empty_reports_empty_and_format",
			values: map[string]Field{
				"email":     Of(strPtr("")),
				"image_url": Of(strPtr("https://picsum.photos/20/20")),
			},
			want: []string{"email cannot be an empty string", "email must be an accurate email format"},
		},
		{
			name: "blank_counts_as_empty",
			values: map[string]Field{
				"email":     Of(strPtr("luki@example.com")),
				"image_url": Of(strPtr("   ")),
			},
			want: []string{"Image URL cannot be an empty string", "Wrong URL format"},
		},
		{
			name: "format_only",
			values: map[string]Field{
				"email":     Of(strPtr("wrongformatemail")),
				"image_url": Of(strPtr("not a url")),
			},
			want: []string{"email must be an accurate email format", "Wrong URL format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testSchema.Validate(tt.values))
		})
	}
}

func TestTag_LengthRange(t *testing.T) {
	rule := Tag("min=6,max=10", "password must be 6-10 character")

	assert.False(t, rule.Valid(Of(strPtr("123"))))
	assert.True(t, rule.Valid(Of(strPtr("123456"))))
	assert.True(t, rule.Valid(Of(strPtr("1234567890"))))
	assert.False(t, rule.Valid(Of(strPtr("12345678901"))))
	assert.True(t, rule.Valid(Of(nil)), "absent fields are left to Required")
}

func TestWebURL(t *testing.T) {
	rule := WebURL("Wrong URL format")

	tests := []struct {
		value string
		want  bool
	}{
		{value: "https://picsum.photos/20/20", want: true},
		{value: "http://img.example.com/a.png?size=2", want: true},
		{value: "ftp://files.example.org/a.png", want: true},
		{value: "http://127.0.0.1:8080/a.png", want: true},
		{value: "javascript:alert(1)", want: false},
		{value: "data:image/png;base64,AAAA", want: false},
		{value: "mailto:luki@example.com", want: false},
		{value: "http://localhost", want: false},
		{value: "http://example.c0m", want: false},
		{value: "https://", want: false},
		{value: "//example.com/a.png", want: false},
		{value: "picsum photos", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Valid(Field{Present: true, Value: tt.value}))
		})
	}

	assert.True(t, rule.Valid(Field{}), "absent fields are left to Required")
}
