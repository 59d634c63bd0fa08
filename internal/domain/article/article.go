package article

import (
	"errors"
	"time"

	"github.com/lukirizki/articlehub/internal/apperr"
	"github.com/lukirizki/articlehub/internal/validation"
)

type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("article not found")

// WriteRequest is the full payload for both create and update.
// Pointer fields tell an omitted key apart from an empty string.
type WriteRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	ImageURL    *string `json:"image_url" form:"image_url"`
}

var writeSchema = validation.Schema{
	{Name: "title", Rules: []validation.Rule{
		validation.Required("Title"),
		validation.NotEmpty("Title"),
	}},
	{Name: "description", Rules: []validation.Rule{
		validation.Required("Description"),
		validation.NotEmpty("Description"),
	}},
	{Name: "image_url", Rules: []validation.Rule{
		validation.Required("Image URL"),
		validation.NotEmpty("Image URL"),
		validation.WebURL("Wrong URL format"),
	}},
}

func (r WriteRequest) Validate() error {
	messages := writeSchema.Validate(map[string]validation.Field{
		"title":       validation.Of(r.Title),
		"description": validation.Of(r.Description),
		"image_url":   validation.Of(r.ImageURL),
	})

	if len(messages) > 0 {
		return apperr.Validation(messages)
	}

	return nil
}

// Fields returns the dereferenced values. Only call after Validate succeeded.
func (r WriteRequest) Fields() (title, description, imageURL string) {
	return *r.Title, *r.Description, *r.ImageURL
}
