package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lukirizki/articlehub/internal/apperr"
	"github.com/lukirizki/articlehub/internal/security"
	"github.com/lukirizki/articlehub/internal/validation"
)

type User struct {
	ID           string    `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("user not found")

// Pointer fields tell an omitted key apart from an empty string.
type RegisterRequest struct {
	Fullname *string `json:"fullname" form:"fullname"`
	Email    *string `json:"email" form:"email"`
	Password *string `json:"password" form:"password"`
}

type LoginRequest struct {
	Email    *string `json:"email" form:"email"`
	Password *string `json:"password" form:"password"`
}

type RegisterResponse struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

var registerSchema = validation.Schema{
	{Name: "fullname", Rules: []validation.Rule{
		validation.Required("name"),
		validation.NotEmpty("name"),
	}},
	{Name: "email", Rules: []validation.Rule{
		validation.Required("email"),
		validation.NotEmpty("email"),
		validation.Tag("email", "email must be an accurate email format"),
	}},
	{Name: "password", Rules: []validation.Rule{
		validation.Required("password"),
		validation.NotEmpty("password"),
		validation.Tag("min=6,max=10", "password must be 6-10 character"),
	}},
}

func (r RegisterRequest) Validate() error {
	messages := registerSchema.Validate(map[string]validation.Field{
		"fullname": validation.Of(r.Fullname),
		"email":    validation.Of(r.Email),
		"password": validation.Of(r.Password),
	})

	if len(messages) > 0 {
		return apperr.Validation(messages)
	}

	return nil
}

// NewFromRegisterRequest validates the payload and builds a user with a fresh
// id and a hashed password, ready to be inserted.
func NewFromRegisterRequest(req RegisterRequest) (User, error) {
	err := req.Validate()
	if err != nil {
		return User{}, err
	}

	hash, err := security.HashPassword(*req.Password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		Fullname:     *req.Fullname,
		Email:        *req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u User) RegisterResponse() RegisterResponse {
	return RegisterResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Email:    u.Email,
	}
}
