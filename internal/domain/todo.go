package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTodoTitleLength       = 255
	MaxTodoDescriptionLength = 1000
)

// Common todo validation errors
var (
	ErrEmptyTodoID            = errors.New("todo ID cannot be empty")
	ErrEmptyTodoOwner         = errors.New("todo owner ID cannot be empty")
	ErrEmptyTodoTitle         = errors.New("todo title cannot be empty")
	ErrTodoTitleTooLong       = errors.New("todo title must be at most 255 characters long")
	ErrTodoDescriptionTooLong = errors.New("todo description must be at most 1000 characters long")
)

// Todo represents a single todo item owned by a user.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTodo creates a Todo owned by userID with a fresh ID and timestamps.
func NewTodo(userID uuid.UUID, title, description string, isCompleted bool) (*Todo, error) {
	now := time.Now().UTC()
	todo := &Todo{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		IsCompleted: isCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// Validate checks that the Todo carries valid data.
func (t *Todo) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTodoID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTodoOwner
	}
	if t.Title == "" {
		return ErrEmptyTodoTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTodoTitleLength {
		return ErrTodoTitleTooLong
	}
	if utf8.RuneCountInString(t.Description) > MaxTodoDescriptionLength {
		return ErrTodoDescriptionTooLong
	}
	return nil
}
