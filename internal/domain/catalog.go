package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Category groups job ads, job applications and skills.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// Skill is a named capability within a category. Names are unique per category.
type Skill struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"category_id"`
}

// City is a location referenced by accounts, job ads and job applications.
type City struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewCategory creates a Category with a fresh ID.
func NewCategory(title, description string) (*Category, error) {
	c := &Category{ID: uuid.New(), Title: strings.TrimSpace(title), Description: description}
	if c.Title == "" {
		return nil, NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return c, nil
}

// NewSkill creates a Skill in categoryID.
func NewSkill(name string, categoryID uuid.UUID) (*Skill, error) {
	s := &Skill{ID: uuid.New(), Name: strings.TrimSpace(name), CategoryID: categoryID}
	if s.Name == "" {
		return nil, NewValidationError("name", "cannot be empty", ErrEmptyName)
	}
	if categoryID == uuid.Nil {
		return nil, NewValidationError("category_id", "cannot be empty", ErrEmptyCategory)
	}
	return s, nil
}
