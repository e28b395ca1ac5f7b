package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the root entity of a cap table. Founders, funding rounds, ESOP
// grants, settings, scenarios and comments all hang off a company by ID.
type Company struct {
	ID          uuid.UUID `json:"id"` // UUIDv7
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCompany returns a company with a fresh UUIDv7 and timestamps set.
func NewCompany(name, industry, description string) *Company {
	now := time.Now().UTC()
	return &Company{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Industry:    industry,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Founder is an equity holder who started the company.
type Founder struct {
	ID               uuid.UUID `json:"id"`
	CompanyID        uuid.UUID `json:"company_id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	EquityPercentage float64   `json:"equity_percentage"`
	Shares           int64     `json:"shares"`
	InitialOwnership float64   `json:"initial_ownership"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Comment is a free-form note attached to a company.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment returns a comment with a fresh ID.
func NewComment(companyID uuid.UUID, author, body string) *Comment {
	return &Comment{
		ID:        uuid.Must(uuid.NewV7()),
		CompanyID: companyID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}
