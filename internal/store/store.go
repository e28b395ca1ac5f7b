package store

import (
	"errors"
)

// Sentinel errors shared by every store implementation
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced company does not exist")
)

// Stores bundles the per-table stores that make up a simulator database.
type Stores struct {
	Companies CompanyStore
	Founders  FounderStore
	Rounds    FundingRoundStore
	Grants    EsopGrantStore
	Settings  SettingsStore
	Scenarios ScenarioStore
	Comments  CommentStore
}
