package memory

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// DB holds every table in memory behind a single lock so that cascading
// deletes and company reference checks stay consistent.
// This implementation is for development and testing only - data is lost on restart.
type DB struct {
	mu sync.RWMutex

	companies map[uuid.UUID]*models.Company
	founders  map[uuid.UUID]*models.Founder
	rounds    map[uuid.UUID]*models.FundingRound
	grants    map[uuid.UUID]*models.EsopGrant
	settings  map[uuid.UUID]*models.CompanySettings // company_id -> settings
	scenarios map[uuid.UUID]*models.Scenario
	comments  map[uuid.UUID]*models.Comment
}

// NewDB creates an empty in-memory database.
func NewDB() *DB {
	return &DB{
		companies: make(map[uuid.UUID]*models.Company),
		founders:  make(map[uuid.UUID]*models.Founder),
		rounds:    make(map[uuid.UUID]*models.FundingRound),
		grants:    make(map[uuid.UUID]*models.EsopGrant),
		settings:  make(map[uuid.UUID]*models.CompanySettings),
		scenarios: make(map[uuid.UUID]*models.Scenario),
		comments:  make(map[uuid.UUID]*models.Comment),
	}
}

// NewStores returns a store.Stores backed by a fresh in-memory database.
func NewStores() store.Stores {
	return NewDB().Stores()
}

// Stores returns the per-table stores sharing this database.
func (db *DB) Stores() store.Stores {
	return store.Stores{
		Companies: &CompanyStore{db: db},
		Founders:  &FounderStore{db: db},
		Rounds:    &FundingRoundStore{db: db},
		Grants:    &EsopGrantStore{db: db},
		Settings:  &SettingsStore{db: db},
		Scenarios: &ScenarioStore{db: db},
		Comments:  &CommentStore{db: db},
	}
}

// companyExists must be called with the lock held.
func (db *DB) companyExists(id uuid.UUID) bool {
	_, ok := db.companies[id]
	return ok
}

// deleteChildren removes every record referencing the company.
// Must be called with the write lock held.
func (db *DB) deleteChildren(companyID uuid.UUID) {
	for id, f := range db.founders {
		if f.CompanyID == companyID {
			delete(db.founders, id)
		}
	}
	for id, r := range db.rounds {
		if r.CompanyID == companyID {
			delete(db.rounds, id)
		}
	}
	for id, g := range db.grants {
		if g.CompanyID == companyID {
			delete(db.grants, id)
		}
	}
	for id, s := range db.scenarios {
		if s.CompanyID == companyID {
			delete(db.scenarios, id)
		}
	}
	for id, c := range db.comments {
		if c.CompanyID == companyID {
			delete(db.comments, id)
		}
	}
	delete(db.settings, companyID)
}

// collect clones the values matching keep and sorts them with less.
func collect[T any](m map[uuid.UUID]*T, keep func(*T) bool, clone func(*T) *T, less func(a, b *T) bool) []*T {
	out := []*T{}
	for _, v := range m {
		if keep(v) {
			out = append(out, clone(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func cloneOf[T any](v *T) *T {
	c := *v
	return &c
}

// olderFirst orders by timestamp, breaking ties on ID.
func olderFirst(a, b time.Time, aID, bID uuid.UUID) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return bytes.Compare(aID[:], bID[:]) < 0
}
