package admin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"gopkg.in/yaml.v3"
)

// Fixture is a seed file describing companies and everything hanging off them.
type Fixture struct {
	Companies []FixtureCompany `yaml:"companies" json:"companies"`
}

type FixtureCompany struct {
	Name        string                     `yaml:"name" json:"name"`
	Industry    string                     `yaml:"industry" json:"industry"`
	Description string                     `yaml:"description" json:"description"`
	Settings    *FixtureSettings           `yaml:"settings,omitempty" json:"settings,omitempty"`
	Founders    []FixtureFounder           `yaml:"founders" json:"founders"`
	Rounds      []models.FundingRoundInput `yaml:"rounds" json:"rounds"`
	Grants      []FixtureGrant             `yaml:"grants" json:"grants"`
	Scenarios   []FixtureScenario          `yaml:"scenarios" json:"scenarios"`
	Comments    []FixtureComment           `yaml:"comments" json:"comments"`
}

type FixtureSettings struct {
	CurrentValuation   float64 `yaml:"current_valuation" json:"current_valuation"`
	EsopPoolPercentage float64 `yaml:"esop_pool_percentage" json:"esop_pool_percentage"`
	TotalShares        int64   `yaml:"total_shares" json:"total_shares"`
	ExitValuation      float64 `yaml:"exit_valuation" json:"exit_valuation"`
	InitialValuation   float64 `yaml:"initial_valuation" json:"initial_valuation"`
	LegalStructure     string  `yaml:"legal_structure" json:"legal_structure"`
}

type FixtureFounder struct {
	Name             string  `yaml:"name" json:"name"`
	Role             string  `yaml:"role" json:"role"`
	EquityPercentage float64 `yaml:"equity_percentage" json:"equity_percentage"`
	Shares           int64   `yaml:"shares" json:"shares"`
	InitialOwnership float64 `yaml:"initial_ownership" json:"initial_ownership"`
}

type FixtureGrant struct {
	EmployeeName     string    `yaml:"employee_name" json:"employee_name"`
	EmployeeID       string    `yaml:"employee_id" json:"employee_id"`
	Position         string    `yaml:"position" json:"position"`
	Department       string    `yaml:"department" json:"department"`
	GrantDate        time.Time `yaml:"grant_date" json:"grant_date"`
	SharesGranted    int64     `yaml:"shares_granted" json:"shares_granted"`
	VestingSchedule  string    `yaml:"vesting_schedule" json:"vesting_schedule"`
	VestingMonths    int       `yaml:"vesting_months" json:"vesting_months"`
	CliffMonths      int       `yaml:"cliff_period" json:"cliff_period"`
	VestingFrequency string    `yaml:"vesting_frequency" json:"vesting_frequency"`
	ExercisePrice    float64   `yaml:"exercise_price" json:"exercise_price"`
	Status           string    `yaml:"status" json:"status"`
	Notes            string    `yaml:"notes" json:"notes"`
}

type FixtureScenario struct {
	Name          string  `yaml:"name" json:"name"`
	ExitValuation float64 `yaml:"exit_valuation" json:"exit_valuation"`
	Notes         string  `yaml:"notes" json:"notes"`
}

type FixtureComment struct {
	Author string `yaml:"author" json:"author"`
	Body   string `yaml:"body" json:"body"`
}

// LoadFixture reads a seed file. Files ending in .json are parsed as JSON,
// anything else as YAML.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixture Fixture
	if err := decodeFile(path, data, &fixture); err != nil {
		return nil, err
	}

	return &fixture, nil
}

// LoadRoundInputs reads a list of application-shape funding rounds.
func LoadRoundInputs(path string) ([]models.FundingRoundInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rounds file: %w", err)
	}

	var rounds []models.FundingRoundInput
	if err := decodeFile(path, data, &rounds); err != nil {
		return nil, err
	}

	return rounds, nil
}

func decodeFile(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON file: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse YAML file: %w", err)
	}
	return nil
}

func (g FixtureGrant) toRecord(companyID uuid.UUID) *models.EsopGrant {
	now := time.Now().UTC()
	grant := &models.EsopGrant{
		CompanyID:        companyID,
		EmployeeName:     g.EmployeeName,
		EmployeeID:       g.EmployeeID,
		Position:         g.Position,
		Department:       g.Department,
		GrantDate:        g.GrantDate,
		SharesGranted:    g.SharesGranted,
		VestingSchedule:  g.VestingSchedule,
		VestingMonths:    g.VestingMonths,
		CliffMonths:      g.CliffMonths,
		VestingFrequency: g.VestingFrequency,
		ExercisePrice:    g.ExercisePrice,
		Status:           g.Status,
		Notes:            g.Notes,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	models.ApplyGrantDefaults(grant)
	return grant
}
