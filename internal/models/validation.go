package models

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the individual messages of a failed validation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationResult is the outcome of validating a record.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Err returns a *ValidationError when the result is invalid, nil otherwise.
func (v ValidationResult) Err() error {
	if v.Valid {
		return nil
	}
	return &ValidationError{Messages: v.Errors}
}

func newResult(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateFundingRound checks the fields every round needs plus the
// round-type specific ones.
func ValidateFundingRound(in *FundingRoundInput) ValidationResult {
	var errs []string

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "Round name is required")
	}
	if in.CapitalRaised <= 0 {
		errs = append(errs, "Capital raised must be greater than 0")
	}
	if in.Valuation <= 0 {
		errs = append(errs, "Valuation must be greater than 0")
	}

	switch in.RoundType {
	case RoundTypePriced:
		if in.SharesIssued == nil || *in.SharesIssued <= 0 {
			errs = append(errs, "Shares issued must be greater than 0 for priced rounds")
		}
		if in.SharePrice == nil || *in.SharePrice <= 0 {
			errs = append(errs, "Share price must be greater than 0 for priced rounds")
		}
	case RoundTypeSAFE:
		if in.ValuationCap == nil || *in.ValuationCap <= 0 {
			errs = append(errs, "Valuation cap must be greater than 0 for SAFE rounds")
		}
	}

	if in.DiscountRate != nil && (*in.DiscountRate < 0 || *in.DiscountRate >= 100) {
		errs = append(errs, "Discount rate must be between 0 and 100")
	}

	return newResult(errs)
}

// ValidateFounder checks a founder record.
func ValidateFounder(f *Founder) ValidationResult {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "Founder name is required")
	}
	if f.Shares < 0 {
		errs = append(errs, "Shares cannot be negative")
	}
	if f.EquityPercentage < 0 || f.EquityPercentage > 100 {
		errs = append(errs, "Equity percentage must be between 0 and 100")
	}
	return newResult(errs)
}

// ValidateEsopGrant checks an ESOP grant record.
func ValidateEsopGrant(g *EsopGrant) ValidationResult {
	var errs []string
	if strings.TrimSpace(g.EmployeeName) == "" {
		errs = append(errs, "Employee name is required")
	}
	if g.SharesGranted <= 0 {
		errs = append(errs, "Shares granted must be greater than 0")
	}
	if g.CliffMonths < 0 || g.VestingMonths < 0 {
		errs = append(errs, "Vesting periods cannot be negative")
	}
	if g.VestingMonths > 0 && g.CliffMonths > g.VestingMonths {
		errs = append(errs, "Cliff period cannot exceed the vesting period")
	}
	switch g.VestingFrequency {
	case "", VestingMonthly, VestingQuarterly, VestingAnnually:
	default:
		errs = append(errs, "Vesting frequency must be monthly, quarterly or annually")
	}
	if g.ExercisePrice < 0 {
		errs = append(errs, "Exercise price cannot be negative")
	}
	return newResult(errs)
}

// ValidateSettings checks company settings.
func ValidateSettings(s *CompanySettings) ValidationResult {
	var errs []string
	if s.TotalShares < 0 {
		errs = append(errs, "Total shares cannot be negative")
	}
	if s.EsopPoolPercentage < 0 || s.EsopPoolPercentage >= 100 {
		errs = append(errs, "ESOP pool percentage must be between 0 and 100")
	}
	if s.CurrentValuation < 0 || s.ExitValuation < 0 || s.InitialValuation < 0 {
		errs = append(errs, "Valuations cannot be negative")
	}
	return newResult(errs)
}

// ValidateCompany checks a company record.
func ValidateCompany(c *Company) ValidationResult {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "Company name is required")
	}
	return newResult(errs)
}

// ValidateScenario checks a saved scenario.
func ValidateScenario(s *Scenario) ValidationResult {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "Scenario name is required")
	}
	if s.ExitValuation <= 0 {
		errs = append(errs, "Exit valuation must be greater than 0")
	}
	return newResult(errs)
}

// ValidateComment checks a comment.
func ValidateComment(c *Comment) ValidationResult {
	var errs []string
	if strings.TrimSpace(c.Body) == "" {
		errs = append(errs, "Comment body is required")
	}
	return newResult(errs)
}
