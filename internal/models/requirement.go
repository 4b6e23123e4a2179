// Package models defines the data structures for the training eligibility engine.
package models

// RequirementCategory classifies an eligibility requirement.
type RequirementCategory string

const (
	CategoryAge        RequirementCategory = "age"
	CategoryEducation  RequirementCategory = "education"
	CategoryMedical    RequirementCategory = "medical"
	CategoryLanguage   RequirementCategory = "language"
	CategoryExperience RequirementCategory = "experience"
)

// ValidRequirementCategories returns all valid requirement categories.
func ValidRequirementCategories() []RequirementCategory {
	return []RequirementCategory{
		CategoryAge,
		CategoryEducation,
		CategoryMedical,
		CategoryLanguage,
		CategoryExperience,
	}
}

// IsValid checks if the requirement category is valid.
func (c RequirementCategory) IsValid() bool {
	for _, valid := range ValidRequirementCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// EligibilityRequirement is one catalog-defined requirement for a course.
// Catalog entries never mutate at runtime; they are loaded once and treated
// as read-only configuration.
type EligibilityRequirement struct {
	ID          string              `json:"id"`
	Category    RequirementCategory `json:"category"`
	Requirement string              `json:"requirement"`
	Description string              `json:"description"`
	IsMandatory bool                `json:"is_mandatory"`
	// Alternatives lists substitute qualifications. Display text only: the
	// evaluator's allow-lists already cover the qualifying paths, so these
	// do not feed the scoring logic.
	Alternatives []string `json:"alternatives,omitempty"`
}
