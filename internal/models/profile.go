// Package models defines the data structures for the training eligibility engine.
package models

import (
	"time"
)

// EducationLevel represents the highest education level of a prospect.
type EducationLevel string

const (
	Education10th         EducationLevel = "10th"
	Education12thPCM      EducationLevel = "12th_pcm"
	Education12thOther    EducationLevel = "12th_other"
	EducationDiploma      EducationLevel = "diploma"
	EducationGraduate     EducationLevel = "graduate"
	EducationPostgraduate EducationLevel = "postgraduate"
)

// ValidEducationLevels returns all valid education level values.
func ValidEducationLevels() []EducationLevel {
	return []EducationLevel{
		Education10th,
		Education12thPCM,
		Education12thOther,
		EducationDiploma,
		EducationGraduate,
		EducationPostgraduate,
	}
}

// IsValid checks if the education level is valid.
func (e EducationLevel) IsValid() bool {
	for _, valid := range ValidEducationLevels() {
		if e == valid {
			return true
		}
	}
	return false
}

// ExperienceLevel represents the flying experience of a prospect.
type ExperienceLevel string

const (
	ExperienceNone        ExperienceLevel = "none"
	ExperienceBasic       ExperienceLevel = "basic"
	ExperienceStudent     ExperienceLevel = "student"
	ExperiencePrivate     ExperienceLevel = "private"
	ExperienceExperienced ExperienceLevel = "experienced"
)

// ValidExperienceLevels returns all valid experience level values.
func ValidExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{
		ExperienceNone,
		ExperienceBasic,
		ExperienceStudent,
		ExperiencePrivate,
		ExperienceExperienced,
	}
}

// IsValid checks if the experience level is valid.
func (e ExperienceLevel) IsValid() bool {
	for _, valid := range ValidExperienceLevels() {
		if e == valid {
			return true
		}
	}
	return false
}

// MedicalStatus represents the aviation medical certificate status of a prospect.
type MedicalStatus string

const (
	MedicalFit     MedicalStatus = "fit"
	MedicalPending MedicalStatus = "pending"
	MedicalIssues  MedicalStatus = "issues"
)

// IsValid checks if the medical status is valid.
func (m MedicalStatus) IsValid() bool {
	return m == MedicalFit || m == MedicalPending || m == MedicalIssues
}

// EnglishProficiency represents the English language level of a prospect.
type EnglishProficiency string

const (
	EnglishBasic        EnglishProficiency = "basic"
	EnglishIntermediate EnglishProficiency = "intermediate"
	EnglishAdvanced     EnglishProficiency = "advanced"
)

// IsValid checks if the English proficiency level is valid.
func (e EnglishProficiency) IsValid() bool {
	return e == EnglishBasic || e == EnglishIntermediate || e == EnglishAdvanced
}

// Training tokens recognised in UserProfile.PreviousTraining.
const (
	TrainingRTR         = "RTR"
	TrainingCPL         = "CPL"
	TrainingMultiEngine = "Multi-engine"
)

// UserProfile holds the attributes a prospect supplies for an eligibility check.
// It is constructed once per check and never mutated by the engine.
type UserProfile struct {
	Age                int                `json:"age"`
	Education          EducationLevel     `json:"education"`
	Experience         ExperienceLevel    `json:"experience"`
	MedicalStatus      MedicalStatus      `json:"medical_status"`
	EnglishProficiency EnglishProficiency `json:"english_proficiency"`
	PreviousTraining   []string           `json:"previous_training,omitempty"`
	Location           string             `json:"location,omitempty"` // informational only, never affects scoring
}

// HasTraining reports whether the profile lists the given training token.
// Insertion order of PreviousTraining is irrelevant.
func (p *UserProfile) HasTraining(token string) bool {
	for _, t := range p.PreviousTraining {
		if t == token {
			return true
		}
	}
	return false
}

// Prospect represents a stored prospect in the system.
type Prospect struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Profile   UserProfile
	BatchID   string    `json:"batch_id,omitempty" db:"batch_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

// ProspectCreate represents the data needed to register a new prospect.
type ProspectCreate struct {
	Name    string      `json:"name" validate:"required,min=1,max=100"`
	Email   string      `json:"email" validate:"required,email"`
	Phone   string      `json:"phone,omitempty"`
	Profile UserProfile `json:"profile"`
	BatchID string      `json:"batch_id,omitempty"`
}

// CSVProspectRow represents a row from an uploaded prospect CSV file.
type CSVProspectRow struct {
	Name               string `csv:"name"`
	Email              string `csv:"email"`
	Phone              string `csv:"phone"`
	Age                int    `csv:"age"`
	Education          string `csv:"education"`
	Experience         string `csv:"experience"`
	MedicalStatus      string `csv:"medical_status"`
	EnglishProficiency string `csv:"english_proficiency"`
	PreviousTraining   string `csv:"previous_training"`
	Location           string `csv:"location"`
}

// BulkInsertResult contains the results of a bulk insert operation.
type BulkInsertResult struct {
	InsertedCount int      `json:"inserted_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
