// Package models defines the data structures for the training eligibility engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidEducation  = errors.New("invalid education level")
	ErrInvalidExperience = errors.New("invalid experience level")
	ErrInvalidMedical    = errors.New("invalid medical status")
	ErrInvalidEnglish    = errors.New("invalid english proficiency")
	ErrInvalidAge        = errors.New("age must be between 16 and 65")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrEmptyName         = errors.New("name cannot be empty")
)

// NormalizeEducation converts various education formats to standard values.
func NormalizeEducation(s string) EducationLevel {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	eduMap := map[string]EducationLevel{
		"10th":          Education10th,
		"10th_pass":     Education10th,
		"matric":        Education10th,
		"ssc":           Education10th,
		"12th_pcm":      Education12thPCM,
		"12th_science":  Education12thPCM,
		"hsc_pcm":       Education12thPCM,
		"12th_other":    Education12thOther,
		"12th":          Education12thOther,
		"12th_arts":     Education12thOther,
		"12th_commerce": Education12thOther,
		"diploma":       EducationDiploma,
		"polytechnic":   EducationDiploma,
		"graduate":      EducationGraduate,
		"graduation":    EducationGraduate,
		"bachelor":      EducationGraduate,
		"bachelors":     EducationGraduate,
		"btech":         EducationGraduate,
		"bsc":           EducationGraduate,
		"postgraduate":  EducationPostgraduate,
		"post_graduate": EducationPostgraduate,
		"masters":       EducationPostgraduate,
		"master":        EducationPostgraduate,
		"mtech":         EducationPostgraduate,
		"msc":           EducationPostgraduate,
	}

	if mapped, ok := eduMap[normalized]; ok {
		return mapped
	}

	// Return as-is if no mapping found (will fail validation)
	return EducationLevel(normalized)
}

// NormalizeExperience converts various experience formats to standard values.
func NormalizeExperience(s string) ExperienceLevel {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	expMap := map[string]ExperienceLevel{
		"none":          ExperienceNone,
		"no_experience": ExperienceNone,
		"nil":           ExperienceNone,
		"basic":         ExperienceBasic,
		"beginner":      ExperienceBasic,
		"student":       ExperienceStudent,
		"student_pilot": ExperienceStudent,
		"spl":           ExperienceStudent,
		"private":       ExperiencePrivate,
		"private_pilot": ExperiencePrivate,
		"ppl":           ExperiencePrivate,
		"experienced":   ExperienceExperienced,
		"professional":  ExperienceExperienced,
		"commercial":    ExperienceExperienced,
	}

	if mapped, ok := expMap[normalized]; ok {
		return mapped
	}

	return ExperienceLevel(normalized)
}

// NormalizeMedicalStatus converts various medical status formats to standard values.
func NormalizeMedicalStatus(s string) MedicalStatus {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")

	medMap := map[string]MedicalStatus{
		"fit":         MedicalFit,
		"class_1":     MedicalFit,
		"class_2":     MedicalFit,
		"passed":      MedicalFit,
		"pending":     MedicalPending,
		"applied":     MedicalPending,
		"in_progress": MedicalPending,
		"not_taken":   MedicalPending,
		"issues":      MedicalIssues,
		"failed":      MedicalIssues,
		"deferred":    MedicalIssues,
	}

	if mapped, ok := medMap[normalized]; ok {
		return mapped
	}

	return MedicalStatus(normalized)
}

// NormalizeEnglishProficiency converts proficiency formats to standard values.
func NormalizeEnglishProficiency(s string) EnglishProficiency {
	normalized := strings.ToLower(strings.TrimSpace(s))

	engMap := map[string]EnglishProficiency{
		"basic":        EnglishBasic,
		"elementary":   EnglishBasic,
		"intermediate": EnglishIntermediate,
		"medium":       EnglishIntermediate,
		"advanced":     EnglishAdvanced,
		"fluent":       EnglishAdvanced,
		"native":       EnglishAdvanced,
	}

	if mapped, ok := engMap[normalized]; ok {
		return mapped
	}

	return EnglishProficiency(normalized)
}

// ParsePreviousTraining splits a delimited training list into tokens.
// Accepts comma, semicolon or pipe separators and trims whitespace.
func ParsePreviousTraining(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	s = strings.ReplaceAll(s, ";", ",")
	s = strings.ReplaceAll(s, "|", ",")

	var tokens []string
	for _, part := range strings.Split(s, ",") {
		token := normalizeTrainingToken(part)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// normalizeTrainingToken maps common spellings to the canonical tokens.
func normalizeTrainingToken(s string) string {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(strings.ReplaceAll(trimmed, " ", "-")) {
	case "rtr", "rtr(a)", "rtr-a":
		return TrainingRTR
	case "cpl", "commercial-pilot-license", "commercial-pilot-licence":
		return TrainingCPL
	case "multi-engine", "multiengine", "me", "multi-engine-rating":
		return TrainingMultiEngine
	default:
		return trimmed
	}
}

// ValidateProspectCreate validates prospect registration data.
// This guards the intake surface only: the evaluator itself accepts any
// well-typed profile and treats unknown tokens as unmet checks.
func ValidateProspectCreate(p *ProspectCreate) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	if !isValidEmail(p.Email) {
		return ErrInvalidEmail
	}

	if p.Profile.Age < 16 || p.Profile.Age > 65 {
		return ErrInvalidAge
	}

	if !p.Profile.Education.IsValid() {
		return ErrInvalidEducation
	}

	if !p.Profile.Experience.IsValid() {
		return ErrInvalidExperience
	}

	if !p.Profile.MedicalStatus.IsValid() {
		return ErrInvalidMedical
	}

	if !p.Profile.EnglishProficiency.IsValid() {
		return ErrInvalidEnglish
	}

	return nil
}

// isValidEmail performs basic email validation.
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}

	// Basic check: must contain @ and have content before and after
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Must have a dot after @
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return false
	}

	return true
}
