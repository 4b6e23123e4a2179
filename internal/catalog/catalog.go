// Package catalog holds the static course requirement catalog.
//
// The catalog is read-only configuration: it is built once at package
// initialization and never mutates at runtime. Callers receive copies and
// may not alter the underlying tables.
package catalog

import (
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

// Course identifiers known to the catalog.
const (
	CourseCPL        = "cpl"
	CourseATPL       = "atpl"
	CourseRTR        = "rtr"
	CourseTypeRating = "type_rating"
)

// Requirement identifiers referenced by the evaluator's predicate table and
// by the composer's id-specific rules.
const (
	ReqAgeCPL        = "age_cpl"
	ReqEducationCPL  = "education_cpl"
	ReqMedicalCPL    = "medical_cpl"
	ReqEnglishCPL    = "english_cpl"
	ReqRTRPrereqCPL  = "rtr_cpl"
	ReqAgeATPL       = "age_atpl"
	ReqCPLPrereqATPL = "cpl_atpl"
	ReqFlightHours   = "flight_hours_atpl"
	ReqMedicalATPL   = "medical_atpl"
	ReqEnglishATPL   = "english_atpl"
	ReqAgeRTR        = "age_rtr"
	ReqEducationRTR  = "education_rtr"
	ReqEnglishRTR    = "english_rtr"
	ReqCPLPrereqType = "cpl_type_rating"
	ReqMultiEngine   = "multi_engine_type_rating"
	ReqMedicalType   = "medical_type_rating"
	ReqEnglishType   = "english_type_rating"
)

// Course describes one training offering.
type Course struct {
	ID           string                          `json:"id"`
	Name         string                          `json:"name"`
	Description  string                          `json:"description"`
	Requirements []models.EligibilityRequirement `json:"requirements"`
}

// courses is the ordered course list. Requirement order within each course is
// the canonical display order.
var courses = []Course{
	{
		ID:          CourseCPL,
		Name:        "Commercial Pilot License (CPL)",
		Description: "Entry-level professional pilot qualification covering ground school and flight training.",
		Requirements: []models.EligibilityRequirement{
			{
				ID:          ReqAgeCPL,
				Category:    models.CategoryAge,
				Requirement: "Minimum 18 years of age",
				Description: "DGCA requires CPL applicants to be at least 18 years old at the time of license issue.",
				IsMandatory: true,
			},
			{
				ID:          ReqEducationCPL,
				Category:    models.CategoryEducation,
				Requirement: "10+2 with Physics and Mathematics",
				Description: "Class 12 with Physics, Chemistry and Mathematics, or an equivalent higher qualification.",
				IsMandatory: true,
				Alternatives: []string{
					"Diploma in Engineering",
					"Graduate degree in any science stream",
					"NIOS 12th with Physics and Mathematics",
				},
			},
			{
				ID:          ReqMedicalCPL,
				Category:    models.CategoryMedical,
				Requirement: "Class 1 Medical Certificate",
				Description: "Valid DGCA Class 1 medical assessment from an authorized examiner.",
				IsMandatory: true,
			},
			{
				ID:          ReqEnglishCPL,
				Category:    models.CategoryLanguage,
				Requirement: "English proficiency",
				Description: "Working command of aviation English for radiotelephony and examinations.",
				IsMandatory: true,
			},
			{
				ID:          ReqRTRPrereqCPL,
				Category:    models.CategoryExperience,
				Requirement: "RTR (Aero) license",
				Description: "Restricted Radio Telephone license; can also be obtained alongside early CPL training.",
				IsMandatory: false,
			},
		},
	},
	{
		ID:          CourseATPL,
		Name:        "Airline Transport Pilot License (ATPL)",
		Description: "Advanced qualification required for airline captain roles.",
		Requirements: []models.EligibilityRequirement{
			{
				ID:          ReqAgeATPL,
				Category:    models.CategoryAge,
				Requirement: "Minimum 23 years of age",
				Description: "ATPL issue requires a minimum age of 23.",
				IsMandatory: true,
			},
			{
				ID:          ReqCPLPrereqATPL,
				Category:    models.CategoryExperience,
				Requirement: "Valid CPL",
				Description: "A current Commercial Pilot License is a prerequisite for ATPL training.",
				IsMandatory: true,
			},
			{
				ID:          ReqFlightHours,
				Category:    models.CategoryExperience,
				Requirement: "1500 hours total flight time",
				Description: "Substantial command and cross-country experience logged as pilot in command.",
				IsMandatory: true,
			},
			{
				ID:          ReqMedicalATPL,
				Category:    models.CategoryMedical,
				Requirement: "Class 1 Medical Certificate",
				Description: "Valid DGCA Class 1 medical assessment from an authorized examiner.",
				IsMandatory: true,
			},
			{
				ID:          ReqEnglishATPL,
				Category:    models.CategoryLanguage,
				Requirement: "English proficiency",
				Description: "ICAO Level 4 or better English language proficiency.",
				IsMandatory: true,
			},
		},
	},
	{
		ID:          CourseRTR,
		Name:        "RTR (Aero) License",
		Description: "Restricted Radio Telephone license for aeronautical communication.",
		Requirements: []models.EligibilityRequirement{
			{
				ID:          ReqAgeRTR,
				Category:    models.CategoryAge,
				Requirement: "Minimum 18 years of age",
				Description: "WPC requires RTR candidates to be at least 18 years old.",
				IsMandatory: true,
			},
			{
				ID:          ReqEducationRTR,
				Category:    models.CategoryEducation,
				Requirement: "Any recognized school qualification",
				Description: "No stream restriction; any completed school education qualifies.",
				IsMandatory: true,
			},
			{
				// Described as basic proficiency, but the language check applied
				// is the same intermediate-or-better rule as every other course.
				// Kept stricter than the wording on purpose; see DESIGN.md.
				ID:          ReqEnglishRTR,
				Category:    models.CategoryLanguage,
				Requirement: "Basic English proficiency",
				Description: "Ability to read and transmit standard radiotelephony phraseology in English.",
				IsMandatory: true,
			},
		},
	},
	{
		ID:          CourseTypeRating,
		Name:        "Type Rating (A320/B737)",
		Description: "Aircraft-type-specific certification for airline fleets.",
		Requirements: []models.EligibilityRequirement{
			{
				ID:          ReqCPLPrereqType,
				Category:    models.CategoryExperience,
				Requirement: "Valid CPL",
				Description: "A current Commercial Pilot License is required before type rating training.",
				IsMandatory: true,
			},
			{
				ID:          ReqMultiEngine,
				Category:    models.CategoryExperience,
				Requirement: "Multi-engine experience",
				Description: "Multi-engine endorsement or substantial multi-engine flight experience.",
				IsMandatory: true,
				Alternatives: []string{
					"Multi-engine instrument rating",
				},
			},
			{
				ID:          ReqMedicalType,
				Category:    models.CategoryMedical,
				Requirement: "Class 1 Medical Certificate",
				Description: "Valid DGCA Class 1 medical assessment from an authorized examiner.",
				IsMandatory: true,
			},
			{
				ID:          ReqEnglishType,
				Category:    models.CategoryLanguage,
				Requirement: "English proficiency",
				Description: "ICAO Level 4 or better English language proficiency.",
				IsMandatory: true,
			},
		},
	},
}

// courseIndex maps course ID to its position in courses.
var courseIndex = buildIndex()

func buildIndex() map[string]int {
	idx := make(map[string]int, len(courses))
	for i, c := range courses {
		idx[c.ID] = i
	}
	return idx
}

// Courses returns all courses in catalog order.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}

// CourseIDs returns all course identifiers in catalog order.
func CourseIDs() []string {
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return ids
}

// CourseName returns the display name for a course ID, or the ID itself when
// the course is unknown.
func CourseName(courseID string) string {
	if i, ok := courseIndex[courseID]; ok {
		return courses[i].Name
	}
	return courseID
}

// Lookup returns the ordered requirement list for a course. Unknown course
// identifiers yield an empty list, never an error: callers must treat an
// empty result as "nothing to evaluate".
func Lookup(courseID string) []models.EligibilityRequirement {
	i, ok := courseIndex[courseID]
	if !ok {
		return []models.EligibilityRequirement{}
	}

	reqs := make([]models.EligibilityRequirement, len(courses[i].Requirements))
	copy(reqs, courses[i].Requirements)
	return reqs
}
