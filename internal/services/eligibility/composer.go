package eligibility

import (
	"fmt"
	"math"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

// Remedial durations in months per missing-requirement category. The estimate
// is a bottleneck model: the single slowest category dominates, durations are
// never summed. Age and language have no modeled training time.
const (
	monthsEducation  = 12
	monthsMedical    = 1
	monthsRTRPrereq  = 2
	monthsExperience = 24
)

// enrollmentSteps is the fixed sequence returned for eligible courses.
var enrollmentSteps = []string{
	"Submit your enrollment application",
	"Book a counselling session with our instructors",
	"Complete document verification",
	"Pay the course fee and reserve your batch seat",
}

// categorySteps maps a missing-requirement category to its canonical next step.
var categorySteps = map[models.RequirementCategory]string{
	models.CategoryAge:        "Wait until you meet the minimum age requirement",
	models.CategoryEducation:  "Complete the required academic qualification",
	models.CategoryMedical:    "Obtain a DGCA Class 1 medical certificate",
	models.CategoryLanguage:   "Improve your English proficiency",
	models.CategoryExperience: "Gain the required flying experience or prerequisite license",
}

// categoryActions maps a category to its canonical priority action. Iteration
// follows priorityOrder, not requirement order.
var categoryActions = map[models.RequirementCategory]string{
	models.CategoryEducation:  "Complete 10+2 with Physics and Mathematics or an equivalent qualification",
	models.CategoryMedical:    "Book a DGCA Class 1 medical examination",
	models.CategoryExperience: "Build the required flying experience and prerequisite licenses",
	models.CategoryLanguage:   "Raise your English proficiency to intermediate or better",
}

// priorityOrder fixes the category order for priority actions.
var priorityOrder = []models.RequirementCategory{
	models.CategoryEducation,
	models.CategoryMedical,
	models.CategoryExperience,
	models.CategoryLanguage,
}

// recommendations derives advisory strings from the missing requirements and
// the profile. Output order follows a fixed priority (age, education, medical,
// RTR prerequisite, language, experience) and is deduplicated.
func recommendations(courseID string, missing []models.EligibilityRequirement, profile *models.UserProfile) []string {
	missingIDs := make(map[string]bool, len(missing))
	missingCategories := make(map[models.RequirementCategory]bool, len(missing))
	for _, req := range missing {
		missingIDs[req.ID] = true
		missingCategories[req.Category] = true
	}

	var recs []string
	add := func(rec string) {
		for _, existing := range recs {
			if existing == rec {
				return
			}
		}
		recs = append(recs, rec)
	}

	if missingCategories[models.CategoryAge] {
		switch courseID {
		case catalog.CourseCPL:
			add("You can begin CPL ground classes now and complete flight training requirements once you turn 18.")
		case catalog.CourseATPL:
			add("ATPL requires a minimum age of 23 — use the time to build flight hours on your CPL.")
		default:
			add("You will meet the age requirement with time; start preparing for the written exams now.")
		}
	}

	if missingCategories[models.CategoryEducation] {
		if courseID == catalog.CourseRTR {
			add("Complete any recognized school qualification to sit for the RTR exam.")
		} else {
			add("Complete 10+2 with Physics and Mathematics, or an equivalent diploma or degree, to meet the education requirement.")
		}
	}

	if missingCategories[models.CategoryMedical] {
		if profile.MedicalStatus == models.MedicalPending {
			add("Follow up on your pending medical assessment — training can be scheduled once the Class 1 certificate is issued.")
		} else {
			add("Schedule a DGCA Class 1 medical examination with an authorized examiner.")
		}
	}

	if missingIDs[catalog.ReqRTRPrereqCPL] {
		add("Enroll for the RTR (Aero) exam — most candidates clear it within two months of focused preparation.")
	}

	if missingCategories[models.CategoryLanguage] {
		if profile.EnglishProficiency == models.EnglishBasic {
			add("Strengthen your aviation English to at least intermediate level; radiotelephony exams are conducted in English.")
		} else {
			add("Demonstrable English proficiency is required for all DGCA examinations.")
		}
	}

	if missingIDs[catalog.ReqCPLPrereqATPL] || missingIDs[catalog.ReqCPLPrereqType] {
		add("Complete your CPL first — it is the entry requirement for this course.")
	}
	if missingIDs[catalog.ReqFlightHours] {
		add("Continue logging pilot-in-command hours; ATPL issue requires 1500 hours total time.")
	}
	if missingIDs[catalog.ReqMultiEngine] {
		add("Add a multi-engine endorsement to your license before starting type rating training.")
	}

	return recs
}

// nextSteps returns the ordered action list for one course. Eligible courses
// get the fixed enrollment sequence; otherwise each missing category collapses
// to one canonical step (set semantics) followed by a recheck step.
func nextSteps(missing []models.EligibilityRequirement, isEligible bool) []string {
	if isEligible {
		steps := make([]string, len(enrollmentSteps))
		copy(steps, enrollmentSteps)
		return steps
	}

	var steps []string
	seen := make(map[models.RequirementCategory]bool)
	for _, req := range missing {
		if seen[req.Category] {
			continue
		}
		seen[req.Category] = true
		if step, ok := categorySteps[req.Category]; ok {
			steps = append(steps, step)
		}
	}

	steps = append(steps, "Recheck your eligibility once the above are complete")
	return steps
}

// estimatedTimeToEligibility renders the bottleneck wait across the missing
// requirements. An empty missing set, or one whose categories carry no
// modeled training time (age, language), renders as eligible now.
func estimatedTimeToEligibility(missing []models.EligibilityRequirement) string {
	months := 0
	for _, req := range missing {
		var m int
		switch {
		case req.ID == catalog.ReqRTRPrereqCPL:
			m = monthsRTRPrereq
		case req.Category == models.CategoryEducation:
			m = monthsEducation
		case req.Category == models.CategoryMedical:
			m = monthsMedical
		case req.Category == models.CategoryExperience:
			m = monthsExperience
		}
		if m > months {
			months = m
		}
	}

	return renderMonths(months)
}

// renderMonths formats a month count: "Eligible now" for zero, months up to
// half a year, whole years (rounded to nearest) beyond that.
func renderMonths(months int) string {
	switch {
	case months == 0:
		return "Eligible now"
	case months == 1:
		return "1 month"
	case months <= 6:
		return fmt.Sprintf("%d months", months)
	default:
		years := int(math.Round(float64(months) / 12))
		if years <= 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", years)
	}
}

// overallRecommendation summarizes a whole check. Results arrive sorted
// descending by score, so the first eligible course is also the best one.
func overallRecommendation(results []models.EligibilityResult) string {
	if len(results) == 0 {
		return "Select a course to check your eligibility."
	}

	for _, res := range results {
		if res.IsEligible {
			return fmt.Sprintf("You are eligible for %s. You can begin enrollment right away.", res.CourseName)
		}
	}

	best := results[0]
	return fmt.Sprintf("You're closest to %s at %d%% — estimated time to eligibility: %s.",
		best.CourseName, best.EligibilityScore, best.EstimatedTimeToEligibility)
}

// priorityActions flattens every course's missing requirements and emits one
// canonical action per category present, in fixed category order, keeping the
// first three.
func priorityActions(results []models.EligibilityResult) []string {
	present := make(map[models.RequirementCategory]bool)
	for _, res := range results {
		for _, req := range res.MissingRequirements {
			present[req.Category] = true
		}
	}

	var actions []string
	for _, category := range priorityOrder {
		if !present[category] {
			continue
		}
		actions = append(actions, categoryActions[category])
		if len(actions) == 3 {
			break
		}
	}

	return actions
}
