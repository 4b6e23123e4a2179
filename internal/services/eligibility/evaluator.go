// Package eligibility implements the course eligibility scoring engine.
package eligibility

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// predicate decides whether a profile satisfies one catalog requirement.
type predicate func(p *models.UserProfile) bool

// predicates is the requirement-level decision table. Each course's instance
// of a category carries its own threshold, so dispatch is by requirement ID
// rather than by category. Requirements without an entry evaluate as not met.
var predicates = map[string]predicate{
	// Age minimums differ per course; Type Rating has no age requirement.
	catalog.ReqAgeCPL:  func(p *models.UserProfile) bool { return p.Age >= 18 },
	catalog.ReqAgeRTR:  func(p *models.UserProfile) bool { return p.Age >= 18 },
	catalog.ReqAgeATPL: func(p *models.UserProfile) bool { return p.Age >= 23 },

	catalog.ReqEducationCPL: func(p *models.UserProfile) bool {
		switch p.Education {
		case models.Education12thPCM, models.EducationDiploma, models.EducationGraduate, models.EducationPostgraduate:
			return true
		}
		return false
	},
	catalog.ReqEducationRTR: func(p *models.UserProfile) bool { return p.Education != "" },

	catalog.ReqMedicalCPL:  medicallyFit,
	catalog.ReqMedicalATPL: medicallyFit,
	catalog.ReqMedicalType: medicallyFit,

	catalog.ReqEnglishCPL:  englishProficient,
	catalog.ReqEnglishATPL: englishProficient,
	catalog.ReqEnglishType: englishProficient,
	// The catalog wording for RTR says basic proficiency; the applied rule is
	// the same intermediate-or-better check as everywhere else. See DESIGN.md.
	catalog.ReqEnglishRTR: englishProficient,

	catalog.ReqRTRPrereqCPL:  func(p *models.UserProfile) bool { return p.HasTraining(models.TrainingRTR) },
	catalog.ReqCPLPrereqATPL: func(p *models.UserProfile) bool { return p.HasTraining(models.TrainingCPL) },
	catalog.ReqCPLPrereqType: func(p *models.UserProfile) bool { return p.HasTraining(models.TrainingCPL) },

	catalog.ReqFlightHours: func(p *models.UserProfile) bool {
		return p.Experience == models.ExperienceExperienced
	},
	catalog.ReqMultiEngine: func(p *models.UserProfile) bool {
		return p.Experience == models.ExperienceExperienced || p.HasTraining(models.TrainingMultiEngine)
	},
}

func medicallyFit(p *models.UserProfile) bool {
	return p.MedicalStatus == models.MedicalFit
}

func englishProficient(p *models.UserProfile) bool {
	return p.EnglishProficiency == models.EnglishIntermediate || p.EnglishProficiency == models.EnglishAdvanced
}

// Evaluate classifies every catalog requirement for one course as met or
// missing. It is a total function: implausible or unrecognized profile values
// simply fail their checks, they never produce an error.
func Evaluate(courseID string, profile *models.UserProfile) models.EligibilityResult {
	requirements := catalog.Lookup(courseID)

	met := make([]models.EligibilityRequirement, 0, len(requirements))
	missing := make([]models.EligibilityRequirement, 0)

	for _, req := range requirements {
		check, ok := predicates[req.ID]
		if ok && check(profile) {
			met = append(met, req)
		} else {
			missing = append(missing, req)
		}
	}

	result := models.EligibilityResult{
		CourseID:            courseID,
		CourseName:          catalog.CourseName(courseID),
		MetRequirements:     met,
		MissingRequirements: missing,
	}

	if len(requirements) > 0 {
		result.EligibilityScore = int(math.Round(100 * float64(len(met)) / float64(len(requirements))))
	}

	result.IsEligible = true
	for _, req := range missing {
		if req.IsMandatory {
			result.IsEligible = false
			break
		}
	}

	result.Recommendations = recommendations(courseID, missing, profile)
	result.NextSteps = nextSteps(missing, result.IsEligible)
	result.EstimatedTimeToEligibility = estimatedTimeToEligibility(missing)

	return result
}

// CheckEligibility evaluates the profile against each selected course and
// aggregates the results. Courses unknown to the catalog have nothing to
// evaluate and are skipped. Results are sorted descending by score; ties keep
// selection order.
func CheckEligibility(profile *models.UserProfile, courseIDs []string) *models.EligibilityCheckResult {
	results := make([]models.EligibilityResult, 0, len(courseIDs))

	for _, courseID := range courseIDs {
		if len(catalog.Lookup(courseID)) == 0 {
			continue
		}
		results = append(results, Evaluate(courseID, profile))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].EligibilityScore > results[j].EligibilityScore
	})

	check := &models.EligibilityCheckResult{
		UserProfile:           *profile,
		Results:               results,
		OverallRecommendation: overallRecommendation(results),
		PriorityActions:       priorityActions(results),
		CompletedAt:           time.Now().UTC(),
	}

	utils.GetLogger().Info("Eligibility check complete",
		zap.Int("courses_requested", len(courseIDs)),
		zap.Int("courses_evaluated", len(results)),
		zap.Strings("eligible_courses", check.EligibleCourseIDs()),
	)

	return check
}
