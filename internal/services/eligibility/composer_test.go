package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

func TestRenderMonths(t *testing.T) {
	cases := []struct {
		months int
		want   string
	}{
		{0, "Eligible now"},
		{1, "1 month"},
		{2, "2 months"},
		{6, "6 months"},
		{7, "1 year"},
		{12, "1 year"},
		{18, "2 years"},
		{24, "2 years"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, renderMonths(tc.months), "months=%d", tc.months)
	}
}

func TestEstimatedTime_BottleneckNotSum(t *testing.T) {
	missing := []models.EligibilityRequirement{
		{ID: catalog.ReqEducationCPL, Category: models.CategoryEducation},
		{ID: catalog.ReqMedicalCPL, Category: models.CategoryMedical},
	}

	// 12 and 1 month remediations: the max wins, not 13
	assert.Equal(t, "1 year", estimatedTimeToEligibility(missing))
}

func TestEstimatedTime_RTRPrereqOverridesCategory(t *testing.T) {
	missing := []models.EligibilityRequirement{
		{ID: catalog.ReqRTRPrereqCPL, Category: models.CategoryExperience},
	}

	// The RTR prerequisite is a 2 month job, not a 24 month experience build
	assert.Equal(t, "2 months", estimatedTimeToEligibility(missing))
}

func TestEstimatedTime_AgeAndLanguageHaveNoDuration(t *testing.T) {
	missing := []models.EligibilityRequirement{
		{ID: catalog.ReqAgeCPL, Category: models.CategoryAge},
		{ID: catalog.ReqEnglishCPL, Category: models.CategoryLanguage},
	}

	assert.Equal(t, "Eligible now", estimatedTimeToEligibility(missing))
}

func TestNextSteps_CollapsesCategories(t *testing.T) {
	missing := []models.EligibilityRequirement{
		{ID: catalog.ReqCPLPrereqATPL, Category: models.CategoryExperience},
		{ID: catalog.ReqFlightHours, Category: models.CategoryExperience},
		{ID: catalog.ReqMedicalATPL, Category: models.CategoryMedical},
	}

	steps := nextSteps(missing, false)

	// Two experience requirements collapse to one step, plus medical and recheck
	require.Len(t, steps, 3)
	assert.Equal(t, "Gain the required flying experience or prerequisite license", steps[0])
	assert.Equal(t, "Obtain a DGCA Class 1 medical certificate", steps[1])
	assert.Equal(t, "Recheck your eligibility once the above are complete", steps[2])
}

func TestNextSteps_Eligible(t *testing.T) {
	steps := nextSteps(nil, true)

	require.Len(t, steps, 4)
	assert.Equal(t, enrollmentSteps, steps)
}

func TestRecommendations_PendingMedical(t *testing.T) {
	profile := &models.UserProfile{MedicalStatus: models.MedicalPending}
	missing := []models.EligibilityRequirement{
		{ID: catalog.ReqMedicalCPL, Category: models.CategoryMedical},
	}

	recs := recommendations(catalog.CourseCPL, missing, profile)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "pending medical assessment")
}

func TestRecommendations_Deduplicated(t *testing.T) {
	profile := &models.UserProfile{}
	missing := []models.EligibilityRequirement{
		{ID: catalog.ReqCPLPrereqType, Category: models.CategoryExperience},
		{ID: catalog.ReqMultiEngine, Category: models.CategoryExperience},
	}

	recs := recommendations(catalog.CourseTypeRating, missing, profile)

	seen := make(map[string]bool)
	for _, rec := range recs {
		assert.False(t, seen[rec], "duplicate recommendation: %s", rec)
		seen[rec] = true
	}
}

func TestPriorityActions_FixedOrderTopThree(t *testing.T) {
	results := []models.EligibilityResult{
		{
			MissingRequirements: []models.EligibilityRequirement{
				{ID: catalog.ReqEnglishCPL, Category: models.CategoryLanguage},
				{ID: catalog.ReqFlightHours, Category: models.CategoryExperience},
			},
		},
		{
			MissingRequirements: []models.EligibilityRequirement{
				{ID: catalog.ReqEducationCPL, Category: models.CategoryEducation},
				{ID: catalog.ReqMedicalCPL, Category: models.CategoryMedical},
			},
		},
	}

	actions := priorityActions(results)

	// All four categories are present; the fixed order keeps the first three
	require.Len(t, actions, 3)
	assert.Equal(t, categoryActions[models.CategoryEducation], actions[0])
	assert.Equal(t, categoryActions[models.CategoryMedical], actions[1])
	assert.Equal(t, categoryActions[models.CategoryExperience], actions[2])
}

func TestOverallRecommendation_EligibleCourseWins(t *testing.T) {
	results := []models.EligibilityResult{
		{CourseName: "RTR (Aero) License", IsEligible: true, EligibilityScore: 100},
		{CourseName: "Commercial Pilot License (CPL)", IsEligible: false, EligibilityScore: 80},
	}

	msg := overallRecommendation(results)
	assert.Contains(t, msg, "You are eligible for RTR (Aero) License")
}

func TestOverallRecommendation_ClosestCourse(t *testing.T) {
	results := []models.EligibilityResult{
		{CourseName: "Commercial Pilot License (CPL)", IsEligible: false,
			EligibilityScore: 80, EstimatedTimeToEligibility: "1 year"},
		{CourseName: "RTR (Aero) License", IsEligible: false,
			EligibilityScore: 67, EstimatedTimeToEligibility: "1 year"},
	}

	msg := overallRecommendation(results)
	assert.Contains(t, msg, "Commercial Pilot License (CPL)")
	assert.Contains(t, msg, "80%")
	assert.Contains(t, msg, "1 year")
}
