package eligibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/eligibility"
)

// idealCPLProfile satisfies every CPL requirement.
func idealCPLProfile() models.UserProfile {
	return models.UserProfile{
		Age:                20,
		Education:          models.Education12thPCM,
		Experience:         models.ExperienceNone,
		MedicalStatus:      models.MedicalFit,
		EnglishProficiency: models.EnglishIntermediate,
		PreviousTraining:   []string{models.TrainingRTR},
	}
}

func TestEvaluate_CPLFullyEligible(t *testing.T) {
	profile := idealCPLProfile()

	result := eligibility.Evaluate(catalog.CourseCPL, &profile)

	assert.True(t, result.IsEligible)
	assert.Equal(t, 100, result.EligibilityScore)
	assert.Empty(t, result.MissingRequirements)
	assert.Len(t, result.MetRequirements, 5)
	assert.Equal(t, "Eligible now", result.EstimatedTimeToEligibility)

	// Eligible courses get the enrollment sequence
	require.NotEmpty(t, result.NextSteps)
	assert.Equal(t, "Submit your enrollment application", result.NextSteps[0])
}

func TestEvaluate_CPLUnderage(t *testing.T) {
	profile := idealCPLProfile()
	profile.Age = 17

	result := eligibility.Evaluate(catalog.CourseCPL, &profile)

	assert.False(t, result.IsEligible, "missing mandatory age requirement must block eligibility")
	assert.Equal(t, 80, result.EligibilityScore)

	require.Len(t, result.MissingRequirements, 1)
	assert.Equal(t, catalog.ReqAgeCPL, result.MissingRequirements[0].ID)
}

func TestEvaluate_CPLOptionalRTRMissing(t *testing.T) {
	profile := idealCPLProfile()
	profile.PreviousTraining = nil

	result := eligibility.Evaluate(catalog.CourseCPL, &profile)

	// RTR is the only non-mandatory requirement: eligible but not 100%
	assert.True(t, result.IsEligible)
	assert.Equal(t, 80, result.EligibilityScore)
	require.Len(t, result.MissingRequirements, 1)
	assert.Equal(t, catalog.ReqRTRPrereqCPL, result.MissingRequirements[0].ID)
}

func TestEvaluate_ATPLMissingFlightHours(t *testing.T) {
	profile := models.UserProfile{
		Age:                25,
		Education:          models.EducationGraduate,
		Experience:         models.ExperienceStudent,
		MedicalStatus:      models.MedicalFit,
		EnglishProficiency: models.EnglishAdvanced,
		PreviousTraining:   []string{models.TrainingCPL},
	}

	result := eligibility.Evaluate(catalog.CourseATPL, &profile)

	assert.False(t, result.IsEligible)
	assert.Equal(t, 80, result.EligibilityScore)
	require.Len(t, result.MissingRequirements, 1)
	assert.Equal(t, catalog.ReqFlightHours, result.MissingRequirements[0].ID)

	// Experience is a 24 month remediation, rendered in years
	assert.Equal(t, "2 years", result.EstimatedTimeToEligibility)
}

func TestEvaluate_PartitionInvariant(t *testing.T) {
	profiles := []models.UserProfile{
		{},
		{Age: 17, Education: models.Education10th, EnglishProficiency: models.EnglishBasic},
		idealCPLProfile(),
		{Age: 30, Education: models.EducationPostgraduate, Experience: models.ExperienceExperienced,
			MedicalStatus: models.MedicalFit, EnglishProficiency: models.EnglishAdvanced,
			PreviousTraining: []string{models.TrainingCPL, models.TrainingRTR, models.TrainingMultiEngine}},
	}

	for _, courseID := range catalog.CourseIDs() {
		total := len(catalog.Lookup(courseID))
		for _, profile := range profiles {
			result := eligibility.Evaluate(courseID, &profile)

			assert.Equal(t, total, len(result.MetRequirements)+len(result.MissingRequirements),
				"met and missing must partition the requirement list for %s", courseID)

			seen := make(map[string]int)
			for _, req := range result.MetRequirements {
				seen[req.ID]++
			}
			for _, req := range result.MissingRequirements {
				seen[req.ID]++
			}
			for id, count := range seen {
				assert.Equal(t, 1, count, "requirement %s appears %d times", id, count)
			}
		}
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	profiles := []models.UserProfile{
		{},
		{Age: 19},
		idealCPLProfile(),
	}

	for _, courseID := range catalog.CourseIDs() {
		for _, profile := range profiles {
			result := eligibility.Evaluate(courseID, &profile)
			assert.GreaterOrEqual(t, result.EligibilityScore, 0)
			assert.LessOrEqual(t, result.EligibilityScore, 100)
		}
	}
}

func TestCheckEligibility_SortedDescending(t *testing.T) {
	profile := idealCPLProfile()

	check := eligibility.CheckEligibility(&profile, catalog.CourseIDs())

	require.Len(t, check.Results, 4)
	for i := 1; i < len(check.Results); i++ {
		assert.GreaterOrEqual(t, check.Results[i-1].EligibilityScore, check.Results[i].EligibilityScore,
			"results must be sorted descending by score")
	}
	assert.Equal(t, catalog.CourseCPL, check.Results[0].CourseID)
}

func TestCheckEligibility_UnknownCourseSkipped(t *testing.T) {
	profile := idealCPLProfile()

	check := eligibility.CheckEligibility(&profile, []string{"helicopter_ppl", catalog.CourseRTR})

	require.Len(t, check.Results, 1, "unknown courses produce no result at all")
	assert.Equal(t, catalog.CourseRTR, check.Results[0].CourseID)
}

func TestCheckEligibility_NoCourses(t *testing.T) {
	profile := idealCPLProfile()

	check := eligibility.CheckEligibility(&profile, nil)

	assert.Empty(t, check.Results)
	assert.Empty(t, check.PriorityActions)
	assert.Equal(t, "Select a course to check your eligibility.", check.OverallRecommendation)
	assert.Nil(t, check.BestResult())
}

func TestCheckEligibility_Idempotent(t *testing.T) {
	profile := models.UserProfile{
		Age:                21,
		Education:          models.Education12thOther,
		Experience:         models.ExperienceBasic,
		MedicalStatus:      models.MedicalPending,
		EnglishProficiency: models.EnglishBasic,
	}

	first := eligibility.CheckEligibility(&profile, catalog.CourseIDs())
	second := eligibility.CheckEligibility(&profile, catalog.CourseIDs())

	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.OverallRecommendation, second.OverallRecommendation)
	assert.Equal(t, first.PriorityActions, second.PriorityActions)
}

func TestCheckEligibility_EligibleCourseIDs(t *testing.T) {
	profile := models.UserProfile{
		Age:                30,
		Education:          models.EducationGraduate,
		Experience:         models.ExperienceExperienced,
		MedicalStatus:      models.MedicalFit,
		EnglishProficiency: models.EnglishAdvanced,
		PreviousTraining:   []string{models.TrainingCPL, models.TrainingRTR, models.TrainingMultiEngine},
	}

	check := eligibility.CheckEligibility(&profile, catalog.CourseIDs())

	assert.ElementsMatch(t,
		[]string{catalog.CourseCPL, catalog.CourseATPL, catalog.CourseRTR, catalog.CourseTypeRating},
		check.EligibleCourseIDs())
}

func TestEvaluate_MedicalIssuesBlocksMedicalCourses(t *testing.T) {
	profile := idealCPLProfile()
	profile.MedicalStatus = models.MedicalIssues

	cpl := eligibility.Evaluate(catalog.CourseCPL, &profile)
	assert.False(t, cpl.IsEligible)

	// RTR has no medical requirement, so it stays eligible
	rtr := eligibility.Evaluate(catalog.CourseRTR, &profile)
	assert.True(t, rtr.IsEligible)
}

func TestEvaluate_BasicEnglishFailsEverywhere(t *testing.T) {
	profile := idealCPLProfile()
	profile.EnglishProficiency = models.EnglishBasic

	for _, courseID := range catalog.CourseIDs() {
		result := eligibility.Evaluate(courseID, &profile)
		assert.False(t, result.IsEligible, "basic English should fail the language check for %s", courseID)
	}
}
