package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

func TestCatalog_CourseOrder(t *testing.T) {
	ids := catalog.CourseIDs()

	require.Equal(t, []string{
		catalog.CourseCPL,
		catalog.CourseATPL,
		catalog.CourseRTR,
		catalog.CourseTypeRating,
	}, ids)
}

func TestCatalog_RequirementCounts(t *testing.T) {
	assert.Len(t, catalog.Lookup(catalog.CourseCPL), 5)
	assert.Len(t, catalog.Lookup(catalog.CourseATPL), 5)
	assert.Len(t, catalog.Lookup(catalog.CourseRTR), 3)
	assert.Len(t, catalog.Lookup(catalog.CourseTypeRating), 4)
}

func TestCatalog_RTRPrereqIsOptional(t *testing.T) {
	for _, req := range catalog.Lookup(catalog.CourseCPL) {
		if req.ID == catalog.ReqRTRPrereqCPL {
			assert.False(t, req.IsMandatory, "RTR is a non-mandatory CPL requirement")
			return
		}
	}
	t.Fatal("RTR prerequisite not found in CPL requirements")
}

func TestCatalog_AllOtherRequirementsMandatory(t *testing.T) {
	for _, courseID := range catalog.CourseIDs() {
		for _, req := range catalog.Lookup(courseID) {
			if req.ID == catalog.ReqRTRPrereqCPL {
				continue
			}
			assert.True(t, req.IsMandatory, "requirement %s in %s should be mandatory", req.ID, courseID)
		}
	}
}

func TestCatalog_TypeRatingHasNoAgeRequirement(t *testing.T) {
	for _, req := range catalog.Lookup(catalog.CourseTypeRating) {
		assert.NotEqual(t, models.CategoryAge, req.Category)
	}
}

func TestCatalog_UnknownCourse(t *testing.T) {
	assert.Empty(t, catalog.Lookup("helicopter_ppl"))
	assert.Equal(t, "helicopter_ppl", catalog.CourseName("helicopter_ppl"))
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	reqs := catalog.Lookup(catalog.CourseCPL)
	require.NotEmpty(t, reqs)

	reqs[0].Requirement = "mutated"

	fresh := catalog.Lookup(catalog.CourseCPL)
	assert.NotEqual(t, "mutated", fresh[0].Requirement, "catalog must not be mutable through Lookup results")
}

func TestCatalog_ValidCategories(t *testing.T) {
	for _, courseID := range catalog.CourseIDs() {
		for _, req := range catalog.Lookup(courseID) {
			assert.True(t, req.Category.IsValid(), "requirement %s has invalid category %q", req.ID, req.Category)
			assert.NotEmpty(t, req.Requirement)
			assert.NotEmpty(t, req.Description)
		}
	}
}

func TestCatalog_UniqueRequirementIDs(t *testing.T) {
	seen := make(map[string]string)
	for _, courseID := range catalog.CourseIDs() {
		for _, req := range catalog.Lookup(courseID) {
			if other, ok := seen[req.ID]; ok {
				t.Errorf("requirement ID %s appears in both %s and %s", req.ID, other, courseID)
			}
			seen[req.ID] = courseID
		}
	}
}
