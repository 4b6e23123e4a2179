// Package models defines the data structures for the training eligibility engine.
package models

import (
	"time"
)

// EligibilityResult is the evaluator's output for one course.
// MetRequirements and MissingRequirements partition the course's full
// requirement list: every requirement appears in exactly one of the two.
type EligibilityResult struct {
	CourseID                  string                   `json:"course_id"`
	CourseName                string                   `json:"course_name"`
	IsEligible                bool                     `json:"is_eligible"`
	EligibilityScore          int                      `json:"eligibility_score"`
	MetRequirements           []EligibilityRequirement `json:"met_requirements"`
	MissingRequirements       []EligibilityRequirement `json:"missing_requirements"`
	Recommendations           []string                 `json:"recommendations"`
	NextSteps                 []string                 `json:"next_steps"`
	EstimatedTimeToEligibility string                  `json:"estimated_time_to_eligibility"`
}

// EligibilityCheckResult is the whole-session output of a check.
// Results are sorted descending by eligibility score.
type EligibilityCheckResult struct {
	UserProfile           UserProfile         `json:"user_profile"`
	Results               []EligibilityResult `json:"results"`
	OverallRecommendation string              `json:"overall_recommendation"`
	PriorityActions       []string            `json:"priority_actions"`
	CompletedAt           time.Time           `json:"completed_at"`
}

// BestResult returns the highest-scoring result, or nil for an empty check.
func (r *EligibilityCheckResult) BestResult() *EligibilityResult {
	if len(r.Results) == 0 {
		return nil
	}
	return &r.Results[0]
}

// EligibleCourseIDs returns the IDs of all fully eligible courses, in score order.
func (r *EligibilityCheckResult) EligibleCourseIDs() []string {
	var ids []string
	for _, res := range r.Results {
		if res.IsEligible {
			ids = append(ids, res.CourseID)
		}
	}
	return ids
}
