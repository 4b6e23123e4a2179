// Package e2e_test contains end-to-end tests
package e2e_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

// Skip e2e tests if not explicitly enabled
func skipIfNotE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") != "true" {
		t.Skip("E2E tests not enabled. Set E2E_TESTS=true to run")
	}
}

func apiURL(t *testing.T) string {
	url := os.Getenv("API_URL")
	if url == "" {
		t.Skip("API_URL not set")
	}
	return url
}

func TestE2E_HealthEndpoint(t *testing.T) {
	skipIfNotE2E(t)

	resp, err := http.Get(apiURL(t) + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestE2E_CoursesEndpoint(t *testing.T) {
	skipIfNotE2E(t)

	resp, err := http.Get(apiURL(t) + "/api/courses")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
		Data    []struct {
			ID           string `json:"id"`
			Requirements []struct {
				ID string `json:"id"`
			} `json:"requirements"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(result.Data) != 4 {
		t.Errorf("Expected 4 courses, got %d", len(result.Data))
	}
}

func TestE2E_EligibilityCheckFlow(t *testing.T) {
	skipIfNotE2E(t)

	requestBody := map[string]interface{}{
		"profile": map[string]interface{}{
			"age":                 20,
			"education":           "12th PCM",
			"experience":          "none",
			"medical_status":      "fit",
			"english_proficiency": "intermediate",
			"previous_training":   []string{"RTR"},
		},
		"courses": []string{"cpl"},
	}
	body, _ := json.Marshal(requestBody)

	resp, err := http.Post(apiURL(t)+"/api/eligibility/check", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Results []struct {
				CourseID                   string `json:"course_id"`
				IsEligible                 bool   `json:"is_eligible"`
				EligibilityScore           int    `json:"eligibility_score"`
				EstimatedTimeToEligibility string `json:"estimated_time_to_eligibility"`
			} `json:"results"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(result.Data.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(result.Data.Results))
	}

	cpl := result.Data.Results[0]
	if !cpl.IsEligible || cpl.EligibilityScore != 100 {
		t.Errorf("Expected fully eligible CPL, got %+v", cpl)
	}
	if cpl.EstimatedTimeToEligibility != "Eligible now" {
		t.Errorf("Expected 'Eligible now', got %q", cpl.EstimatedTimeToEligibility)
	}
}

func TestE2E_BatchScreeningFlow(t *testing.T) {
	skipIfNotE2E(t)

	csvContent := `name,email,age,education,experience,medical_status,english_proficiency,previous_training
E2E Prospect,e2e-prospect@example.com,21,12th_pcm,none,fit,intermediate,RTR`

	resp, err := http.Post(apiURL(t)+"/api/upload", "text/csv", bytes.NewReader([]byte(csvContent)))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			BatchID   string `json:"batch_id"`
			Screened  int    `json:"screened"`
			Qualified int    `json:"qualified"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Data.Screened != 1 || result.Data.Qualified != 1 {
		t.Errorf("Expected 1 screened and qualified, got %+v", result.Data)
	}

	// Batch summary should reflect the screened prospect
	summaryResp, err := http.Get(apiURL(t) + "/api/batch-summary?batch_id=" + result.Data.BatchID)
	if err != nil {
		t.Fatalf("Summary request failed: %v", err)
	}
	defer summaryResp.Body.Close()

	if summaryResp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", summaryResp.StatusCode)
	}
}
