// Package handlers provides HTTP handlers for the training eligibility engine.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	appConfig "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/config"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/database"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/eligibility"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// EligibilityCheckHandler handles eligibility check requests.
type EligibilityCheckHandler struct {
	db            *database.DB
	leadRepo      *database.LeadRepository
	crmWebhookURL string
}

// NewEligibilityCheckHandler creates a new eligibility check handler.
// Lead capture is skipped when the database is unreachable; the check itself
// never depends on it.
func NewEligibilityCheckHandler() (*EligibilityCheckHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return &EligibilityCheckHandler{}, nil
	}

	handler := &EligibilityCheckHandler{
		crmWebhookURL: cfg.CRMWebhookURL,
	}

	db, err := database.New(cfg)
	if err != nil {
		utils.GetLogger().Warn("Database unavailable, lead capture disabled", utils.Error(err))
		return handler, nil
	}

	handler.db = db
	handler.leadRepo = database.NewLeadRepository(db)
	return handler, nil
}

// ProfileInput is the raw profile as submitted by the frontend. Free-form
// values are normalized before evaluation.
type ProfileInput struct {
	Age                int      `json:"age"`
	Education          string   `json:"education"`
	Experience         string   `json:"experience"`
	MedicalStatus      string   `json:"medical_status"`
	EnglishProficiency string   `json:"english_proficiency"`
	PreviousTraining   []string `json:"previous_training,omitempty"`
	Location           string   `json:"location,omitempty"`
}

// CheckRequest is the request body for an eligibility check. Contact details
// are optional; when an email is present the check is also captured as a lead.
type CheckRequest struct {
	Name    string       `json:"name,omitempty"`
	Email   string       `json:"email,omitempty"`
	Phone   string       `json:"phone,omitempty"`
	Profile ProfileInput `json:"profile"`
	Courses []string     `json:"courses"`
}

// CheckResponse wraps the check result with lead capture metadata.
type CheckResponse struct {
	*models.EligibilityCheckResult
	LeadID       string `json:"lead_id,omitempty"`
	LeadCaptured bool   `json:"lead_captured"`
}

// Handle processes API Gateway eligibility check requests.
func (h *EligibilityCheckHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()

	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req CheckRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
	}

	profile := BuildProfile(req.Profile)

	courses := req.Courses
	if len(courses) == 0 {
		courses = catalog.CourseIDs()
	}

	check := eligibility.CheckEligibility(&profile, courses)

	response := CheckResponse{EligibilityCheckResult: check}

	if req.Email != "" && h.leadRepo != nil {
		leadID, err := h.captureLead(ctx, &req, check)
		if err != nil {
			logger.Warn("Failed to capture lead",
				utils.String("email", req.Email),
				utils.Error(err))
		} else {
			response.LeadID = leadID
			response.LeadCaptured = true
		}
	}

	body, _ := json.Marshal(response)

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// captureLead stores the check as a lead and forwards it to the CRM.
func (h *EligibilityCheckHandler) captureLead(ctx context.Context, req *CheckRequest, check *models.EligibilityCheckResult) (string, error) {
	leadID := uuid.New().String()

	lead := models.CaptureFromCheck(leadID, req.Name, req.Email, req.Phone,
		check, models.LeadSourceEligibilityChecker, "")

	if _, err := h.leadRepo.Create(ctx, lead); err != nil {
		return "", err
	}

	utils.GetLogger().Info("Captured lead",
		utils.String("leadID", leadID),
		utils.String("bestCourse", lead.BestCourseID),
		utils.Int("bestScore", lead.BestScore))

	if h.crmWebhookURL != "" {
		if err := ForwardLead(ctx, h.crmWebhookURL, lead); err != nil {
			utils.GetLogger().Warn("Failed to forward lead to CRM",
				utils.String("leadID", leadID),
				utils.Error(err))
		}
	}

	return leadID, nil
}

// BuildProfile normalizes raw frontend input into a typed profile.
func BuildProfile(in ProfileInput) models.UserProfile {
	return models.UserProfile{
		Age:                in.Age,
		Education:          models.NormalizeEducation(in.Education),
		Experience:         models.NormalizeExperience(in.Experience),
		MedicalStatus:      models.NormalizeMedicalStatus(in.MedicalStatus),
		EnglishProficiency: models.NormalizeEnglishProficiency(in.EnglishProficiency),
		PreviousTraining:   models.ParsePreviousTraining(strings.Join(in.PreviousTraining, ",")),
		Location:           strings.TrimSpace(in.Location),
	}
}

// Close cleans up resources.
func (h *EligibilityCheckHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
