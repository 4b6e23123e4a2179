// Package handlers provides HTTP handlers for the training eligibility engine.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	appConfig "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/config"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/database"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// LeadForwarderHandler forwards captured leads to the CRM webhook.
type LeadForwarderHandler struct {
	db            *database.DB
	leadRepo      *database.LeadRepository
	crmWebhookURL string
}

// NewLeadForwarderHandler creates a new lead forwarder handler.
func NewLeadForwarderHandler() (*LeadForwarderHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &LeadForwarderHandler{
		db:            db,
		leadRepo:      database.NewLeadRepository(db),
		crmWebhookURL: cfg.CRMWebhookURL,
	}, nil
}

// ForwardRequest is the request body for forwarding leads.
type ForwardRequest struct {
	LeadID int64  `json:"lead_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// ForwardResponse is the response for a forward request.
type ForwardResponse struct {
	Message   string   `json:"message"`
	Forwarded int      `json:"forwarded"`
	Errors    []string `json:"errors,omitempty"`
}

// Handle processes API Gateway requests to forward leads to the CRM.
// With a lead_id or email it forwards that one lead; otherwise it drains the
// qualified, not-yet-notified backlog.
func (h *LeadForwarderHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
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

	if h.crmWebhookURL == "" {
		return errorResponse(headers, http.StatusServiceUnavailable, "CRM webhook not configured")
	}

	var req ForwardRequest
	if request.Body != "" {
		if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
			return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
		}
	}

	leads, err := h.resolveLeads(ctx, &req)
	if err != nil {
		logger.Error("Failed to load leads", utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, "Failed to load leads")
	}

	if len(leads) == 0 {
		body, _ := json.Marshal(ForwardResponse{Message: "No leads to forward"})
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
			Body:       string(body),
		}, nil
	}

	forwarded := 0
	var forwardErrors []string
	for _, lead := range leads {
		if err := forwardStoredLead(ctx, h.crmWebhookURL, lead); err != nil {
			forwardErrors = append(forwardErrors, fmt.Sprintf("lead %s: %v", lead.LeadID, err))
			continue
		}
		if err := h.leadRepo.MarkAsNotified(ctx, lead.ID); err != nil {
			logger.Warn("Failed to mark lead as notified",
				utils.String("leadID", lead.LeadID),
				utils.Error(err))
		}
		forwarded++
	}

	logger.Info("Forwarded leads to CRM",
		utils.Int("forwarded", forwarded),
		utils.Int("failed", len(forwardErrors)))

	response := ForwardResponse{
		Message:   fmt.Sprintf("Forwarded %d lead(s)", forwarded),
		Forwarded: forwarded,
		Errors:    forwardErrors,
	}

	body, _ := json.Marshal(response)

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// resolveLeads finds the leads the request refers to.
func (h *LeadForwarderHandler) resolveLeads(ctx context.Context, req *ForwardRequest) ([]*models.Lead, error) {
	if req.LeadID != 0 {
		lead, err := h.leadRepo.GetByID(ctx, req.LeadID)
		if err != nil || lead == nil {
			return nil, err
		}
		return []*models.Lead{lead}, nil
	}

	if req.Email != "" {
		lead, err := h.leadRepo.GetByEmail(ctx, req.Email)
		if err != nil || lead == nil {
			return nil, err
		}
		return []*models.Lead{lead}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	return h.leadRepo.GetQualified(ctx, limit)
}

// ForwardLead sends a freshly captured lead to the CRM webhook.
func ForwardLead(ctx context.Context, webhookURL string, lead *models.LeadCreate) error {
	payload := map[string]interface{}{
		"tool_type":      "eligibility_checker",
		"lead_id":        lead.LeadID,
		"name":           lead.Name,
		"email":          lead.Email,
		"phone":          lead.Phone,
		"best_course_id": lead.BestCourseID,
		"best_score":     lead.BestScore,
		"is_eligible":    lead.IsEligible,
		"source":         string(lead.Source),
		"completed_at":   lead.CheckCompletedAt.UTC().Format(time.RFC3339),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}

	return postWebhook(ctx, webhookURL, payload)
}

// forwardStoredLead sends a stored lead to the CRM webhook.
func forwardStoredLead(ctx context.Context, webhookURL string, lead *models.Lead) error {
	payload := map[string]interface{}{
		"tool_type":      "eligibility_checker",
		"lead_id":        lead.LeadID,
		"name":           lead.Name,
		"email":          lead.Email,
		"phone":          lead.Phone,
		"best_course_id": lead.BestCourseID,
		"best_score":     lead.BestScore,
		"is_eligible":    lead.IsEligible,
		"source":         string(lead.Source),
		"batch_id":       lead.BatchID,
		"completed_at":   lead.CheckCompletedAt.UTC().Format(time.RFC3339),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}

	return postWebhook(ctx, webhookURL, payload)
}

// postWebhook sends a JSON POST to the webhook URL.
func postWebhook(ctx context.Context, webhookURL string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// Close cleans up resources.
func (h *LeadForwarderHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
