// Package handlers provides HTTP handlers for the training eligibility engine.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	s3service "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/s3"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// PresignedURLHandler handles requests for generating presigned upload URLs.
type PresignedURLHandler struct {
	s3svc *s3service.Service
}

// NewPresignedURLHandler creates a new presigned URL handler.
func NewPresignedURLHandler(ctx context.Context) (*PresignedURLHandler, error) {
	s3svc, err := s3service.NewService(ctx)
	if err != nil {
		return nil, err
	}

	return &PresignedURLHandler{s3svc: s3svc}, nil
}

// PresignedURLResponse is the response structure for presigned URL requests.
type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	S3Key     string `json:"s3Key"`
	ExpiresIn int    `json:"expiresIn"`
}

// Handle processes the API Gateway request for generating presigned URLs.
func (h *PresignedURLHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()

	// CORS headers
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "GET,OPTIONS",
		"Content-Type":                 "application/json",
	}

	// Handle CORS preflight
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	// Get filename from query params
	filename := request.QueryStringParameters["filename"]
	if filename == "" {
		filename = "prospects_" + uuid.New().String()[:8] + ".csv"
	}

	// Validate filename
	if len(filename) < 4 || filename[len(filename)-4:] != ".csv" {
		return errorResponse(headers, http.StatusBadRequest, "Only CSV files are allowed")
	}

	// Generate unique S3 key
	timestamp := time.Now().UTC().Format("2006/01/02")
	s3Key := "uploads/" + timestamp + "/" + uuid.New().String() + "_" + sanitizeFilename(filename)

	presigned, err := h.s3svc.GeneratePresignedUploadURL(ctx, s3Key, "text/csv", 60)
	if err != nil {
		logger.Error("Failed to generate presigned URL", utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, "Failed to generate upload URL")
	}

	response := PresignedURLResponse{
		UploadURL: presigned.URL,
		S3Key:     s3Key,
		ExpiresIn: 3600,
	}

	body, _ := json.Marshal(response)

	logger.Info("Generated presigned URL",
		utils.String("s3Key", s3Key))

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// sanitizeFilename removes unsafe characters from filename.
func sanitizeFilename(filename string) string {
	safe := ""
	for _, r := range filename {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			safe += string(r)
		}
	}
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

// errorResponse creates an error response.
func errorResponse(headers map[string]string, statusCode int, message string) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(map[string]string{
		"error":   http.StatusText(statusCode),
		"message": message,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}
