// Package main provides a local HTTP server for development and testing.
// It exposes the eligibility check, batch screening and lead endpoints
// needed by the frontend without requiring the Lambda deployment.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/config"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/handlers"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/database"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/eligibility"
	s3service "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/s3"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// Server holds all dependencies
type Server struct {
	db       *database.DB
	leadRepo *database.LeadRepository
	s3svc    *s3service.Service
	config   *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ScreenResponse contains batch screening results
type ScreenResponse struct {
	BatchID      string   `json:"batch_id"`
	TotalRows    int      `json:"total_rows"`
	Screened     int      `json:"screened"`
	Qualified    int      `json:"qualified"`
	Inserted     int      `json:"inserted"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"error_details,omitempty"`
	ProcessingMs int64    `json:"processing_ms"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{}
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run without lead capture")
	}

	server := &Server{
		db:     db,
		config: cfg,
	}

	if db != nil {
		server.leadRepo = database.NewLeadRepository(db)
	}

	// S3 is optional locally; exports fall back to direct download
	if s3svc, err := s3service.NewService(context.Background()); err == nil {
		server.s3svc = s3svc
	} else {
		log.Printf("Warning: Could not initialize S3 service: %v", err)
	}

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Course catalog
	mux.HandleFunc("/api/courses", server.coursesHandler)

	// Eligibility check (single prospect)
	mux.HandleFunc("/api/eligibility/check", server.checkHandler)

	// Direct CSV upload and screening (for local testing)
	mux.HandleFunc("/api/upload", server.uploadHandler)

	// Lead endpoints
	mux.HandleFunc("/api/leads", server.leadsHandler)
	mux.HandleFunc("/api/leads/forward", server.forwardHandler)

	// Batch reporting
	mux.HandleFunc("/api/batch-summary", server.batchSummaryHandler)
	mux.HandleFunc("/api/export", server.exportHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Printf("Training Eligibility Engine API Server")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("Health: http://localhost:%s/health", port)
	log.Println("")

	// Start server (this blocks until error)
	log.Printf("Starting HTTP server on %s...", addr)
	serverErr := http.ListenAndServe(addr, handler)
	if serverErr != nil {
		log.Fatalf("Server failed: %v", serverErr)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	response := Response{
		Success: true,
		Message: "Training Eligibility Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// coursesHandler returns the course catalog with full requirement lists.
func (s *Server) coursesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    catalog.Courses(),
	})
}

// checkHandler runs an eligibility check and optionally captures the lead.
func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req handlers.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	profile := handlers.BuildProfile(req.Profile)

	courses := req.Courses
	if len(courses) == 0 {
		courses = catalog.CourseIDs()
	}

	check := eligibility.CheckEligibility(&profile, courses)

	response := handlers.CheckResponse{EligibilityCheckResult: check}

	if req.Email != "" && s.leadRepo != nil {
		leadID := uuid.New().String()
		lead := models.CaptureFromCheck(leadID, req.Name, req.Email, req.Phone,
			check, models.LeadSourceEligibilityChecker, "")

		if _, err := s.leadRepo.Create(r.Context(), lead); err != nil {
			log.Printf("Warning: Failed to capture lead: %v", err)
		} else {
			response.LeadID = leadID
			response.LeadCaptured = true

			if s.config.CRMWebhookURL != "" {
				if err := handlers.ForwardLead(r.Context(), s.config.CRMWebhookURL, lead); err != nil {
					log.Printf("Warning: Failed to forward lead to CRM: %v", err)
				}
			}
		}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// uploadHandler accepts a CSV body (raw or multipart) and screens it immediately.
func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.leadRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	content, err := readCSVBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	start := time.Now()
	batchID := uuid.New().String()

	parser := utils.NewCSVParser()
	prospects, parseErrors := parser.ParseProspects(string(content), batchID)

	if len(prospects) == 0 {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No valid prospects found in CSV",
			Data:    errorStrings(parseErrors),
		})
		return
	}

	courseIDs := catalog.CourseIDs()
	leads := make([]*models.LeadCreate, 0, len(prospects))
	qualified := 0

	for _, prospect := range prospects {
		check := eligibility.CheckEligibility(&prospect.Profile, courseIDs)
		lead := models.CaptureFromCheck(uuid.New().String(),
			prospect.Name, prospect.Email, prospect.Phone,
			check, models.LeadSourceCSVBatch, batchID)
		if lead.Status == models.LeadStatusQualified {
			qualified++
		}
		leads = append(leads, lead)
	}

	result, err := s.leadRepo.BulkInsert(r.Context(), leads)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fmt.Sprintf("Failed to insert leads: %v", err),
		})
		return
	}

	errorDetails := errorStrings(parseErrors)
	errorDetails = append(errorDetails, result.Errors...)
	if len(errorDetails) > 10 {
		errorDetails = errorDetails[:10]
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Batch screened successfully",
		Data: ScreenResponse{
			BatchID:      batchID,
			TotalRows:    len(prospects) + len(parseErrors),
			Screened:     len(leads),
			Qualified:    qualified,
			Inserted:     result.InsertedCount,
			Errors:       result.FailedCount + len(parseErrors),
			ErrorDetails: errorDetails,
			ProcessingMs: time.Since(start).Milliseconds(),
		},
	})
}

// leadsHandler lists captured leads, most recent or by batch.
func (s *Server) leadsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.leadRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	var leads []*models.Lead
	var err error

	if batchID := r.URL.Query().Get("batch_id"); batchID != "" {
		leads, err = s.leadRepo.GetByBatchID(r.Context(), batchID)
	} else {
		leads, err = s.leadRepo.GetRecent(r.Context(), limit)
	}

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fmt.Sprintf("Failed to load leads: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    leads,
	})
}

// forwardHandler pushes qualified leads to the CRM webhook.
func (s *Server) forwardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.leadRepo == nil || s.config.CRMWebhookURL == "" {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Lead forwarding not configured",
		})
		return
	}

	leads, err := s.leadRepo.GetQualified(r.Context(), 50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fmt.Sprintf("Failed to load qualified leads: %v", err),
		})
		return
	}

	forwarded := 0
	for _, lead := range leads {
		create := models.CaptureFromCheck(lead.LeadID, lead.Name, lead.Email, lead.Phone,
			&models.EligibilityCheckResult{
				UserProfile: lead.Profile,
				CompletedAt: lead.CheckCompletedAt,
			}, lead.Source, lead.BatchID)
		create.BestCourseID = lead.BestCourseID
		create.BestScore = lead.BestScore
		create.IsEligible = lead.IsEligible

		if err := handlers.ForwardLead(r.Context(), s.config.CRMWebhookURL, create); err != nil {
			log.Printf("Warning: Failed to forward lead %s: %v", lead.LeadID, err)
			continue
		}
		if err := s.leadRepo.MarkAsNotified(r.Context(), lead.ID); err != nil {
			log.Printf("Warning: Failed to mark lead %s notified: %v", lead.LeadID, err)
		}
		forwarded++
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Forwarded %d lead(s)", forwarded),
	})
}

// batchSummaryHandler reports aggregate statistics for one batch.
func (s *Server) batchSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.leadRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	batchID := r.URL.Query().Get("batch_id")
	if batchID == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Missing required parameter: batch_id",
		})
		return
	}

	summary, err := s.leadRepo.GetBatchSummary(r.Context(), batchID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fmt.Sprintf("Failed to get batch summary: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// exportHandler builds a lead export CSV. With upload=true and S3 configured
// the file is stored in the bucket and a presigned download link is returned;
// otherwise the CSV streams back directly.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.leadRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	batchID := r.URL.Query().Get("batch_id")

	var leads []*models.Lead
	var err error
	if batchID != "" {
		leads, err = s.leadRepo.GetByBatchID(r.Context(), batchID)
	} else {
		leads, err = s.leadRepo.GetRecent(r.Context(), 1000)
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fmt.Sprintf("Failed to load leads: %v", err),
		})
		return
	}

	csvContent, err := utils.BuildLeadExportCSV(leads)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   fmt.Sprintf("Failed to build export: %v", err),
		})
		return
	}

	if r.URL.Query().Get("upload") == "true" && s.s3svc != nil {
		key := utils.ExportKey(batchID, time.Now())
		presigned, err := s.s3svc.UploadLeadExport(r.Context(), key, csvContent, 60)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   fmt.Sprintf("Failed to upload export: %v", err),
			})
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    presigned,
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leads_export.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, csvContent)
}

// readCSVBody extracts CSV content from a raw or multipart request body.
func readCSVBody(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return nil, fmt.Errorf("failed to parse multipart form: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return content, nil
}

// errorStrings converts an error slice to messages.
func errorStrings(errs []error) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
