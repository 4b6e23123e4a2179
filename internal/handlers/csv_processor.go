// Package handlers provides HTTP handlers for the training eligibility engine.
package handlers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/catalog"
	appConfig "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/config"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/database"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/eligibility"
	s3service "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/s3"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/ses"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// CSVProcessorHandler handles S3 events for batch prospect screening.
type CSVProcessorHandler struct {
	s3svc         *s3service.Service
	emailSvc      *ses.Service
	db            *database.DB
	leadRepo      *database.LeadRepository
	crmWebhookURL string
}

// NewCSVProcessorHandler creates a new CSV processor handler.
func NewCSVProcessorHandler(ctx context.Context) (*CSVProcessorHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	s3svc, err := s3service.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 service: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	handler := &CSVProcessorHandler{
		s3svc:         s3svc,
		db:            db,
		leadRepo:      database.NewLeadRepository(db),
		crmWebhookURL: cfg.CRMWebhookURL,
	}

	// Batch summary emails are best-effort
	if emailSvc, err := ses.NewService(ctx); err == nil {
		handler.emailSvc = emailSvc
	}

	return handler, nil
}

// BatchScreenResult is the result of screening one uploaded CSV file.
type BatchScreenResult struct {
	Message   string   `json:"message"`
	BatchID   string   `json:"batch_id"`
	Screened  int      `json:"screened"`
	Qualified int      `json:"qualified"`
	Inserted  int      `json:"inserted"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded prospect CSV files. Every valid row
// is evaluated against the full course catalog and captured as a lead.
func (h *CSVProcessorHandler) Handle(ctx context.Context, s3Event events.S3Event) (BatchScreenResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return BatchScreenResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return BatchScreenResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Processing prospect CSV",
		utils.String("bucket", record.S3.Bucket.Name),
		utils.String("key", key))

	data, err := h.s3svc.DownloadFile(ctx, key)
	if err != nil {
		logger.Error("Failed to download CSV", utils.Error(err))
		return BatchScreenResult{}, fmt.Errorf("failed to download CSV: %w", err)
	}

	batchID := uuid.New().String()

	parser := utils.NewCSVParser()
	prospects, parseErrors := parser.ParseProspects(string(data), batchID)

	if len(prospects) == 0 {
		errMsgs := make([]string, len(parseErrors))
		for i, e := range parseErrors {
			errMsgs[i] = e.Error()
		}
		return BatchScreenResult{
			Message: "No valid prospects found in CSV",
			BatchID: batchID,
			Errors:  errMsgs,
		}, nil
	}

	logger.Info("Parsed prospect CSV",
		utils.String("batchID", batchID),
		utils.Int("validProspects", len(prospects)),
		utils.Int("parseErrors", len(parseErrors)))

	leads, qualified := h.screenProspects(prospects, batchID)

	result, err := h.leadRepo.BulkInsert(ctx, leads)
	if err != nil {
		logger.Error("Failed to insert leads", utils.Error(err))
		return BatchScreenResult{}, fmt.Errorf("failed to insert leads: %w", err)
	}

	logger.Info("Screened batch",
		utils.String("batchID", batchID),
		utils.Int("screened", len(leads)),
		utils.Int("qualified", qualified),
		utils.Int("inserted", result.InsertedCount),
		utils.Int("failed", result.FailedCount))

	h.notifyAdmissions(ctx, batchID, qualified)

	// Archive processed file
	if err := h.s3svc.ArchiveFile(ctx, key); err != nil {
		logger.Warn("Failed to archive file", utils.Error(err))
	}

	// Combine parse errors with insert errors
	allErrors := make([]string, 0)
	for _, e := range parseErrors {
		allErrors = append(allErrors, e.Error())
	}
	allErrors = append(allErrors, result.Errors...)

	// Limit errors in response
	if len(allErrors) > 10 {
		allErrors = allErrors[:10]
	}

	return BatchScreenResult{
		Message:   "Batch screened successfully",
		BatchID:   batchID,
		Screened:  len(leads),
		Qualified: qualified,
		Inserted:  result.InsertedCount,
		Failed:    result.FailedCount + len(parseErrors),
		Errors:    allErrors,
	}, nil
}

// screenProspects runs the full-catalog eligibility check for each prospect
// and builds the lead records.
func (h *CSVProcessorHandler) screenProspects(prospects []*models.ProspectCreate, batchID string) ([]*models.LeadCreate, int) {
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

	return leads, qualified
}

// notifyAdmissions sends qualified-lead alerts for the batch, best-effort.
func (h *CSVProcessorHandler) notifyAdmissions(ctx context.Context, batchID string, qualified int) {
	if h.emailSvc == nil || qualified == 0 {
		return
	}

	leads, err := h.leadRepo.GetByBatchID(ctx, batchID)
	if err != nil {
		utils.GetLogger().Warn("Failed to load batch for notification", utils.Error(err))
		return
	}

	for _, lead := range leads {
		if lead.Status != models.LeadStatusQualified {
			continue
		}
		if _, err := h.emailSvc.SendQualifiedLeadAlert(ctx, lead); err != nil {
			utils.GetLogger().Warn("Failed to send qualified lead alert",
				utils.String("leadID", lead.LeadID),
				utils.Error(err))
		}
	}
}

// Close cleans up resources.
func (h *CSVProcessorHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
