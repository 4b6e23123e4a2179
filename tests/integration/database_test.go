// Package integration_test contains integration tests
package integration_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/services/database"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	// Skip integration tests if no database URL is provided
	if os.Getenv("DATABASE_URL") == "" {
		os.Exit(0)
	}

	// Setup
	var err error
	testDB, err = database.NewFromURL(os.Getenv("DATABASE_URL"))
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}

	// Run tests
	code := m.Run()

	// Cleanup
	testDB.Close()
	os.Exit(code)
}

func TestDatabaseConnection(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := testDB.HealthCheck(ctx); err != nil {
		t.Errorf("Database health check failed: %v", err)
	}
}

func testLead(email string) *models.LeadCreate {
	return &models.LeadCreate{
		LeadID: fmt.Sprintf("test-%d", time.Now().UnixNano()),
		Name:   "Integration Test Lead",
		Email:  email,
		Profile: models.UserProfile{
			Age:                21,
			Education:          models.Education12thPCM,
			Experience:         models.ExperienceNone,
			MedicalStatus:      models.MedicalFit,
			EnglishProficiency: models.EnglishIntermediate,
			PreviousTraining:   []string{models.TrainingRTR},
		},
		BestCourseID:     "cpl",
		BestScore:        100,
		IsEligible:       true,
		Status:           models.LeadStatusQualified,
		Source:           models.LeadSourceEligibilityChecker,
		CheckCompletedAt: time.Now().UTC(),
	}
}

func TestLeadRepository_CreateAndGet(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}

	ctx := context.Background()
	repo := database.NewLeadRepository(testDB)

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())

	id, err := repo.Create(ctx, testLead(email))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero lead ID")
	}

	lead, err := repo.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if lead == nil {
		t.Fatal("Expected lead, got nil")
	}
	if lead.BestCourseID != "cpl" || lead.BestScore != 100 {
		t.Errorf("Unexpected lead snapshot: %+v", lead)
	}
	if lead.Profile.Age != 21 {
		t.Errorf("Profile round trip failed: %+v", lead.Profile)
	}
}

func TestLeadRepository_UpsertOnEmail(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}

	ctx := context.Background()
	repo := database.NewLeadRepository(testDB)

	email := fmt.Sprintf("it-upsert-%d@example.com", time.Now().UnixNano())

	first, err := repo.Create(ctx, testLead(email))
	if err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	updated := testLead(email)
	updated.BestScore = 80
	second, err := repo.Create(ctx, updated)
	if err != nil {
		t.Fatalf("Second create failed: %v", err)
	}

	if first != second {
		t.Errorf("Expected upsert to reuse row %d, got %d", first, second)
	}

	lead, err := repo.GetByEmail(ctx, email)
	if err != nil || lead == nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if lead.BestScore != 80 {
		t.Errorf("Expected updated score 80, got %d", lead.BestScore)
	}
}

func TestLeadRepository_StatusLifecycle(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}

	ctx := context.Background()
	repo := database.NewLeadRepository(testDB)

	email := fmt.Sprintf("it-status-%d@example.com", time.Now().UnixNano())

	id, err := repo.Create(ctx, testLead(email))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.MarkAsNotified(ctx, id); err != nil {
		t.Fatalf("MarkAsNotified failed: %v", err)
	}

	lead, err := repo.GetByID(ctx, id)
	if err != nil || lead == nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if lead.Status != models.LeadStatusNotified {
		t.Errorf("Expected status notified, got %s", lead.Status)
	}
	if lead.NotifiedAt == nil {
		t.Error("Expected notified_at to be set")
	}

	if err := repo.UpdateStatus(ctx, id, models.LeadStatusConverted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
}

func TestLeadRepository_BulkInsertAndBatchSummary(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}

	ctx := context.Background()
	repo := database.NewLeadRepository(testDB)

	batchID := fmt.Sprintf("it-batch-%d", time.Now().UnixNano())

	var leads []*models.LeadCreate
	for i := 0; i < 3; i++ {
		lead := testLead(fmt.Sprintf("it-bulk-%d-%d@example.com", time.Now().UnixNano(), i))
		lead.BatchID = batchID
		if i == 2 {
			lead.IsEligible = false
			lead.BestScore = 40
			lead.Status = models.LeadStatusNew
		}
		leads = append(leads, lead)
	}

	result, err := repo.BulkInsert(ctx, leads)
	if err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
	if result.InsertedCount != 3 {
		t.Errorf("Expected 3 inserted, got %d (errors: %v)", result.InsertedCount, result.Errors)
	}

	summary, err := repo.GetBatchSummary(ctx, batchID)
	if err != nil {
		t.Fatalf("GetBatchSummary failed: %v", err)
	}
	if summary.TotalLeads != 3 {
		t.Errorf("Expected 3 leads in batch, got %d", summary.TotalLeads)
	}
	if summary.QualifiedLeads != 2 {
		t.Errorf("Expected 2 qualified leads, got %d", summary.QualifiedLeads)
	}
}
