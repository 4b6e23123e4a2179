package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

func TestCSVParser_ValidFile(t *testing.T) {
	csvContent := `name,email,age,education,experience,medical_status,english_proficiency,previous_training
Asha Verma,asha@example.com,21,12th PCM,none,fit,intermediate,RTR
Ravi Kumar,ravi@example.com,26,graduate,student,pending,advanced,"CPL;RTR"`

	parser := utils.NewCSVParser()
	prospects, errors := parser.ParseProspects(csvContent, "test-batch-001")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, prospects, 2, "Expected 2 prospects")

	// Verify first prospect
	assert.Equal(t, "Asha Verma", prospects[0].Name)
	assert.Equal(t, "asha@example.com", prospects[0].Email)
	assert.Equal(t, 21, prospects[0].Profile.Age)
	assert.Equal(t, models.Education12thPCM, prospects[0].Profile.Education)
	assert.Equal(t, []string{models.TrainingRTR}, prospects[0].Profile.PreviousTraining)
	assert.Equal(t, "test-batch-001", prospects[0].BatchID)

	// Delimited training list on the second row
	assert.Equal(t, []string{models.TrainingCPL, models.TrainingRTR}, prospects[1].Profile.PreviousTraining)
}

func TestCSVParser_ColumnAliases(t *testing.T) {
	// Alternative column names map to the standard set
	csvContent := `full_name,email_address,age,qualification,flying_experience,medical,english_level
Asha Verma,asha@example.com,21,12th_pcm,none,fit,intermediate`

	parser := utils.NewCSVParser()
	prospects, errors := parser.ParseProspects(csvContent, "batch-123")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, prospects, 1, "Expected 1 prospect")

	assert.Equal(t, "Asha Verma", prospects[0].Name)
	assert.Equal(t, "asha@example.com", prospects[0].Email)
}

func TestCSVParser_MissingRequiredColumns(t *testing.T) {
	// Missing medical_status and english_proficiency
	csvContent := `name,email,age,education,experience
Asha Verma,asha@example.com,21,12th_pcm,none`

	parser := utils.NewCSVParser()
	prospects, errors := parser.ParseProspects(csvContent, "test-batch")

	assert.Empty(t, prospects, "Expected no valid prospects")
	require.NotEmpty(t, errors, "Expected errors for missing columns")
	assert.ErrorIs(t, errors[0], utils.ErrMissingColumns)
}

func TestCSVParser_EmptyFile(t *testing.T) {
	parser := utils.NewCSVParser()
	prospects, errors := parser.ParseProspects("", "test-batch")

	assert.Empty(t, prospects, "Expected no prospects")
	require.NotEmpty(t, errors, "Expected error for empty file")
	assert.ErrorIs(t, errors[0], utils.ErrEmptyCSV)
}

func TestCSVParser_InvalidRowsReportLineNumbers(t *testing.T) {
	csvContent := `name,email,age,education,experience,medical_status,english_proficiency
Asha Verma,asha@example.com,21,12th_pcm,none,fit,intermediate
,missing-name@example.com,21,12th_pcm,none,fit,intermediate
Ravi Kumar,ravi@example.com,15,12th_pcm,none,fit,intermediate`

	parser := utils.NewCSVParser()
	prospects, errors := parser.ParseProspects(csvContent, "test-batch")

	require.Len(t, prospects, 1, "Only the valid row should survive")
	require.Len(t, errors, 2)
	assert.Contains(t, errors[0].Error(), "line 3")
	assert.Contains(t, errors[1].Error(), "line 4")
}

func TestCSVParser_FloatAge(t *testing.T) {
	csvContent := `name,email,age,education,experience,medical_status,english_proficiency
Asha Verma,asha@example.com,21.0,12th_pcm,none,fit,intermediate`

	parser := utils.NewCSVParser()
	prospects, errors := parser.ParseProspects(csvContent, "test-batch")

	require.Empty(t, errors)
	require.Len(t, prospects, 1)
	assert.Equal(t, 21, prospects[0].Profile.Age)
}

func TestValidateCSVStructure(t *testing.T) {
	csvContent := `name,email,age,education,experience,medical_status,english_proficiency
Asha Verma,asha@example.com,21,12th_pcm,none,fit,intermediate`

	result, err := utils.ValidateCSVStructure(csvContent)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1, result.RowCount)
	assert.Empty(t, result.MissingColumns)
}

func TestValidateCSVStructure_MissingColumns(t *testing.T) {
	csvContent := `name,email
Asha Verma,asha@example.com`

	result, err := utils.ValidateCSVStructure(csvContent)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingColumns, "age")
	assert.Contains(t, result.MissingColumns, "medical_status")
}
