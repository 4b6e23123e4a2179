// Package utils provides utility functions for the training eligibility engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
)

// RequiredColumns defines the columns that must be present in a prospect CSV.
var RequiredColumns = []string{
	"name",
	"email",
	"age",
	"education",
	"experience",
	"medical_status",
	"english_proficiency",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	// name aliases
	"full_name":      "name",
	"fullname":       "name",
	"student_name":   "name",
	"candidate_name": "name",

	// email aliases
	"emailaddress":  "email",
	"email_address": "email",
	"mail":          "email",

	// phone aliases
	"phone_number": "phone",
	"phonenumber":  "phone",
	"mobile":       "phone",
	"contact":      "phone",

	// education aliases
	"qualification":     "education",
	"education_level":   "education",
	"highest_education": "education",

	// experience aliases
	"flying_experience": "experience",
	"flight_experience": "experience",
	"experience_level":  "experience",

	// medical aliases
	"medical":          "medical_status",
	"medical_fitness":  "medical_status",
	"medicalstatus":    "medical_status",
	"medical_class":    "medical_status",

	// english aliases
	"english":            "english_proficiency",
	"english_level":      "english_proficiency",
	"englishproficiency": "english_proficiency",
	"language":           "english_proficiency",

	// training aliases
	"previous_licenses": "previous_training",
	"prior_training":    "previous_training",
	"licenses":          "previous_training",
	"certifications":    "previous_training",

	// location aliases
	"city":  "location",
	"state": "location",
}

// CSVParser handles parsing of prospect CSV files.
type CSVParser struct {
	columnMapping map[string]int
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping: make(map[string]int),
	}
}

// ParseProspects parses CSV content and returns a slice of ProspectCreate objects.
func (p *CSVParser) ParseProspects(content string, batchID string) ([]*models.ProspectCreate, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	// Build column mapping
	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	// Parse data rows
	var prospects []*models.ProspectCreate
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		prospect, err := p.parseRow(record, batchID)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		// Validate prospect
		if err := models.ValidateProspectCreate(prospect); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		prospects = append(prospects, prospect)
	}

	if len(prospects) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return prospects, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)

	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		normalized = strings.ReplaceAll(normalized, " ", "_")

		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}

		p.columnMapping[normalized] = i
	}

	// Check for required columns
	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single CSV row into a ProspectCreate object.
func (p *CSVParser) parseRow(record []string, batchID string) (*models.ProspectCreate, error) {
	getValue := func(column string) string {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := getValue("name")
	email := getValue("email")

	ageStr := getValue("age")
	if ageStr == "" {
		return nil, errors.New("missing age")
	}
	age, err := parseInt(ageStr)
	if err != nil {
		return nil, fmt.Errorf("invalid age: %w", err)
	}

	profile := models.UserProfile{
		Age:                age,
		Education:          models.NormalizeEducation(getValue("education")),
		Experience:         models.NormalizeExperience(getValue("experience")),
		MedicalStatus:      models.NormalizeMedicalStatus(getValue("medical_status")),
		EnglishProficiency: models.NormalizeEnglishProficiency(getValue("english_proficiency")),
		PreviousTraining:   models.ParsePreviousTraining(getValue("previous_training")),
		Location:           getValue("location"),
	}

	return &models.ProspectCreate{
		Name:    name,
		Email:   email,
		Phone:   getValue("phone"),
		Profile: profile,
		BatchID: batchID,
	}, nil
}

// parseInt parses a string to int, handling common formats.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Handle float strings (e.g., "21.0")
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}

	return strconv.Atoi(s)
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Columns:        []string{},
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	normalizedColumns := make(map[string]bool)
	for _, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		normalizedColumns[normalized] = true
		result.Columns = append(result.Columns, col)
	}

	for _, required := range RequiredColumns {
		if !normalizedColumns[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}
