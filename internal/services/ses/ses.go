// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/config"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/models"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client          *ses.Client
	fromEmail       string
	admissionsEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// CourseResultInfo carries one course's outcome for email rendering
type CourseResultInfo struct {
	CourseName    string
	Score         int
	IsEligible    bool
	EstimatedTime string
	NextSteps     []string
}

// EligibilitySummaryParams contains data for the prospect summary email
type EligibilitySummaryParams struct {
	Name                  string
	Email                 string
	Results               []CourseResultInfo
	OverallRecommendation string
	PriorityActions       []string
	DashboardURL          string
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	client := ses.NewFromConfig(cfg)

	return &Service{
		client:          client,
		fromEmail:       appCfg.SESSenderEmail,
		admissionsEmail: appCfg.AdmissionsEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendEligibilitySummary sends the check results to the prospect
func (s *Service) SendEligibilitySummary(ctx context.Context, params EligibilitySummaryParams) (*SendEmailResult, error) {
	htmlBody, err := renderSummaryHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := renderSummaryText(params)

	subject := fmt.Sprintf("%s, your pilot training eligibility results are ready", params.Name)

	return s.SendEmail(ctx, EmailParams{
		To:       params.Email,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// SendQualifiedLeadAlert notifies the admissions team about a qualified lead
func (s *Service) SendQualifiedLeadAlert(ctx context.Context, lead *models.Lead) (*SendEmailResult, error) {
	if s.admissionsEmail == "" {
		return nil, fmt.Errorf("admissions email not configured")
	}

	subject := fmt.Sprintf("Qualified lead: %s (%d%% for %s)", lead.Name, lead.BestScore, lead.BestCourseID)

	var buf bytes.Buffer
	buf.WriteString("A new qualified lead was captured.\n\n")
	buf.WriteString(fmt.Sprintf("Name: %s\n", lead.Name))
	buf.WriteString(fmt.Sprintf("Email: %s\n", lead.Email))
	if lead.Phone != "" {
		buf.WriteString(fmt.Sprintf("Phone: %s\n", lead.Phone))
	}
	buf.WriteString(fmt.Sprintf("Best course: %s\n", lead.BestCourseID))
	buf.WriteString(fmt.Sprintf("Score: %d%%\n", lead.BestScore))
	buf.WriteString(fmt.Sprintf("Checked at: %s\n", lead.CheckCompletedAt.UTC().Format(time.RFC3339)))

	return s.SendEmail(ctx, EmailParams{
		To:       s.admissionsEmail,
		Subject:  subject,
		TextBody: buf.String(),
		ReplyTo:  lead.Email,
	})
}

// BuildSummaryParams creates email params from a completed check.
func BuildSummaryParams(name, email string, check *models.EligibilityCheckResult, dashboardURL string) EligibilitySummaryParams {
	results := make([]CourseResultInfo, 0, len(check.Results))
	for _, res := range check.Results {
		results = append(results, CourseResultInfo{
			CourseName:    res.CourseName,
			Score:         res.EligibilityScore,
			IsEligible:    res.IsEligible,
			EstimatedTime: res.EstimatedTimeToEligibility,
			NextSteps:     res.NextSteps,
		})
	}

	return EligibilitySummaryParams{
		Name:                  name,
		Email:                 email,
		Results:               results,
		OverallRecommendation: check.OverallRecommendation,
		PriorityActions:       check.PriorityActions,
		DashboardURL:          dashboardURL,
	}
}

// renderSummaryHTML renders the HTML email template
func renderSummaryHTML(params EligibilitySummaryParams) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #075e68 0%, #219099 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .course-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .course-card h3 { margin: 0 0 10px 0; color: #075e68; }
        .score-badge { display: inline-block; color: white; padding: 5px 12px; border-radius: 20px; font-weight: bold; }
        .eligible { background: #28a745; }
        .not-eligible { background: #dc8545; }
        .cta-button { display: inline-block; background: #075e68; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Your Eligibility Results</h1>
        <p>Hi {{.Name}}, here is where you stand on your path to the cockpit</p>
    </div>
    <div class="content">
        <p>{{.OverallRecommendation}}</p>

        {{range .Results}}
        <div class="course-card">
            <h3>{{.CourseName}}</h3>
            <p>
                <span class="score-badge {{if .IsEligible}}eligible{{else}}not-eligible{{end}}">{{.Score}}%</span>
                &nbsp;{{if .IsEligible}}Eligible now{{else}}Estimated time to eligibility: {{.EstimatedTime}}{{end}}
            </p>
            <ol>
                {{range .NextSteps}}<li>{{.}}</li>{{end}}
            </ol>
        </div>
        {{end}}

        {{if .PriorityActions}}
        <h3>Your priority actions</h3>
        <ol>
            {{range .PriorityActions}}<li>{{.}}</li>{{end}}
        </ol>
        {{end}}

        {{if .DashboardURL}}
        <div style="text-align: center;">
            <a href="{{.DashboardURL}}" class="cta-button">Talk to an Instructor</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>This email was sent by Aviators Training Centre</p>
        <p>You received this because you used our eligibility checker.</p>
    </div>
</body>
</html>`

	t, err := template.New("eligibility_summary").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderSummaryText renders the plain text version
func renderSummaryText(params EligibilitySummaryParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", params.Name))
	buf.WriteString(params.OverallRecommendation + "\n\n")

	for _, res := range params.Results {
		status := "Not eligible yet"
		if res.IsEligible {
			status = "Eligible now"
		}
		buf.WriteString(fmt.Sprintf("%s — %d%% (%s)\n", res.CourseName, res.Score, status))
		if !res.IsEligible {
			buf.WriteString(fmt.Sprintf("  Estimated time to eligibility: %s\n", res.EstimatedTime))
		}
		for i, step := range res.NextSteps {
			buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
		buf.WriteString("\n")
	}

	if len(params.PriorityActions) > 0 {
		buf.WriteString("Priority actions:\n")
		for i, action := range params.PriorityActions {
			buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, action))
		}
		buf.WriteString("\n")
	}

	if params.DashboardURL != "" {
		buf.WriteString(fmt.Sprintf("Talk to an instructor: %s\n\n", params.DashboardURL))
	}

	buf.WriteString("Best regards,\nAviators Training Centre\n")

	return buf.String()
}
