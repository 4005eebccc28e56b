// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "card-advisor-engine/internal/config"
	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// RecommendationEmailParams contains data for a recommendation summary email
type RecommendationEmailParams struct {
	UserName  string
	UserEmail string
	Results   []models.CardGroupResult
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
		client:    client,
		fromEmail: appCfg.SESSenderEmail,
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
		utils.Logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendRecommendationEmail sends a card recommendation summary email
func (s *Service) SendRecommendationEmail(ctx context.Context, params RecommendationEmailParams) (*SendEmailResult, error) {
	htmlBody, err := renderRecommendationHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := renderRecommendationText(params)

	subject := fmt.Sprintf("Your credit card recommendations are ready, %s", params.UserName)

	return s.SendEmail(ctx, EmailParams{
		To:       params.UserEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

var recommendationTemplate = template.Must(template.New("recommendation").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1d3557; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .group-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .group-card h3 { margin: 0 0 10px 0; color: #1d3557; }
        .group-card .savings { font-weight: bold; color: #28a745; }
        .group-card .coverage { color: #666; font-size: 14px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Your Card Recommendations</h1>
        <p>Hi {{.UserName}}, we scored {{len .Results}} card combinations for your spending</p>
    </div>
    <div class="content">
        {{range $i, $r := .Results}}
        <div class="group-card">
            <h3>#{{inc $i}}: {{range $j, $c := $r.Cards}}{{if $j}}, {{end}}{{$c.Card.Name}}{{end}}</h3>
            <p class="savings">Estimated monthly savings: {{printf "%.2f" $r.TotalGroupSavings}}</p>
            {{if gt $r.TotalGroupPoints 0.0}}<p>Reward points: {{printf "%.2f" $r.TotalGroupPoints}}</p>{{end}}
            <p class="coverage">Spend coverage: {{printf "%.0f" $r.SpendCoverage}}%</p>
        </div>
        {{end}}
        <div class="footer">
            <p>Savings are estimates based on the spending details you provided.</p>
        </div>
    </div>
</body>
</html>`))

// renderRecommendationHTML renders the HTML email body.
func renderRecommendationHTML(params RecommendationEmailParams) (string, error) {
	var buf bytes.Buffer
	if err := recommendationTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderRecommendationText renders the plain-text email body.
func renderRecommendationText(params RecommendationEmailParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour card recommendations:\n\n", params.UserName)
	for i := range params.Results {
		fmt.Fprintf(&b, "#%d\n%s\n\n", i+1, engine.FormatSummary(&params.Results[i]))
	}
	b.WriteString("Savings are estimates based on the spending details you provided.\n")
	return b.String()
}
