package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"portfolio/internal/port"
)

// sendEmailAPI is the part of the SES client the notifier uses.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client      sendEmailAPI
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESNotifier creates an SES-backed Notifier that mails the site administrator.
func NewSESNotifier(region, fromAddress, fromName, toAddress string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewSESNotifierWithClient(sesv2.NewFromConfig(cfg), fromAddress, fromName, toAddress), nil
}

// NewSESNotifierWithClient creates a notifier around an existing client (for testing).
func NewSESNotifierWithClient(client sendEmailAPI, fromAddress, fromName, toAddress string) port.Notifier {
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}
}

func (s *sesNotifier) NotifyTranslationDegraded(ctx context.Context, subject string, fields []string) error {
	mailSubject := fmt.Sprintf("Translation fallback: %s", subject)
	htmlBody := buildDegradedHTML(subject, fields)
	textBody := fmt.Sprintf("The English version of %q kept the Spanish text for: %s.\n\nEdit the entry or run the backfill command once the translation provider is healthy.",
		subject, strings.Join(fields, ", "))

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &mailSubject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDegradedHTML(subject string, fields []string) string {
	var items strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&items, "<li>%s</li>", html.EscapeString(f))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Translation fell back to Spanish</h2>
  <p>The English version of <strong>%s</strong> kept the source text for:</p>
  <ul>%s</ul>
  <p>Edit the entry or run the backfill command once the translation provider is healthy.</p>
</body>
</html>`, html.EscapeString(subject), items.String())
}
