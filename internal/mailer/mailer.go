package mailer

import (
	"context"
	"fmt"

	appconfig "family-records-go/internal/config"
	"family-records-go/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SES sends mail through Amazon SES. When disabled it logs and drops every
// message, which keeps local environments working without AWS credentials.
type SES struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	log       logger.Logger
}

func NewSES(ctx context.Context, cfg appconfig.MailConfig, log logger.Logger) (*SES, error) {
	if !cfg.Enabled || cfg.FromEmail == "" {
		log.Info("mailer: disabled, outgoing mail will be dropped")
		return &SES{enabled: false, log: log}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	log.Info("mailer: SES enabled", "from", cfg.FromEmail, "region", cfg.AWSRegion)
	return &SES{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		enabled:   true,
		log:       log,
	}, nil
}

func (s *SES) Send(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		s.log.Info("mailer: skipping send, service disabled", "to", to, "subject", subject)
		return nil
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	s.log.Info("mailer: email sent", "to", to, "subject", subject)
	return nil
}
