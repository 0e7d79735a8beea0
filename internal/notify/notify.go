// Package notify emails quiz results to the configured parent address.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/galamath/galamath/internal/logger"
)

// Notifier delivers a message to the notification address.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
	Enabled() bool
}

// SendEmailAPI is the part of the SES client the notifier uses.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type Config struct {
	To       string
	From     string
	FromName string
	Region   string
}

// SESNotifier sends plain-text email through Amazon SES.
type SESNotifier struct {
	client SendEmailAPI
	to     string
	from   string
}

// New returns an SES notifier, or a disabled one when either address is
// missing.
func New(ctx context.Context, cfg Config) (Notifier, error) {
	log := logger.FromContext(ctx).WithPrefix("notify")
	if cfg.To == "" || cfg.From == "" {
		log.Info("email notifications disabled: NOTIFICATION_EMAIL or SES_FROM_EMAIL not set")
		return Disabled{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	log.Info("email notifications enabled: to=%s region=%s", cfg.To, cfg.Region)
	return NewSESNotifier(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func NewSESNotifier(client SendEmailAPI, cfg Config) *SESNotifier {
	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}
	return &SESNotifier{client: client, to: cfg.To, from: from}
}

func (n *SESNotifier) Enabled() bool { return true }

func (n *SESNotifier) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx).WithPrefix("notify")

	out, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination:      &types.Destination{ToAddresses: []string{n.to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", n.to, err)
	}

	if out != nil && out.MessageId != nil {
		log.Debug("email sent: id=%s", *out.MessageId)
	}
	log.Info("email sent: subject=%q", msg.Subject)
	return nil
}

// Disabled drops every message.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Send(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).WithPrefix("notify").Debug("skipping email (disabled): %q", msg.Subject)
	return nil
}
