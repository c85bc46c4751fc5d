// Package notify sends confirmation e-mails and business events.
package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
)

const confirmationSubject = "Confirma tu cuenta en Qhoar"

// SESService is the subset of the SES client used to send mail
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends confirmation links through Amazon SES
type SESMailer struct {
	client SESService
	from   string
}

var loadAWSConfig = config.LoadDefaultConfig

// NewSESMailer loads the default AWS configuration for region
func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := loadAWSConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSESMailerWithClient(ses.NewFromConfig(cfg), from), nil
}

func NewSESMailerWithClient(client SESService, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

// SendConfirmation mails the confirmation link to a new account
func (m *SESMailer) SendConfirmation(ctx context.Context, to, link string) error {
	text, body := confirmationBody(link)
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(confirmationSubject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(text)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes the link to the log instead of sending it
type LogMailer struct{}

func (LogMailer) SendConfirmation(ctx context.Context, to, link string) error {
	logger.Info(ctx, "Confirmation e-mail", zap.String("to", to), zap.String("link", link))
	return nil
}

func confirmationBody(link string) (string, string) {
	text := "Hola,\n\nConfirma tu correo para activar tu cuenta de Qhoar:\n" + link + "\n\nEl enlace vence en 24 horas."
	body := `<p>Hola,</p><p>Confirma tu correo para activar tu cuenta de Qhoar:</p>` +
		`<p><a href="` + html.EscapeString(link) + `">Confirmar cuenta</a></p><p>El enlace vence en 24 horas.</p>`
	return text, body
}
