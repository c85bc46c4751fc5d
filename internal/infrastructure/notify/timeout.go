package notify

import (
	"context"
	"time"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

// ConfirmationSender delivers confirmation links
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, to, link string) error
}

// ApprovalPublisher announces approved businesses
type ApprovalPublisher interface {
	BusinessApproved(ctx context.Context, b *entities.Business) error
}

type timeoutMailer struct {
	next    ConfirmationSender
	timeout time.Duration
}

// MailerWithTimeout bounds each send by d
func MailerWithTimeout(next ConfirmationSender, d time.Duration) ConfirmationSender {
	if d <= 0 {
		return next
	}
	return &timeoutMailer{next: next, timeout: d}
}

func (m *timeoutMailer) SendConfirmation(ctx context.Context, to, link string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.SendConfirmation(ctx, to, link)
}

type timeoutNotifier struct {
	next    ApprovalPublisher
	timeout time.Duration
}

// NotifierWithTimeout bounds each publish by d
func NotifierWithTimeout(next ApprovalPublisher, d time.Duration) ApprovalPublisher {
	if d <= 0 {
		return next
	}
	return &timeoutNotifier{next: next, timeout: d}
}

func (n *timeoutNotifier) BusinessApproved(ctx context.Context, b *entities.Business) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.next.BusinessApproved(ctx, b)
}
