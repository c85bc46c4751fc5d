package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
)

// EventBusinessApproved is the event_type attribute of approval messages
const EventBusinessApproved = "business.approved"

// SNSService is the subset of the SNS client used to publish
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes business events to a topic
type SNSNotifier struct {
	client   SNSService
	topicARN string
	now      func() time.Time
}

// NewSNSNotifier loads the default AWS configuration for region
func NewSNSNotifier(ctx context.Context, region, topicARN string) (*SNSNotifier, error) {
	cfg, err := loadAWSConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSNSNotifierWithClient(sns.NewFromConfig(cfg), topicARN), nil
}

func NewSNSNotifierWithClient(client SNSService, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN, now: time.Now}
}

type approvedMessage struct {
	BusinessID string    `json:"business_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	ApprovedAt time.Time `json:"approved_at"`
}

// BusinessApproved publishes one message per approval
func (n *SNSNotifier) BusinessApproved(ctx context.Context, b *entities.Business) error {
	body, err := json.Marshal(approvedMessage{
		BusinessID: b.ID.String(),
		OwnerID:    b.OwnerID.String(),
		Name:       b.Name,
		ApprovedAt: n.now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("Negocio aprobado"),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(EventBusinessApproved)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", EventBusinessApproved, err)
	}
	return nil
}

// NoopNotifier drops every event
type NoopNotifier struct{}

func (NoopNotifier) BusinessApproved(context.Context, *entities.Business) error { return nil }
