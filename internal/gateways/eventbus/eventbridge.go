package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/notify"
)

// PutEventsAPI is the part of the EventBridge client the bus uses.
type PutEventsAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// Bus publishes domain events to EventBridge.
type Bus struct {
	client  PutEventsAPI
	busName string
	source  string
}

var _ notify.Publisher = &Bus{}

func New(ctx context.Context, cfg cardsite.EventsConfig, creds cardsite.S3Config) (*Bus, error) {
	region := cfg.Region
	if region == "" {
		region = creds.Region
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if creds.Key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.Key, creds.Secret, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load eventbridge config: %w", err)
	}
	return NewBus(eventbridge.NewFromConfig(awsCfg), cfg.BusName, cfg.Source), nil
}

func NewBus(client PutEventsAPI, busName, source string) *Bus {
	return &Bus{client: client, busName: busName, source: source}
}

// Publish sends events in one PutEvents call. Entries EventBridge rejects
// come back joined into the returned error.
func (b *Bus) Publish(ctx context.Context, events ...notify.Event) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]types.PutEventsRequestEntry, 0, len(events))
	for _, e := range events {
		detail, err := json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("failed to encode %s detail: %w", e.Name, err)
		}
		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(b.busName),
			Source:       aws.String(b.source),
			DetailType:   aws.String(e.Name),
			Detail:       aws.String(string(detail)),
		})
	}

	out, err := b.client.PutEvents(ctx, &eventbridge.PutEventsInput{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to put events: %w", err)
	}
	if out.FailedEntryCount == 0 {
		slog.Debug("Published events",
			slog.String("type", "event"),
			slog.Int("count", len(entries)))
		return nil
	}

	var failed []error
	for i, entry := range out.Entries {
		if entry.ErrorCode == nil {
			continue
		}
		failed = append(failed, fmt.Errorf("%s: %s: %s",
			events[i].Name, aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage)))
	}
	return errors.Join(failed...)
}
