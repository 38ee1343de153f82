package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/logger"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/events"
	pktNats "github.com/FrankSpooren/HolidaiButler-sub009/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAnalyticsService interface {
	Consume(ctx context.Context) error
}

// analyticsService drains search events off the in-process bus, writes them
// to the analytics log, and republishes to NATS when a publisher is wired.
type analyticsService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
	analyticsLog   logger.ILogger
}

func NewAnalyticsService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
	analyticsLog logger.ILogger,
) IAnalyticsService {
	return &analyticsService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
		analyticsLog:   analyticsLog,
	}
}

func (s *analyticsService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

type analyticsEnvelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt string                 `json:"occurred_at"`
}

func (s *analyticsService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope analyticsEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal analytics event: %v", err)
		msg.Ack()
		return
	}

	// With NATS wired, the durable subscriber owns the analytics log so one
	// event is written once. Without it, write locally.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Payload,
			OccurredAt: parseOccurredAt(envelope.OccurredAt),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to republish analytics event to NATS: %v", err)
			s.analyticsLog.Info("analytics", envelope.Type, envelope.Payload)
		}
	} else {
		s.analyticsLog.Info("analytics", envelope.Type, envelope.Payload)
	}

	msg.Ack()
}

func parseOccurredAt(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}
