package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/contract"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/specification"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/embedding"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/hours"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/search"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds POIs off the request path. Each POI gets one
// document per collection, tuned to that retrieval mode.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	poiRepo           contract.POIRepository
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	poiRepo contract.POIRepository,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		poiRepo:           poiRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexPOIMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing POI: %s", payload.POIId)

	poi, err := cs.poiRepo.FindOne(ctx, specification.ByID{ID: payload.POIId})
	if err != nil {
		log.Printf("[ERROR] Failed to load POI %s: %v", payload.POIId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if poi == nil {
		log.Printf("[ERROR] POI not found: %s", payload.POIId)
		msg.Ack() // POI deleted meanwhile? Ack.
		return
	}

	documents := map[string]string{
		search.CollectionGeneral:    generalDocument(poi),
		search.CollectionSpecific:   specificDocument(poi),
		search.CollectionContextual: contextualDocument(poi),
	}

	for collection, document := range documents {
		vector, err := cs.embeddingProvider.Generate(ctx, document, embedding.TaskDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed POI %s for %s: %v", poi.Id, collection, err)
			msg.Nack()
			return
		}

		if err := cs.poiRepo.UpsertEmbedding(ctx, poi.Id, collection, document, vector); err != nil {
			log.Printf("[ERROR] Failed to store embedding for POI %s in %s: %v", poi.Id, collection, err)
			msg.Nack()
			return
		}
	}

	log.Printf("[SUCCESS] POI indexed in %d collections: %s", len(documents), poi.Id)
	msg.Ack()
}

// generalDocument covers broad "what kind of place is this" retrieval.
func generalDocument(poi *entity.Candidate) string {
	return fmt.Sprintf(`%s
Category: %s

%s

Amenities: %s`,
		poi.Title,
		poi.Category,
		poi.Description,
		strings.Join(poi.Amenities, ", "),
	)
}

// specificDocument is weighted toward the name so "tell me about X" queries
// land on the right entity.
func specificDocument(poi *entity.Candidate) string {
	return fmt.Sprintf("%s. %s. A %s.", poi.Title, poi.Title, poi.Category)
}

// contextualDocument carries the situational detail follow-up queries ask
// about: amenities, hours, the descriptive long tail.
func contextualDocument(poi *entity.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n%s\n", poi.Title, poi.Category, poi.Description)
	if len(poi.Amenities) > 0 {
		fmt.Fprintf(&b, "Offers: %s\n", strings.Join(poi.Amenities, ", "))
	}
	if weekly, err := hours.Parse(poi.OpeningHours); err == nil && weekly != nil {
		days := make([]string, 0, len(weekly))
		for day := range weekly {
			days = append(days, day)
		}
		fmt.Fprintf(&b, "Open on: %s\n", strings.Join(days, ", "))
	}
	return b.String()
}
