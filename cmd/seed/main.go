package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/bootstrap"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/config"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/specification"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds a demo POI catalog and indexes every entry in all three embedding
// collections. Safe to re-run: existing titles are skipped.
func main() {
	cfg := config.Load()

	dsn := cfg.Database.Connection
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Error: Failed to migrate schema:", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	repo := bootstrap.POIRepository(db)

	ctx := context.Background()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatal("Error: Failed to start indexing consumer:", err)
	}

	color.Cyan("🚀 Seeding POI catalog\n")

	seeded := 0
	for _, poi := range demoPOIs() {
		existing, err := repo.FindOne(ctx, specification.ByTitleLike{Fragment: poi.Title})
		if err != nil {
			color.Red("Failed lookup for '%s': %v", poi.Title, err)
			continue
		}
		if existing != nil {
			color.Yellow("POI '%s' already exists, skipping", poi.Title)
			continue
		}

		p := poi
		if err := repo.Create(ctx, &p); err != nil {
			color.Red("Failed to create '%s': %v", poi.Title, err)
			continue
		}

		payload, _ := json.Marshal(dto.PublishIndexPOIMessage{POIId: p.Id})
		if err := container.IndexPublisher.Publish(ctx, payload); err != nil {
			color.Red("Failed to enqueue '%s' for indexing: %v", poi.Title, err)
			continue
		}

		color.Green("Created POI: %s (%s)", p.Title, p.Category)
		seeded++
	}

	// Give the in-process consumer room to drain before exit.
	time.Sleep(5 * time.Second)
	color.Cyan("\n✅ Seeding done: %d new POIs", seeded)
	os.Exit(0)
}

func hoursJSON(weekly map[string][]map[string]string) json.RawMessage {
	raw, _ := json.Marshal(weekly)
	return raw
}

func ptr(v float64) *float64 { return &v }

func daysAgo(n int) *time.Time {
	t := time.Now().AddDate(0, 0, -n)
	return &t
}

func demoPOIs() []entity.Candidate {
	everyday := map[string][]map[string]string{
		"monday":    {{"open": "09:00", "close": "22:00"}},
		"tuesday":   {{"open": "09:00", "close": "22:00"}},
		"wednesday": {{"open": "09:00", "close": "22:00"}},
		"thursday":  {{"open": "09:00", "close": "22:00"}},
		"friday":    {{"open": "09:00", "close": "23:59"}},
		"saturday":  {{"open": "10:00", "close": "23:59"}},
		"sunday":    {{"open": "10:00", "close": "21:00"}},
	}
	splitShift := map[string][]map[string]string{
		"monday":    {{"open": "12:00", "close": "15:00"}, {"open": "19:00", "close": "23:00"}},
		"tuesday":   {{"open": "12:00", "close": "15:00"}, {"open": "19:00", "close": "23:00"}},
		"wednesday": {{"open": "12:00", "close": "15:00"}, {"open": "19:00", "close": "23:00"}},
		"thursday":  {{"open": "12:00", "close": "15:00"}, {"open": "19:00", "close": "23:00"}},
		"friday":    {{"open": "12:00", "close": "15:00"}, {"open": "19:00", "close": "23:59"}},
		"saturday":  {{"open": "19:00", "close": "23:59"}},
	}

	return []entity.Candidate{
		{
			Id: uuid.New(), Title: "Casa Pepe", Category: "Spanish restaurant",
			Description: "Family-run tapas house near the old harbour with a long sherry list and seasonal rice dishes.",
			Latitude:    ptr(38.5382), Longitude: ptr(-0.1300), Rating: 4.6,
			Amenities:    []string{"terrace", "vegetarian options", "wheelchair accessible", "reservations"},
			OpeningHours: hoursJSON(splitShift), ReviewCount: 412, LastReviewAt: daysAgo(6),
		},
		{
			Id: uuid.New(), Title: "Verde Vita", Category: "Vegan restaurant",
			Description: "Plant-based kitchen with gluten-free bakes, cold-pressed juices and a quiet courtyard.",
			Latitude:    ptr(38.5401), Longitude: ptr(-0.1275), Rating: 4.8,
			Amenities:    []string{"vegan", "vegetarian options", "gluten-free options", "wifi", "courtyard"},
			OpeningHours: hoursJSON(everyday), ReviewCount: 188, LastReviewAt: daysAgo(2),
		},
		{
			Id: uuid.New(), Title: "Marisqueria El Faro", Category: "Seafood restaurant",
			Description: "Harbourside seafood grill, daily catch on ice, popular with locals for long Sunday lunches.",
			Latitude:    ptr(38.5356), Longitude: ptr(-0.1329), Rating: 4.4,
			Amenities:    []string{"sea view", "terrace", "reservations", "parking"},
			OpeningHours: hoursJSON(splitShift), ReviewCount: 659, LastReviewAt: daysAgo(14),
		},
		{
			Id: uuid.New(), Title: "Cafe Luna", Category: "Coffee shop",
			Description: "Specialty coffee and breakfast bowls, laptop-friendly until noon, romantic candle-lit evenings.",
			Latitude:    ptr(38.5419), Longitude: ptr(-0.1251), Rating: 4.7,
			Amenities:    []string{"wifi", "vegetarian options", "outdoor seating", "takeaway"},
			OpeningHours: hoursJSON(everyday), ReviewCount: 94, LastReviewAt: daysAgo(1),
		},
		{
			Id: uuid.New(), Title: "Museo del Mar", Category: "Museum",
			Description: "Maritime history museum with interactive exhibits for children and a rooftop viewpoint.",
			Latitude:    ptr(38.5333), Longitude: ptr(-0.1347), Rating: 4.3,
			Amenities:    []string{"family friendly", "wheelchair accessible", "gift shop", "audio guide"},
			OpeningHours: hoursJSON(everyday), ReviewCount: 1033, LastReviewAt: daysAgo(40),
		},
		{
			Id: uuid.New(), Title: "Bar Nocturno", Category: "Cocktail bar",
			Description: "Late-night cocktail bar with live jazz on weekends and a halal-friendly snack menu.",
			Latitude:    ptr(38.5390), Longitude: ptr(-0.1290), Rating: 4.5,
			Amenities:    []string{"live music", "halal options", "late night", "cocktails"},
			OpeningHours: hoursJSON(splitShift), ReviewCount: 277, LastReviewAt: daysAgo(3),
		},
		{
			Id: uuid.New(), Title: "Parque de las Palmeras", Category: "Park",
			Description: "Palm-lined city park with playgrounds, a boating lake and free outdoor gym equipment.",
			Latitude:    ptr(38.5444), Longitude: ptr(-0.1222), Rating: 4.2,
			Amenities:    []string{"family friendly", "playground", "free entry", "dog friendly"},
			ReviewCount: 521, LastReviewAt: daysAgo(90),
		},
		{
			Id: uuid.New(), Title: "La Terraza Kosher", Category: "Mediterranean restaurant",
			Description: "Certified kosher Mediterranean kitchen with a rooftop terrace overlooking the marina.",
			Latitude:    ptr(38.5367), Longitude: ptr(-0.1312), Rating: 4.1,
			Amenities:    []string{"kosher", "terrace", "sea view", "reservations"},
			OpeningHours: hoursJSON(splitShift), ReviewCount: 86, LastReviewAt: daysAgo(25),
		},
	}
}
