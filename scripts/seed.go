package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/advocacy-resources/advo-sub001/internal/adapters/database"
	"github.com/advocacy-resources/advo-sub001/internal/adapters/providers/geocoding"
	"github.com/advocacy-resources/advo-sub001/internal/adapters/search"
	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/typesense"
	"github.com/advocacy-resources/advo-sub001/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init search schema: %v", err)
		}
	}

	resourceRepo := database.NewResourceAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	geocoder := services.NewGeocodingService(
		geocoding.NewMockProvider(),
		"mock",
		cfg.Geocoding.BatchSize,
		cfg.Geocoding.BatchDelay,
		nil,
	)
	resourceService := services.NewResourceService(resourceRepo, searchRepo, geocoder)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, resourceRepo)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				favorites,
				ratings,
				reviews,
				recommendations,
				resources,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed resources across a few states so the analytics report and
	// proximity filtering have something to chew on.
	resources := []entities.Resource{
		{
			ID:          uuid.New().String(),
			Name:        "Harbor Counseling Collective",
			Description: "Sliding-scale individual and group counseling for young adults.",
			Categories:  []string{"MENTAL_HEALTH"},
			Contact:     entities.Contact{Phone: "212-555-0114", Email: "hello@harborcounseling.org", Website: "https://harborcounseling.org"},
			Address:     entities.Address{Street: "48 Water St", City: "Brooklyn", State: "NY", ZipCode: "11201"},
			TargetAudience: []string{
				"18-24", "25-34",
			},
			Cost:      "sliding scale",
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			ID:             uuid.New().String(),
			Name:           "Open Door Food Pantry",
			Description:    "Weekly groceries and hot meals, no documentation required.",
			Categories:     []string{"FOOD"},
			Contact:        entities.Contact{Phone: "718-555-0172", Email: "intake@opendoorpantry.org"},
			Address:        entities.Address{Street: "290 Fulton Ave", City: "Hempstead", State: "NY", ZipCode: "11550"},
			TargetAudience: []string{"all-ages"},
			Cost:           "free",
			IsActive:       true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
		{
			ID:             uuid.New().String(),
			Name:           "Bay Area Housing Navigation Center",
			Description:    "Emergency shelter placement and transitional housing case management.",
			Categories:     []string{"HOUSING"},
			Contact:        entities.Contact{Phone: "415-555-0147", Website: "https://bayareahousingnav.org"},
			Address:        entities.Address{Street: "1380 Mission St", City: "San Francisco", State: "CA", ZipCode: "94103"},
			TargetAudience: []string{"18-24", "25-34", "35-44"},
			Cost:           "free",
			IsActive:       true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
		{
			ID:             uuid.New().String(),
			Name:           "Lone Star Legal Aid Clinic",
			Description:    "Free legal consultations for housing, immigration and family law.",
			Categories:     []string{"LEGAL"},
			Contact:        entities.Contact{Phone: "713-555-0168", Email: "clinic@lonestarlegal.org"},
			Address:        entities.Address{Street: "1415 Fannin St", City: "Houston", State: "TX", ZipCode: "77002"},
			TargetAudience: []string{"25-34", "35-44", "45-54"},
			Cost:           "free",
			IsActive:       true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
		{
			ID:             uuid.New().String(),
			Name:           "Lakeside Youth Drop-In Center",
			Description:    "After-school tutoring, meals and peer support for teens.",
			Categories:     []string{"YOUTH", "EDUCATION"},
			Contact:        entities.Contact{Phone: "312-555-0190", Website: "https://lakesidedropin.org"},
			Address:        entities.Address{Street: "642 W Division St", City: "Chicago", State: "IL", ZipCode: "60610"},
			TargetAudience: []string{"13-17"},
			Cost:           "free",
			IsActive:       true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
	}

	var firstResourceID string
	for i := range resources {
		r := resources[i]
		if err := resourceService.Create(ctx, &r); err != nil {
			log.Printf("Failed to create resource %s: %v", r.Name, err)
			continue
		}
		if firstResourceID == "" {
			firstResourceID = r.ID
		}
	}

	// 2. Seed accounts: one admin, one business representative tied to the
	// first resource, one regular member.
	admin, err := authService.Register(ctx, "admin@example.org", "change-me-soon", "Site Admin")
	if err != nil {
		log.Printf("Failed to create admin account: %v", err)
	} else if _, err := userService.SetRole(ctx, admin.ID, entities.RoleAdmin, nil); err != nil {
		log.Printf("Failed to promote admin account: %v", err)
	}

	rep, err := authService.Register(ctx, "rep@example.org", "change-me-soon", "Resource Rep")
	if err != nil {
		log.Printf("Failed to create rep account: %v", err)
	} else if firstResourceID != "" {
		if _, err := userService.SetRole(ctx, rep.ID, entities.RoleBusinessRep, &firstResourceID); err != nil {
			log.Printf("Failed to promote rep account: %v", err)
		}
	}

	if _, err := authService.Register(ctx, "member@example.org", "change-me-soon", "Sample Member"); err != nil {
		log.Printf("Failed to create member account: %v", err)
	}

	log.Println("Seeding completed successfully")
}
