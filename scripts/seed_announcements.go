package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SeedAnnouncements contains the initial portal announcements
var SeedAnnouncements = []models.Announcement{
	{
		Title:     "Online Services Now Available",
		Content:   "Residents may now apply for barangay clearances, permits and certificates through the online portal. Walk-in applications remain open at the barangay hall.",
		Category:  models.CategoryServices,
		IsActive:  true,
		Priority:  3,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		Title:     "Barangay Hall Office Hours",
		Content:   "The barangay hall is open Monday to Friday, 8:00 AM to 5:00 PM. Document releasing closes at 4:30 PM.",
		Category:  models.CategoryGeneral,
		IsActive:  true,
		Priority:  2,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		Title:     "Free Anti-Rabies Vaccination Drive",
		Content:   "Bring your pets to the covered court this Saturday for free anti-rabies vaccination, first come first served.",
		Category:  models.CategoryHealth,
		IsActive:  true,
		Priority:  1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
	{
		Title:     "Typhoon Preparedness Reminders",
		Content:   "Keep emergency kits ready and monitor the alerts page during typhoon season. Evacuation centers are listed at the barangay hall bulletin board.",
		Category:  models.CategoryDisaster,
		IsActive:  true,
		Priority:  1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	},
}

func main() {
	fmt.Println("Seeding portal announcements...")

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.MongoDB.Collection(config.AppConfig.AnnouncementsCollection)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count existing announcements: %v", err)
	}

	if count > 0 {
		fmt.Printf("Found %d existing announcements. Do you want to replace them? (y/N): ", count)
		var response string
		_, err := fmt.Scanln(&response)
		if err != nil {
			fmt.Println("Error reading input")
			return
		}
		if response != "y" && response != "Y" {
			fmt.Println("Seeding cancelled")
			return
		}

		result, err := collection.DeleteMany(ctx, bson.M{})
		if err != nil {
			log.Fatalf("Failed to delete existing announcements: %v", err)
		}
		fmt.Printf("Deleted %d existing announcements\n", result.DeletedCount)
	}

	docs := make([]interface{}, len(SeedAnnouncements))
	for i, ann := range SeedAnnouncements {
		docs[i] = ann
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to insert announcements: %v", err)
	}

	fmt.Printf("Successfully seeded %d announcements:\n", len(result.InsertedIDs))
	for _, ann := range SeedAnnouncements {
		fmt.Printf("  [%s] priority %d - %s\n", ann.Category, ann.Priority, ann.Title)
	}

	fmt.Println("Seeding completed successfully")
}
