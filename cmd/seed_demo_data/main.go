package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/database"
	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/features/capability"
	"go-lms-bridge/internal/features/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize Config & DB
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	mongoDB := &database.MongodbDB{DB: db}

	fmt.Println("🌱 Starting Demo Data Seeding...")

	// 1. Seed capability flags, everything on except the paid add-ons.
	enabledByDefault := map[string]bool{
		capability.CapabilityPreview:     true,
		capability.CapabilityContentDrip: true,
	}

	capCol := mongoDB.DB.Collection("capabilities")
	for _, name := range capability.KnownCapabilities {
		if count, _ := capCol.CountDocuments(ctx, bson.M{"name": name}); count == 0 {
			_, err := capCol.InsertOne(ctx, capability.Capability{
				Name:      name,
				Enabled:   enabledByDefault[name],
				UpdatedAt: time.Now(),
			})
			if err != nil {
				log.Printf("Failed to create capability %s: %v", name, err)
			} else {
				fmt.Printf("Created Capability: %s (enabled=%v)\n", name, enabledByDefault[name])
			}
		} else {
			fmt.Printf("Capability %s already exists\n", name)
		}
	}

	// 2. Seed demo entities.
	entities := []entity.Entity{
		{Type: common_models.EntityTypeCourse, Title: "Intro to Observability"},
		{Type: common_models.EntityTypeCourse, Title: "Distributed Systems 101"},
		{Type: common_models.EntityTypeLesson, Title: "What is a Trace?"},
		{Type: common_models.EntityTypeLesson, Title: "Consensus Basics"},
		{Type: common_models.EntityTypeAssignment, Title: "Instrument a Service"},
		{Type: common_models.EntityTypeBundle, Title: "Backend Engineer Path"},
	}

	entityCol := mongoDB.DB.Collection("entities")
	var courseID primitive.ObjectID

	for _, e := range entities {
		if count, _ := entityCol.CountDocuments(ctx, bson.M{"title": e.Title}); count == 0 {
			e.ID = primitive.NewObjectID()
			e.CreatedAt = time.Now()
			e.UpdatedAt = time.Now()
			if _, err := entityCol.InsertOne(ctx, e); err != nil {
				log.Printf("Failed to create entity %s: %v", e.Title, err)
				continue
			}
			fmt.Printf("Created %s: %s\n", e.Type, e.Title)
			if e.Type == common_models.EntityTypeCourse && courseID.IsZero() {
				courseID = e.ID
			}
		} else {
			fmt.Printf("Entity %s already exists\n", e.Title)
			var existing entity.Entity
			entityCol.FindOne(ctx, bson.M{"title": e.Title}).Decode(&existing)
			if existing.Type == common_models.EntityTypeCourse && courseID.IsZero() {
				courseID = existing.ID
			}
		}
	}

	// 3. Seed a few properties on the first course so the settings view
	// has something to assemble. Written directly, the way a legacy
	// writer would; the next reconcile run mirrors them.
	if !courseID.IsZero() {
		metaCol := mongoDB.DB.Collection("entity_meta")
		props := map[string]interface{}{
			"_tutor_course_level":      "intermediate",
			"_tutor_is_public_course":  "yes",
			"_tutor_course_price_type": "free",
			"_tutor_course_settings": map[string]interface{}{
				"maximum_students": "100",
			},
		}
		for key, value := range props {
			filter := bson.M{"entity_id": courseID, "key": key}
			if count, _ := metaCol.CountDocuments(ctx, filter); count == 0 {
				_, err := metaCol.InsertOne(ctx, bson.M{
					"entity_id":  courseID,
					"key":        key,
					"value":      value,
					"updated_at": time.Now(),
				})
				if err != nil {
					log.Printf("Failed to seed meta %s: %v", key, err)
				} else {
					fmt.Printf("Seeded meta: %s\n", key)
				}
			}
		}
	}

	fmt.Println("✅ Demo data seeding complete")
}
