package entity

import (
	"time"

	common_models "go-lms-bridge/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity is a registry row for an editable content object. The settings
// bridge never owns the content itself, only the id/type pair every other
// feature keys off.
type Entity struct {
	ID        primitive.ObjectID       `json:"id" bson:"_id,omitempty"`
	Type      common_models.EntityType `json:"type" bson:"type"`
	Title     string                   `json:"title" bson:"title"`
	CreatedAt time.Time                `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time                `json:"updated_at" bson:"updated_at"`
}
