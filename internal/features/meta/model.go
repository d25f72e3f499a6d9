package meta

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meta is one keyed property of an entity. Canonical fields, legacy mirror
// keys and aggregate bags all live in this collection side by side; only
// the key namespace tells them apart.
type Meta struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EntityID  primitive.ObjectID `json:"entity_id" bson:"entity_id"`
	Key       string             `json:"key" bson:"key"`
	Value     interface{}        `json:"value" bson:"value"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ChangeResult reports what happened downstream of a property write.
// The write itself succeeded; warnings are mirroring trouble only.
type ChangeResult struct {
	Notified int      `json:"notified"`
	Warnings []string `json:"warnings,omitempty"`
}
