package capability

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Capability is an addon availability flag. The sync engine only ever asks
// "is this on"; toggling is an admin operation.
type Capability struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Enabled   bool               `json:"enabled" bson:"enabled"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

const (
	CapabilityPreview       = "preview"
	CapabilityContentDrip   = "content_drip"
	CapabilitySubscriptions = "subscriptions"
	CapabilityWooCommerce   = "woocommerce"
	CapabilityCourseBundle  = "course_bundle"
	CapabilityZoom          = "zoom"
)

// KnownCapabilities lists every flag the field mapper may gate on.
var KnownCapabilities = []string{
	CapabilityPreview,
	CapabilityContentDrip,
	CapabilitySubscriptions,
	CapabilityWooCommerce,
	CapabilityCourseBundle,
	CapabilityZoom,
}
