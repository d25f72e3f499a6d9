package mapper

import (
	"time"

	common_models "go-lms-bridge/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StorageMode string

const (
	// StorageDedicated fields own a canonical meta key and mirror into
	// their legacy targets.
	StorageDedicated StorageMode = "dedicated"
	// StorageAggregate fields have no canonical slot of their own; the
	// canonical view reads them out of the legacy aggregate bag.
	StorageAggregate StorageMode = "aggregate"
)

// TransformFunc converts a value across the canonical/legacy boundary.
type TransformFunc func(value interface{}) interface{}

// LegacyTarget is one legacy destination of a canonical field: either a
// dedicated legacy meta key (Bag empty) or a sub-key inside an aggregate
// bag meta key. The optional overrides let a fan-out entry encode each
// mirror differently.
type LegacyTarget struct {
	Key string `json:"key" bson:"key"`
	Bag string `json:"bag,omitempty" bson:"bag,omitempty"`

	Forward TransformFunc `json:"-" bson:"-"`
	Reverse TransformFunc `json:"-" bson:"-"`
}

// MetaKey is the entity-meta key whose change signals this target.
func (t LegacyTarget) MetaKey() string {
	if t.Bag != "" {
		return t.Bag
	}
	return t.Key
}

// Name is the human-readable target identifier used in results and logs.
func (t LegacyTarget) Name() string {
	if t.Bag != "" {
		return t.Bag + "." + t.Key
	}
	return t.Key
}

// MappingEntry declares how one canonical field relates to the legacy
// shape. Entries are static per entity type and immutable at runtime;
// site-custom entries are merged in at load time.
type MappingEntry struct {
	Path         string
	Mode         StorageMode
	CanonicalKey string // dedicated canonical meta key; empty in aggregate mode
	Targets      []LegacyTarget
	Capability   string // gating capability; empty = always synced
	Default      interface{}

	Forward TransformFunc // nil = passthrough
	Reverse TransformFunc
}

// ForwardValue applies the entry-level forward transform, or the target
// override when one is declared.
func (e *MappingEntry) ForwardValue(t LegacyTarget, v interface{}) interface{} {
	if t.Forward != nil {
		return t.Forward(v)
	}
	if e.Forward != nil {
		return e.Forward(v)
	}
	return v
}

// ReverseValue is the inverse of ForwardValue.
func (e *MappingEntry) ReverseValue(t LegacyTarget, v interface{}) interface{} {
	if t.Reverse != nil {
		return t.Reverse(v)
	}
	if e.Reverse != nil {
		return e.Reverse(v)
	}
	return v
}

// LegacyMatch pairs a resolved entry with the target that matched the
// changed legacy meta key.
type LegacyMatch struct {
	Entry  *MappingEntry
	Target LegacyTarget
}

// CustomMapping is a site-defined mapping row with tengo-scripted
// transforms, the escape hatch for site-specific legacy mirrors.
type CustomMapping struct {
	ID            primitive.ObjectID       `json:"id" bson:"_id,omitempty"`
	EntityType    common_models.EntityType `json:"entity_type" bson:"entity_type"`
	Path          string                   `json:"path" bson:"path"`
	CanonicalKey  string                   `json:"canonical_key" bson:"canonical_key"`
	Targets       []LegacyTarget           `json:"targets" bson:"targets"`
	Capability    string                   `json:"capability,omitempty" bson:"capability,omitempty"`
	Default       interface{}              `json:"default" bson:"default"`
	ForwardScript string                   `json:"forward_script,omitempty" bson:"forward_script,omitempty"`
	ReverseScript string                   `json:"reverse_script,omitempty" bson:"reverse_script,omitempty"`
	CreatedAt     time.Time                `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at" bson:"updated_at"`
}

// ToEntry compiles the stored row into a runtime mapping entry.
func (m *CustomMapping) ToEntry() *MappingEntry {
	entry := &MappingEntry{
		Path:         m.Path,
		Mode:         StorageDedicated,
		CanonicalKey: m.CanonicalKey,
		Targets:      m.Targets,
		Capability:   m.Capability,
		Default:      m.Default,
	}
	if m.ForwardScript != "" {
		entry.Forward = ScriptTransform(m.ForwardScript)
	}
	if m.ReverseScript != "" {
		entry.Reverse = ScriptTransform(m.ReverseScript)
	}
	return entry
}
