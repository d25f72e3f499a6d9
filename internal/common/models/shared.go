package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

// EntityType is the content-type tag of an editable LMS entity.
type EntityType string

const (
	EntityTypeCourse     EntityType = "course"
	EntityTypeLesson     EntityType = "lesson"
	EntityTypeAssignment EntityType = "assignment"
	EntityTypeBundle     EntityType = "bundle"
)

var entityTypes = map[EntityType]bool{
	EntityTypeCourse:     true,
	EntityTypeLesson:     true,
	EntityTypeAssignment: true,
	EntityTypeBundle:     true,
}

func (t EntityType) Valid() bool {
	return entityTypes[t]
}

func AllEntityTypes() []EntityType {
	return []EntityType{EntityTypeCourse, EntityTypeLesson, EntityTypeAssignment, EntityTypeBundle}
}

type AuditAction string

const (
	AuditActionSync       AuditAction = "SYNC"
	AuditActionSettings   AuditAction = "SETTINGS"
	AuditActionCapability AuditAction = "CAPABILITY"
	AuditActionReconcile  AuditAction = "RECONCILE"
	AuditActionEntity     AuditAction = "ENTITY"
	AuditActionMapping    AuditAction = "MAPPING"
	AuditActionExport     AuditAction = "EXPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Scope     string             `bson:"scope" json:"scope"`         // feature that produced the entry
	RecordID  string             `bson:"record_id" json:"record_id"` // entity id, capability name, run id, ...
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// MetaChange is the payload delivered to change handlers after every
// property write on an entity. The store does not record who wrote;
// telling user writes apart from sync echoes is the loop guard's job.
type MetaChange struct {
	EntityID   string      `json:"entity_id"`
	EntityType EntityType  `json:"entity_type"`
	Key        string      `json:"key"`
	Value      interface{} `json:"value"`
}

// AsBag normalizes a stored aggregate-bag value into a plain map. The
// second result is false when the value is absent or not an object shape;
// callers substitute defaults (reads) or a fresh bag (merges) in that case.
func AsBag(v interface{}) (map[string]interface{}, bool) {
	switch b := v.(type) {
	case nil:
		return nil, false
	case map[string]interface{}:
		return b, true
	case bson.M:
		return map[string]interface{}(b), true
	case bson.D:
		out := make(map[string]interface{}, len(b))
		for _, e := range b {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

// AsList normalizes a stored list value (attachment ids and the like).
func AsList(v interface{}) ([]interface{}, bool) {
	switch l := v.(type) {
	case nil:
		return nil, false
	case []interface{}:
		return l, true
	case bson.A:
		return []interface{}(l), true
	default:
		return nil, false
	}
}
