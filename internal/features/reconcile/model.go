package reconcile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

type Trigger string

const (
	TriggerCron   Trigger = "cron"
	TriggerManual Trigger = "manual"
)

// Drift is one legacy slot whose stored value no longer matches what
// the canonical field would mirror there.
type Drift struct {
	EntityID string      `json:"entity_id" bson:"entity_id"`
	Path     string      `json:"path" bson:"path"`
	Target   string      `json:"target" bson:"target"`
	Expected interface{} `json:"expected" bson:"expected"`
	Actual   interface{} `json:"actual" bson:"actual"`
	Repaired bool        `json:"repaired" bson:"repaired"`
}

// ReconcileRun is one full drift scan over the entity store.
type ReconcileRun struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Status     RunStatus          `json:"status" bson:"status"`
	Trigger    Trigger            `json:"trigger" bson:"trigger"`
	Scanned    int                `json:"scanned" bson:"scanned"`
	Checked    int                `json:"checked" bson:"checked"`
	Drifted    int                `json:"drifted" bson:"drifted"`
	Repaired   int                `json:"repaired" bson:"repaired"`
	Failed     int                `json:"failed" bson:"failed"`
	Drifts     []Drift            `json:"drifts,omitempty" bson:"drifts,omitempty"`
	Error      string             `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt  time.Time          `json:"started_at" bson:"started_at"`
	FinishedAt time.Time          `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}
