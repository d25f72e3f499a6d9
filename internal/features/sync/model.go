package sync

import (
	"fmt"
	"strings"
	"time"

	common_models "go-lms-bridge/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Outcome string

const (
	OutcomeSynced     Outcome = "synced"
	OutcomeSuppressed Outcome = "suppressed_echo"
	OutcomeNoMapping  Outcome = "no_mapping"
	OutcomeGatedOff   Outcome = "gated_off"
)

// FieldFailure is one legacy target (or canonical key) the sync could
// not write. The originating write already succeeded; these surface as
// warnings, never hard failures.
type FieldFailure struct {
	Target string `json:"target" bson:"target"`
	Reason string `json:"reason" bson:"reason"`
}

// SyncResult describes what one mirror pass did for one changed key.
type SyncResult struct {
	EntityID   string                   `json:"entity_id"`
	EntityType common_models.EntityType `json:"entity_type"`
	Direction  Direction                `json:"direction"`
	Key        string                   `json:"key"`
	Outcome    Outcome                  `json:"outcome"`
	Written    []string                 `json:"written,omitempty"`
	Skipped    []string                 `json:"skipped,omitempty"`
	Failures   []FieldFailure           `json:"failures,omitempty"`
}

// PartialSyncError reports targets that failed during an otherwise
// successful mirror pass. It travels up as a change-handler error and
// ends as a warning on the original write.
type PartialSyncError struct {
	Key      string
	Failures []FieldFailure
}

func (e *PartialSyncError) Error() string {
	targets := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		targets = append(targets, f.Target)
	}
	return fmt.Sprintf("sync of %s partially failed: %s", e.Key, strings.Join(targets, ", "))
}

// SyncLogEntry is the persisted trail of every mirror decision,
// including suppressed echoes and gated-off fields.
type SyncLogEntry struct {
	ID         primitive.ObjectID       `json:"id" bson:"_id,omitempty"`
	EntityID   string                   `json:"entity_id" bson:"entity_id"`
	EntityType common_models.EntityType `json:"entity_type" bson:"entity_type"`
	Direction  Direction                `json:"direction" bson:"direction"`
	Key        string                   `json:"key" bson:"key"`
	Outcome    Outcome                  `json:"outcome" bson:"outcome"`
	Written    []string                 `json:"written,omitempty" bson:"written,omitempty"`
	Skipped    []string                 `json:"skipped,omitempty" bson:"skipped,omitempty"`
	Failures   []FieldFailure           `json:"failures,omitempty" bson:"failures,omitempty"`
	CreatedAt  time.Time                `json:"created_at" bson:"created_at"`
}

// SyncEvent is the websocket feed payload pushed after every mirror
// pass.
type SyncEvent struct {
	Event      string                   `json:"event"`
	EntityID   string                   `json:"entity_id"`
	EntityType common_models.EntityType `json:"entity_type"`
	Direction  Direction                `json:"direction"`
	Key        string                   `json:"key"`
	Outcome    Outcome                  `json:"outcome"`
	Timestamp  time.Time                `json:"timestamp"`
}
