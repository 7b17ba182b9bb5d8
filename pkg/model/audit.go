package model

import "time"

const (
	AuditActionPlaceUpdateRejected = "place.update_rejected"

	AuditResourcePlace = "place"
)

// AuditEntry records a mutation the API refused without telling the caller.
type AuditEntry struct {
	ID           string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Actor        string    `json:"actor" bson:"actor"`
	Action       string    `json:"action" bson:"action"`
	ResourceType string    `json:"resource_type" bson:"resource_type"`
	ResourceID   string    `json:"resource_id" bson:"resource_id"`
	Reason       string    `json:"reason" bson:"reason"`
	RequestID    string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
