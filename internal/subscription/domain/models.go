// Package domain contains webhook event persistence models and the
// subscription ingest contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// WebhookEvent records one received payment-provider event. The unique
// (provider, event_id) pair dedupes redeliveries; ProcessedAt stays nil
// until the premium flip lands, so a redelivery after a transient failure
// retries processing instead of being swallowed.
type WebhookEvent struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Provider    string            `gorm:"not null;uniqueIndex:webhook_events_provider_event_key,priority:1" json:"provider"`
	EventID     string            `gorm:"not null;uniqueIndex:webhook_events_provider_event_key,priority:2" json:"event_id"`
	EventType   string            `gorm:"not null" json:"event_type"`
	Payload     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"payload,omitempty"`
	ReceivedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"received_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
}

// TableName sets the database table name.
func (WebhookEvent) TableName() string { return "webhook_events" }
