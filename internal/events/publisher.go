package events

import (
	"time"

	"github.com/arpitsinghofficial/videos-service/internal/types"
)

// Publisher interface for publishing events
type Publisher interface {
	PublishThumbnailUpdated(videoID, ownerID, thumbnailURL string) error
}

// EventPublisher implements the Publisher interface
type EventPublisher struct {
	hub WebSocketHub
}

// WebSocketHub interface for the WebSocket hub
type WebSocketHub interface {
	BroadcastToUser(userID string, event *types.Event)
	IsUserConnected(userID string) bool
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(hub WebSocketHub) *EventPublisher {
	return &EventPublisher{
		hub: hub,
	}
}

// PublishThumbnailUpdated notifies the video's owner that a new thumbnail
// was attached. Delivery is best-effort: nothing is queued for users
// without a live connection.
func (p *EventPublisher) PublishThumbnailUpdated(videoID, ownerID, thumbnailURL string) error {
	if !p.hub.IsUserConnected(ownerID) {
		return nil
	}

	event := types.NewEvent(types.EventThumbnailUpdated, types.ThumbnailUpdatedEvent{
		VideoID:      videoID,
		ThumbnailURL: thumbnailURL,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	p.hub.BroadcastToUser(ownerID, event)
	return nil
}

// NoopPublisher drops all events. Used when the WebSocket hub is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishThumbnailUpdated(videoID, ownerID, thumbnailURL string) error {
	return nil
}
