package types

import "time"

// EventType represents the type of real-time event
type EventType string

const (
	EventThumbnailUpdated EventType = "video.thumbnail_updated"
)

// Event represents a real-time event that can be sent over WebSocket
type Event struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// ThumbnailUpdatedEvent is sent to a video's owner when a new thumbnail
// has been attached to one of their videos.
type ThumbnailUpdatedEvent struct {
	VideoID      string `json:"video_id"`
	ThumbnailURL string `json:"thumbnail_url"`
	UpdatedAt    string `json:"updated_at"`
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
