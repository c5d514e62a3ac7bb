package services

// Designer lifecycle events sent through an EventPublisher.
const (
	EventDesignerCreated  = "designer.created"
	EventDesignerDeleted  = "designer.deleted"
	EventDesignerReported = "designer.reported"
)

// EventPublisher delivers designer events to interested consumers.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}
