package services

import (
	"log"
	"time"

	"enibar/internal/models"
)

// Catalog event kinds and actions.
const (
	KindCategory   = "category"
	KindProduct    = "product"
	KindDescriptor = "descriptor"
	KindPrice      = "price"
	KindPanel      = "panel"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventPublisher broadcasts catalog changes to other tills.
type EventPublisher interface {
	PublishCatalogEvent(event models.CatalogEvent) error
}

// notify publishes a catalog event. Publishing is best effort: the mutation
// is already committed, so failures are only logged.
func notify(events EventPublisher, kind, action string, id uint, name string) {
	if events == nil {
		return
	}
	event := models.CatalogEvent{
		Kind:   kind,
		Action: action,
		ID:     id,
		Name:   name,
		At:     time.Now().UTC(),
	}
	if err := events.PublishCatalogEvent(event); err != nil {
		log.Printf("Failed to publish %s event: %v", event.RoutingKey(), err)
	}
}
