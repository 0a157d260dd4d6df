package models

import "time"

// CatalogEvent is published after a successful catalog mutation so that
// other tills can refresh their menus.
type CatalogEvent struct {
	Kind   string    `json:"kind"`   // category, product, price, descriptor, panel
	Action string    `json:"action"` // created, updated, deleted
	ID     uint      `json:"id,omitempty"`
	Name   string    `json:"name,omitempty"`
	At     time.Time `json:"at"`
}

// RoutingKey is the topic routing key of the event, e.g. "catalog.panel.updated".
func (e CatalogEvent) RoutingKey() string {
	return "catalog." + e.Kind + "." + e.Action
}
