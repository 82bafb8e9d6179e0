package models

import "time"

// Item is a single inventory record. OwnerID is set once at creation from the
// authenticated caller and is never updatable afterwards.
type Item struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
