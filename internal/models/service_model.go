package models

import "time"

// Service is a catalog entry a customer can book. Created and maintained by
// admins only; read surface is public.
type Service struct {
	ID          string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Price       float64   `json:"price" firestore:"price"`
	Category    string    `json:"category,omitempty" firestore:"category,omitempty"`
	ImageURL    string    `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
