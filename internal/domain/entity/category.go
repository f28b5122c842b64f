package entity

import "time"

// Category representa una categoría de artículos.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
