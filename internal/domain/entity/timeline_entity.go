package entity

import "time"

type Timeline struct {
	ID          string    `json:"_id"`
	Year        string    `json:"year"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
