package models

import "time"

type PageVisit struct {
	ID        int       `json:"id"`
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	City      *string   `json:"city,omitempty"`
	Country   *string   `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
