package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Ingredients   string    `json:"ingredients"`
	ImageURL      string    `json:"image_url"`
	PriceEGP      float64   `json:"price_egp"`
	CategoryID    string    `json:"category_id"`
	IsFeatured    bool      `json:"is_featured"`
	TrendingScore int       `json:"trending_score"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
