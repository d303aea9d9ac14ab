package book

import (
	"time"
)

type CreateBookInput struct {
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Summary         string    `json:"summary"`
	PhotoURL        string    `json:"photo_url"`
	PublishedDate   time.Time `json:"published_date"`
	AvailableCopies int       `json:"available_copies"`
}

type UpdateBookInput struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	ISBN     *string `json:"isbn"`
	Summary  *string `json:"summary"`
	PhotoURL *string `json:"photo_url"`
}

type BookDTO struct {
	BookID          string    `json:"book_id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Summary         string    `json:"summary"`
	PhotoURL        string    `json:"photo_url"`
	PublishedDate   time.Time `json:"published_date"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
}
