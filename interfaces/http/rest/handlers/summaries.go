package handlers

import (
	"time"

	"memehub-backend/domain/core/entities"
)

// memeSummary is the lightweight meme projection used on profile routes
// where keyword names are not needed
type memeSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Reaction  int       `json:"reaction"`
	CreatedAt time.Time `json:"createdAt"`
}

func memesToSummaries(memes []*entities.Meme) []memeSummary {
	out := make([]memeSummary, 0, len(memes))
	for _, m := range memes {
		out = append(out, memeSummary{
			ID:        m.ID().String(),
			Title:     m.Title(),
			Image:     m.Image(),
			Reaction:  m.Reaction(),
			CreatedAt: m.CreatedAt(),
		})
	}
	return out
}
