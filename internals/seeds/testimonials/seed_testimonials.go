package testimonials

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/testimonials/model"
)

//go:embed data_testimonials.json
var defaultTestimonials []byte

type TestimonialSeed struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	Position string `json:"position"`
	ImageURL string `json:"image_url"`
	Review   string `json:"review"`
	Rating   int    `json:"rating"`
}

// SeedTestimonials fills an empty testimonials table with the landing page
// defaults. A table that already has rows is left alone.
func SeedTestimonials(ctx context.Context, table datastore.Table[model.TestimonialModel]) (int, error) {
	n, err := table.Count(ctx, datastore.Query{})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("ℹ️ testimonials already has %d rows, skipped.", n)
		return 0, nil
	}

	var inputs []TestimonialSeed
	if err := json.Unmarshal(defaultTestimonials, &inputs); err != nil {
		return 0, fmt.Errorf("decode testimonials: %w", err)
	}

	inserted := 0
	for i, data := range inputs {
		row := model.TestimonialModel{
			ID:           uuid.New(),
			Name:         data.Name,
			State:        data.State,
			Position:     data.Position,
			ImageURL:     data.ImageURL,
			Review:       data.Review,
			Rating:       data.Rating,
			IsActive:     true,
			DisplayOrder: i + 1,
		}
		if err := table.Insert(ctx, &row); err != nil {
			return inserted, fmt.Errorf("insert testimonial %q: %w", data.Name, err)
		}
		log.Printf("✅ testimonial '%s' inserted", data.Name)
		inserted++
	}
	return inserted, nil
}
