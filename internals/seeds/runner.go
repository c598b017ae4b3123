package seeds

import (
	"context"
	"log"

	"gorm.io/gorm"

	"suryaghar_backend/internals/datastore"
	testimonialModel "suryaghar_backend/internals/features/home/testimonials/model"
	"suryaghar_backend/internals/seeds/testimonials"
)

// RunAllSeeds inserts the landing page defaults into empty tables.
func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	//* Testimonials
	n, err := testimonials.SeedTestimonials(ctx, datastore.Open[testimonialModel.TestimonialModel](db))
	if err != nil {
		return err
	}
	log.Printf("🌱 seeding done, %d testimonials inserted", n)
	return nil
}
