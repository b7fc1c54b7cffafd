package models

import (
	"log"
	"time"
)

// Product categories and genders are fixed enumerations. Validation is
// advisory: unexpected values coming back from the database are logged,
// never rejected, so older rows keep rendering.
var ProductCategories = []string{"earrings", "chains", "bracelets", "rings", "necklaces", "pendants"}

var ProductGenders = []string{"women", "men", "unisex"}

type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Price            int64     `json:"price"` // minor currency units (paise)
	Category         string    `json:"category"`
	Gender           string    `json:"gender"`
	Description      string    `json:"description,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	AdditionalImages []string  `json:"additional_images,omitempty"`
	VideoURL         string    `json:"video_url,omitempty"`
	IsNewArrival     bool      `json:"is_new_arrival"`
	IsSoldOut        bool      `json:"is_sold_out"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func IsValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidGender(gender string) bool {
	for _, g := range ProductGenders {
		if g == gender {
			return true
		}
	}
	return false
}

// WarnOnUnknownEnums flags out-of-range enum values without failing the read.
func (p *Product) WarnOnUnknownEnums() {
	if p.Category != "" && !IsValidCategory(p.Category) {
		log.Printf("Unexpected category value for product %s: %s", p.ID, p.Category)
	}
	if p.Gender != "" && !IsValidGender(p.Gender) {
		log.Printf("Unexpected gender value for product %s: %s", p.ID, p.Gender)
	}
}
