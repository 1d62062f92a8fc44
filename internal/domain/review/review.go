// Package review models customer product reviews.
package review

import (
	"fmt"
	"sort"
	"time"
)

// Review is one customer review shown on the storefront.
type Review struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Name   string    `json:"name" validate:"required"`
	Rating int       `json:"rating" validate:"min=0,max=5"`
	Text   string    `json:"text" validate:"required"`
}

// NewID builds a time-based review identifier in the historical
// r_<unix-millis> format.
func NewID(now time.Time) string {
	return fmt.Sprintf("r_%d", now.UnixMilli())
}

// ClampRating forces the rating into the 0..5 star range.
func ClampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// SortNewestFirst orders reviews by date descending, ties broken by ID.
func SortNewestFirst(reviews []Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].Date.Equal(reviews[j].Date) {
			return reviews[i].Date.After(reviews[j].Date)
		}
		return reviews[i].ID > reviews[j].ID
	})
}
