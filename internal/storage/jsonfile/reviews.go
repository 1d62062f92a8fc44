package jsonfile

import (
	"strings"

	"github.com/samber/lo"

	"github.com/sajjplace/storefront/internal/domain/discount"
	"github.com/sajjplace/storefront/internal/domain/review"
)

// ReviewStore persists product reviews in reviews.json.
type ReviewStore struct {
	col *collection[review.Review]
}

// NewReviewStore opens (or creates) the review collection under dir.
func NewReviewStore(dir string) (*ReviewStore, error) {
	col, err := newCollection[review.Review](dir, "reviews")
	if err != nil {
		return nil, err
	}
	return &ReviewStore{col: col}, nil
}

// List returns every stored review.
func (s *ReviewStore) List() ([]review.Review, error) {
	return s.col.List()
}

// Create appends the review.
func (s *ReviewStore) Create(r review.Review) error {
	return s.col.update(func(items []review.Review) ([]review.Review, error) {
		return append(items, r), nil
	})
}

// SubscriberStore persists newsletter emails in subscribers.json.
type SubscriberStore struct {
	col *collection[string]
}

// NewSubscriberStore opens (or creates) the subscriber list under dir.
func NewSubscriberStore(dir string) (*SubscriberStore, error) {
	col, err := newCollection[string](dir, "subscribers")
	if err != nil {
		return nil, err
	}
	return &SubscriberStore{col: col}, nil
}

// List returns every subscribed email.
func (s *SubscriberStore) List() ([]string, error) {
	return s.col.List()
}

// Add records the email, deduplicating case-insensitively.
func (s *SubscriberStore) Add(email string) error {
	email = strings.TrimSpace(email)
	return s.col.update(func(items []string) ([]string, error) {
		if lo.ContainsBy(items, func(e string) bool {
			return strings.EqualFold(e, email)
		}) {
			return items, nil
		}
		return append(items, email), nil
	})
}

// CodeStore persists imported discount rules in codes.json. The bulk
// importer writes here; the shop merges these over the built-in table.
type CodeStore struct {
	col *collection[discount.Rule]
}

// NewCodeStore opens (or creates) the discount rule collection under dir.
func NewCodeStore(dir string) (*CodeStore, error) {
	col, err := newCollection[discount.Rule](dir, "codes")
	if err != nil {
		return nil, err
	}
	return &CodeStore{col: col}, nil
}

// List returns every stored rule.
func (s *CodeStore) List() ([]discount.Rule, error) {
	return s.col.List()
}

// Upsert merges the given rules into the collection, replacing rules with
// the same code.
func (s *CodeStore) Upsert(rules []discount.Rule) error {
	return s.col.update(func(items []discount.Rule) ([]discount.Rule, error) {
		index := make(map[string]int, len(items))
		for i := range items {
			index[items[i].Code] = i
		}
		for _, r := range rules {
			r.Code = discount.Normalize(r.Code)
			if i, ok := index[r.Code]; ok {
				items[i] = r
				continue
			}
			index[r.Code] = len(items)
			items = append(items, r)
		}
		return items, nil
	})
}
