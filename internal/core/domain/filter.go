package domain

import (
	"iter"
	"strings"

	"github.com/shopspring/decimal"
)

// PostFilter selects posts for the catalog. Zero values match everything.
type PostFilter struct {
	Category string
	Query    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Keywords splits the query on whitespace, lowercased. Order carries no meaning.
func (f PostFilter) Keywords() []string {
	return strings.Fields(strings.ToLower(f.Query))
}

func (f PostFilter) Match(p Post) bool {
	return f.matchCategory(p) && f.matchKeywords(p, f.Keywords()) && f.matchPrice(p)
}

func (f PostFilter) matchCategory(p Post) bool {
	category := strings.TrimSpace(f.Category)
	if category == "" || category == CategoryAll {
		return true
	}
	return p.Category == Category(category)
}

func (f PostFilter) matchKeywords(p Post, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(p.Title + " " + p.Description)
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// matchPrice keeps posts whose budget range overlaps the requested one.
func (f PostFilter) matchPrice(p Post) bool {
	if f.MinPrice != nil && p.MaxPrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.MinPrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// FilterPosts lazily yields the posts matching f in their original order.
// The sequence can be ranged over any number of times.
func FilterPosts(posts []Post, f PostFilter) iter.Seq[Post] {
	keywords := f.Keywords()
	return func(yield func(Post) bool) {
		for _, p := range posts {
			if !f.matchCategory(p) || !f.matchKeywords(p, keywords) || !f.matchPrice(p) {
				continue
			}
			if !yield(p.Clone()) {
				return
			}
		}
	}
}
