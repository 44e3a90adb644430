package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const MinDescriptionLength = 30

type Applicant struct {
	ID     uint64
	Name   string
	Avatar string
}

type Post struct {
	ID           uint64
	Title        string
	Category     Category
	Description  string
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	Requirements []string
	Attachments  []string
	Applicants   []Applicant
	OwnerID      uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostDraft is the form a client submits. Attachments and applicants only
// replace the stored values when the matching Set flag is true.
type PostDraft struct {
	Title          string
	Category       Category
	Description    string
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
	Requirements   []string
	Attachments    []string
	AttachmentsSet bool
	Applicants     []Applicant
	ApplicantsSet  bool
}

func (d PostDraft) Normalize() PostDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = Category(strings.TrimSpace(string(d.Category)))
	d.Description = strings.TrimSpace(d.Description)
	d.Requirements = uniqueNonBlank(d.Requirements)
	d.Attachments = uniqueNonBlank(d.Attachments)
	return d
}

// ValidatePostDraft checks a normalized draft and reports every violated field.
func ValidatePostDraft(d PostDraft, floor decimal.Decimal) error {
	v := &ValidationError{}

	if d.Title == "" {
		v.Add("title", CodeRequired)
	}

	switch {
	case d.Category == "":
		v.Add("category", CodeRequired)
	case !d.Category.Valid():
		v.Add("category", CodeInvalid)
	}

	switch {
	case d.Description == "":
		v.Add("description", CodeRequired)
	case utf8.RuneCountInString(d.Description) < MinDescriptionLength:
		v.Add("description", CodeTooShort)
	}

	switch {
	case !fitsPriceScale(d.MinPrice):
		v.Add("min_price", CodeTooPrecise)
	case d.MinPrice.LessThan(floor):
		v.Add("min_price", CodeBelowFloor)
	}
	switch {
	case !fitsPriceScale(d.MaxPrice):
		v.Add("max_price", CodeTooPrecise)
	case !d.MaxPrice.GreaterThan(d.MinPrice):
		v.Add("max_price", CodeNotAboveMin)
	}

	if len(d.Requirements) == 0 {
		v.Add("requirements", CodeRequired)
	}

	return v.OrNil()
}

func NewPost(ownerID uint64, d PostDraft, now time.Time) Post {
	p := Post{
		OwnerID:     ownerID,
		Attachments: []string{},
		Applicants:  []Applicant{},
		CreatedAt:   now,
	}
	return p.WithDraft(d, now)
}

// WithDraft returns a copy of p carrying the draft's fields.
func (p Post) WithDraft(d PostDraft, now time.Time) Post {
	out := p.Clone()
	out.Title = d.Title
	out.Category = d.Category
	out.Description = d.Description
	out.MinPrice = d.MinPrice
	out.MaxPrice = d.MaxPrice
	out.Requirements = append([]string{}, d.Requirements...)
	if d.AttachmentsSet {
		out.Attachments = append([]string{}, d.Attachments...)
	}
	if d.ApplicantsSet {
		out.Applicants = uniqueApplicants(d.Applicants)
	}
	out.UpdatedAt = now
	return out
}

// Draft rebuilds the form that would reproduce p.
func (p Post) Draft() PostDraft {
	c := p.Clone()
	return PostDraft{
		Title:          c.Title,
		Category:       c.Category,
		Description:    c.Description,
		MinPrice:       c.MinPrice,
		MaxPrice:       c.MaxPrice,
		Requirements:   c.Requirements,
		Attachments:    c.Attachments,
		AttachmentsSet: true,
		Applicants:     c.Applicants,
		ApplicantsSet:  true,
	}
}

func (p Post) Clone() Post {
	p.Requirements = append([]string{}, p.Requirements...)
	p.Attachments = append([]string{}, p.Attachments...)
	p.Applicants = append([]Applicant{}, p.Applicants...)
	return p
}

func (p Post) IsOwner(actor Actor) bool {
	return actor.ID != 0 && actor.ID == p.OwnerID
}

func (p Post) FindApplicant(id uint64) (Applicant, bool) {
	for _, a := range p.Applicants {
		if a.ID == id {
			return a, true
		}
	}
	return Applicant{}, false
}

// AddApplicant appends a in arrival order and reports whether it was new.
func (p *Post) AddApplicant(a Applicant) bool {
	if _, ok := p.FindApplicant(a.ID); ok {
		return false
	}
	p.Applicants = append(p.Applicants, a)
	return true
}

func (p *Post) RemoveApplicant(id uint64) bool {
	for i, a := range p.Applicants {
		if a.ID == id {
			p.Applicants = append(p.Applicants[:i:i], p.Applicants[i+1:]...)
			return true
		}
	}
	return false
}

func uniqueNonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func uniqueApplicants(applicants []Applicant) []Applicant {
	out := make([]Applicant, 0, len(applicants))
	seen := make(map[uint64]struct{}, len(applicants))
	for _, a := range applicants {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}

// PriceScale is the number of decimals a stored price keeps.
const PriceScale = 2

func fitsPriceScale(price decimal.Decimal) bool {
	return price.Equal(price.Round(PriceScale))
}
