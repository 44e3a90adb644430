package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

type File struct {
	Posts       []Post       `yaml:"posts"`
	Freelancers []Freelancer `yaml:"freelancers"`
}

type Applicant struct {
	ID     uint64 `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

type Post struct {
	ID           uint64      `yaml:"id"`
	OwnerID      uint64      `yaml:"owner_id"`
	Title        string      `yaml:"title"`
	Category     string      `yaml:"category"`
	Description  string      `yaml:"description"`
	MinPrice     string      `yaml:"min_price"`
	MaxPrice     string      `yaml:"max_price"`
	Requirements []string    `yaml:"requirements"`
	Attachments  []string    `yaml:"attachments"`
	Applicants   []Applicant `yaml:"applicants"`
}

type Freelancer struct {
	ID       uint64   `yaml:"id"`
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
	Rating   float64  `yaml:"rating"`
	Avatar   string   `yaml:"avatar"`
	Bio      string   `yaml:"bio"`
}

// FreelancerSink receives the seeded profiles.
type FreelancerSink interface {
	Add(f domain.Freelancer)
}

func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) (*File, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &file, nil
}

// Apply loads freelancers into the directory and, when the post store is
// still empty, the demo catalog. Every post goes through the same validation
// a client submission would.
func (f *File) Apply(ctx context.Context, posts ports.PostRepository, freelancers FreelancerSink, floor decimal.Decimal, now time.Time) error {
	for _, entry := range f.Freelancers {
		freelancers.Add(entry.toDomain())
	}

	existing, err := posts.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		zap.L().Info("post store not empty, skipping seed catalog", zap.Int("posts", len(existing)))
		return nil
	}

	// Entries are stamped one second apart so that every store sorts them
	// in file order.
	built := make([]domain.Post, 0, len(f.Posts))
	for i, entry := range f.Posts {
		post, err := entry.toDomain(floor, now.Add(-time.Duration(i)*time.Second))
		if err != nil {
			return fmt.Errorf("seed post %d (#%d): %w", entry.ID, i, err)
		}
		built = append(built, post)
	}

	// The repository prepends, so insert oldest first.
	for i := len(built) - 1; i >= 0; i-- {
		if _, err := posts.Create(ctx, built[i]); err != nil {
			return fmt.Errorf("seed post %d: %w", built[i].ID, err)
		}
	}

	zap.L().Info("seed catalog loaded",
		zap.Int("posts", len(built)),
		zap.Int("freelancers", len(f.Freelancers)),
	)
	return nil
}

func (p Post) toDomain(floor decimal.Decimal, now time.Time) (domain.Post, error) {
	minPrice, err := decimal.NewFromString(p.MinPrice)
	if err != nil {
		return domain.Post{}, fmt.Errorf("min_price: %w", err)
	}
	maxPrice, err := decimal.NewFromString(p.MaxPrice)
	if err != nil {
		return domain.Post{}, fmt.Errorf("max_price: %w", err)
	}

	applicants := make([]domain.Applicant, 0, len(p.Applicants))
	for _, a := range p.Applicants {
		applicants = append(applicants, domain.Applicant{ID: a.ID, Name: a.Name, Avatar: a.Avatar})
	}

	draft := domain.PostDraft{
		Title:          p.Title,
		Category:       domain.Category(p.Category),
		Description:    p.Description,
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
		Requirements:   p.Requirements,
		Attachments:    p.Attachments,
		AttachmentsSet: true,
		Applicants:     applicants,
		ApplicantsSet:  true,
	}.Normalize()
	if err := domain.ValidatePostDraft(draft, floor); err != nil {
		return domain.Post{}, err
	}

	post := domain.NewPost(p.OwnerID, draft, now)
	post.ID = p.ID
	return post, nil
}

func (f Freelancer) toDomain() domain.Freelancer {
	return domain.Freelancer{
		ID:       f.ID,
		Name:     f.Name,
		Avatar:   f.Avatar,
		Category: domain.Category(f.Category),
		Skills:   f.Skills,
		Rating:   f.Rating,
		Bio:      f.Bio,
	}
}
