package service

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

// Dependencies are the adapters the lifecycle core runs against.
type Dependencies struct {
	Posts         ports.PostRepository
	Projects      ports.ProjectRepository
	Phases        ports.PhaseRepository
	EditSlot      ports.EditSlot
	Freelancers   ports.FreelancerDirectory
	Events        ports.EventPublisher
	PriceFloor    decimal.Decimal
	DiscardPolicy domain.DiscardPolicy
}

type Option func(*runtime)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *runtime) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *runtime) { r.newID = newID }
}

// runtime is shared by every service so that they serialize on the same locks.
type runtime struct {
	locks  *keyedMutex
	now    func() time.Time
	newID  func() string
	events ports.EventPublisher
}

type Services struct {
	Posts      *PostService
	Applicants *ApplicantService
	Phases     *PhaseService
	Lifecycle  *LifecycleService
}

func New(deps Dependencies, opts ...Option) *Services {
	rt := &runtime{
		locks:  newKeyedMutex(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
		events: deps.Events,
	}
	for _, opt := range opts {
		opt(rt)
	}

	policy := deps.DiscardPolicy
	if policy == "" {
		policy = domain.DiscardDeletes
	}

	posts := &PostService{runtime: rt, posts: deps.Posts, slot: deps.EditSlot, floor: deps.PriceFloor}
	applicants := &ApplicantService{runtime: rt, posts: deps.Posts}
	phases := &PhaseService{runtime: rt, projects: deps.Projects, phases: deps.Phases}
	lifecycle := &LifecycleService{
		runtime:     rt,
		posts:       posts,
		applicants:  applicants,
		projects:    deps.Projects,
		freelancers: deps.Freelancers,
		policy:      policy,
	}

	return &Services{
		Posts:      posts,
		Applicants: applicants,
		Phases:     phases,
		Lifecycle:  lifecycle,
	}
}

// editSlotKey guards the shared edit slot. It is always taken after a post
// key, never before.
const editSlotKey = "edit-slot"

func postKey(id uint64) string {
	return "post:" + strconv.FormatUint(id, 10)
}

func projectKey(id string) string {
	return "project:" + id
}
