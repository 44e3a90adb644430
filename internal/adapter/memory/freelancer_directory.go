package memory

import (
	"context"
	"sync"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

type FreelancerDirectory struct {
	mu          sync.RWMutex
	freelancers map[uint64]domain.Freelancer
}

var _ ports.FreelancerDirectory = (*FreelancerDirectory)(nil)

func NewFreelancerDirectory(freelancers ...domain.Freelancer) *FreelancerDirectory {
	d := &FreelancerDirectory{freelancers: make(map[uint64]domain.Freelancer, len(freelancers))}
	for _, f := range freelancers {
		d.Add(f)
	}
	return d
}

func (d *FreelancerDirectory) Add(f domain.Freelancer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f.Skills = append([]string{}, f.Skills...)
	d.freelancers[f.ID] = f
}

func (d *FreelancerDirectory) GetFreelancer(_ context.Context, id uint64) (domain.Freelancer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	f, ok := d.freelancers[id]
	if !ok {
		return domain.Freelancer{}, domain.ErrFreelancerNotFound
	}
	f.Skills = append([]string{}, f.Skills...)
	return f, nil
}
