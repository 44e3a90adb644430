package domain

// Freelancer is the profile data the directory exposes to the lifecycle core.
type Freelancer struct {
	ID       uint64
	Name     string
	Avatar   string
	Category Category
	Skills   []string
	Rating   float64
	Bio      string
}

func (f Freelancer) AsApplicant() Applicant {
	return Applicant{ID: f.ID, Name: f.Name, Avatar: f.Avatar}
}
