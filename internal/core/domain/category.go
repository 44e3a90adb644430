package domain

type Category string

// CategoryAll is the wildcard accepted by post filters.
const CategoryAll = "All"

const (
	CategoryDevelopment Category = "Development & IT"
	CategoryDesign      Category = "Design & Creative"
	CategoryAI          Category = "AI Services"
	CategoryWriting     Category = "Writing & Translation"
	CategorySales       Category = "Sales & Marketing"
	CategorySupport     Category = "Admin & Customer Support"
	CategoryFinance     Category = "Finance & Accounting"
	CategoryLegal       Category = "Legal"
	CategoryEngineering Category = "Engineering & Architecture"
	CategoryHR          Category = "HR & Training"
)

var categories = []Category{
	CategoryDevelopment,
	CategoryDesign,
	CategoryAI,
	CategoryWriting,
	CategorySales,
	CategorySupport,
	CategoryFinance,
	CategoryLegal,
	CategoryEngineering,
	CategoryHR,
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
