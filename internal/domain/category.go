package domain

// Category is one of the fixed point categories students collect points in.
type Category string

const (
	CategoryAcademics Category = "academics"
	CategorySports    Category = "sports"
	CategoryCultural  Category = "cultural"
	CategoryTechnical Category = "technical"
	CategorySocial    Category = "social"
)

// Categories lists every valid category, in leaderboard display order.
var Categories = []Category{
	CategoryAcademics,
	CategorySports,
	CategoryCultural,
	CategoryTechnical,
	CategorySocial,
}

func (c Category) IsValid() bool {
	for _, valid := range Categories {
		if c == valid {
			return true
		}
	}

	return false
}
