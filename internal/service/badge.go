package service

import "github.com/sotyapp/backend/internal/domain"

// badgeRule awards a badge once the measured value reaches the threshold.
type badgeRule struct {
	badge   domain.Badge
	measure func(t domain.StudentTotal) int
}

var badgeRules = []badgeRule{
	{
		badge: domain.Badge{
			Name:        "Scholar",
			Description: "50+ academics points",
			Threshold:   50,
		},
		measure: func(t domain.StudentTotal) int { return t.AcademicsPoints },
	},
	{
		badge: domain.Badge{
			Name:        "Athlete",
			Description: "50+ sports points",
			Threshold:   50,
		},
		measure: func(t domain.StudentTotal) int { return t.SportsPoints },
	},
	{
		badge: domain.Badge{
			Name:        "Performer",
			Description: "50+ cultural points",
			Threshold:   50,
		},
		measure: func(t domain.StudentTotal) int { return t.CulturalPoints },
	},
	{
		badge: domain.Badge{
			Name:        "Innovator",
			Description: "50+ technical points",
			Threshold:   50,
		},
		measure: func(t domain.StudentTotal) int { return t.TechnicalPoints },
	},
	{
		badge: domain.Badge{
			Name:        "Humanitarian",
			Description: "50+ social points",
			Threshold:   50,
		},
		measure: func(t domain.StudentTotal) int { return t.SocialPoints },
	},
	{
		badge: domain.Badge{
			Name:        "Centurion",
			Description: "100+ composite points",
			Threshold:   100,
		},
		measure: func(t domain.StudentTotal) int { return t.CompositePoints },
	},
	{
		badge: domain.Badge{
			Name:        "Champion",
			Description: "3+ event wins",
			Threshold:   3,
		},
		measure: func(t domain.StudentTotal) int { return t.Wins },
	},
}

// BadgesFor derives the badges a student has earned from their totals.
// Badges are never stored; they follow the totals wherever they go.
func BadgesFor(total domain.StudentTotal) []domain.Badge {
	var badges []domain.Badge
	for _, rule := range badgeRules {
		if rule.measure(total) >= rule.badge.Threshold {
			badges = append(badges, rule.badge)
		}
	}

	return badges
}
