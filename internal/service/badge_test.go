package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sotyapp/backend/internal/domain"
)

func badgeNames(badges []domain.Badge) []string {
	names := make([]string, len(badges))
	for i, b := range badges {
		names[i] = b.Name
	}

	return names
}

func TestBadgesFor(t *testing.T) {
	assert.Empty(t, BadgesFor(domain.StudentTotal{}))

	names := badgeNames(BadgesFor(domain.StudentTotal{
		AcademicsPoints: 50,
		SportsPoints:    49,
	}))
	assert.Equal(t, []string{"Scholar"}, names)

	names = badgeNames(BadgesFor(domain.StudentTotal{
		AcademicsPoints: 60,
		TechnicalPoints: 55,
		CompositePoints: 115,
		Wins:            3,
	}))
	assert.ElementsMatch(t, []string{"Scholar", "Innovator", "Centurion", "Champion"}, names)
}
