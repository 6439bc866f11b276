package services

import (
	"math/rand"
	"testing"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_KeywordPriority(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		category models.ReportCategory
		severity models.ReportSeverity
	}{
		{"pothole", "Large pothole on Main St", "", models.CategoryPothole, models.SeverityHigh},
		{"hole keyword", "Deep hole in the sidewalk", "", models.CategoryPothole, models.SeverityHigh},
		{"streetlight", "Street light broken", "", models.CategoryStreetlight, models.SeverityMedium},
		{"lamp keyword", "", "the lamp post is leaning", models.CategoryStreetlight, models.SeverityMedium},
		{"trash", "overflowing garbage bin", "", models.CategoryTrash, models.SeverityLow},
		{"waste keyword", "", "construction waste dumped on the corner", models.CategoryTrash, models.SeverityLow},
		{"drainage", "clogged drain flooding", "", models.CategoryDrainage, models.SeverityHigh},
		{"water keyword", "", "water pooling on the road", models.CategoryDrainage, models.SeverityHigh},
		{"fallback", "loud noise complaint", "", models.CategoryOther, models.SeverityMedium},
		{"pothole wins over water", "pothole filled with water", "", models.CategoryPothole, models.SeverityHigh},
		{"case insensitive", "POTHOLE near school", "", models.CategoryPothole, models.SeverityHigh},
	}

	rng := rand.New(rand.NewSource(1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.title, tt.desc, rng)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.severity, got.Severity)
		})
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	// Confidence is intentionally randomized; only the bounds are
	// contractual.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		got := Classify("anything", "at all", rng)
		assert.GreaterOrEqual(t, got.Confidence, 0.70)
		assert.Less(t, got.Confidence, 1.00)
	}
}

func TestClassify_MatchesStoredSuggestion(t *testing.T) {
	// The same function backs the live suggestion and report creation,
	// so classification can never disagree between the two call sites.
	rng := rand.New(rand.NewSource(7))
	live := Classify("clogged drain flooding", "", rng)
	stored := Classify("clogged drain flooding", "", rng)
	assert.Equal(t, live.Category, stored.Category)
	assert.Equal(t, live.Severity, stored.Severity)
}
