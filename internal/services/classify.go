package services

import (
	"math/rand"
	"strings"

	"github.com/civiccred/civicstore/internal/models"
)

// Classify derives a provisional (category, severity, confidence) triple
// from free-text title and description. Deterministic keyword match,
// case-insensitive, first match wins in priority order. The same function
// backs both the live drafting suggestion and the stored suggestion on a
// created report, so the two call sites can never disagree.
//
// Confidence is drawn uniformly from [0.70, 1.00). It is a presentation
// artifact, not a model probability; only the bounds are contractual.
func Classify(title, description string, rng *rand.Rand) models.AISuggestion {
	text := strings.ToLower(title + " " + description)

	category := models.CategoryOther
	severity := models.SeverityMedium

	switch {
	case strings.Contains(text, "pothole") || strings.Contains(text, "hole"):
		category = models.CategoryPothole
		severity = models.SeverityHigh
	case strings.Contains(text, "light") || strings.Contains(text, "lamp"):
		category = models.CategoryStreetlight
		severity = models.SeverityMedium
	case strings.Contains(text, "trash") || strings.Contains(text, "garbage") || strings.Contains(text, "waste"):
		category = models.CategoryTrash
		severity = models.SeverityLow
	case strings.Contains(text, "drain") || strings.Contains(text, "water"):
		category = models.CategoryDrainage
		severity = models.SeverityHigh
	}

	return models.AISuggestion{
		Category:   category,
		Severity:   severity,
		Confidence: 0.70 + rng.Float64()*0.30,
	}
}
