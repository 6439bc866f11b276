package services

import (
	"time"

	"github.com/civiccred/civicstore/internal/models"
)

// sampleReports returns the two illustrative reports seeded into an
// uninitialized report collection so a fresh install has something to
// show on the dashboard and map. Seeding happens once: the collection
// key exists afterwards, so later reads never re-seed.
func sampleReports() []models.Report {
	return []models.Report{
		{
			ID:          "sample_1",
			UserID:      "sample_user",
			Title:       "Large Pothole on Main Street",
			Description: "There is a large pothole near the intersection of Main Street and Oak Avenue. It's causing damage to vehicles and is dangerous for cyclists.",
			Category:    models.CategoryPothole,
			Severity:    models.SeverityHigh,
			Status:      models.StatusInProgress,
			Location: models.Location{
				Latitude:  40.7128,
				Longitude: -74.0060,
				Address:   "Main Street & Oak Avenue, Downtown",
			},
			Images:     []string{"https://images.unsplash.com/photo-1469510090920-fd33379d1f7c?q=80&w=1080"},
			AIVerified: true,
			Timeline: []models.TimelineEvent{
				{
					ID:          "tl_1",
					Type:        models.EventCreated,
					Title:       "Report Created",
					Description: "Issue reported by citizen",
					Timestamp:   time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
					Actor:       "John Doe",
				},
				{
					ID:          "tl_2",
					Type:        models.EventVerified,
					Title:       "AI Verification Complete",
					Description: "Report verified by AI system",
					Timestamp:   time.Date(2024, 1, 15, 8, 5, 0, 0, time.UTC),
					Actor:       "AI System",
				},
				{
					ID:          "tl_3",
					Type:        models.EventAssigned,
					Title:       "Assigned to Department",
					Description: "Assigned to Public Works Department",
					Timestamp:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
					Actor:       "System",
				},
				{
					ID:          "tl_4",
					Type:        models.EventInProgress,
					Title:       "Work Started",
					Description: "Repair crew dispatched to location",
					Timestamp:   time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
					Actor:       "Public Works Dept",
				},
			},
			CreatedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "sample_2",
			UserID:      "sample_user",
			Title:       "Broken Street Light",
			Description: "Street light is not working on Park Avenue, making the area unsafe at night.",
			Category:    models.CategoryStreetlight,
			Severity:    models.SeverityMedium,
			Status:      models.StatusResolved,
			Location: models.Location{
				Latitude:  40.7589,
				Longitude: -73.9851,
				Address:   "Park Avenue, Block 3",
			},
			Images:     []string{"https://images.unsplash.com/photo-1695236200077-f61c1450f21a?q=80&w=1080"},
			AIVerified: true,
			Timeline: []models.TimelineEvent{
				{
					ID:          "tl_5",
					Type:        models.EventCreated,
					Title:       "Report Created",
					Description: "Issue reported by citizen",
					Timestamp:   time.Date(2024, 1, 10, 19, 30, 0, 0, time.UTC),
					Actor:       "Jane Smith",
				},
				{
					ID:          "tl_6",
					Type:        models.EventResolved,
					Title:       "Issue Resolved",
					Description: "Street light repaired and functioning",
					Timestamp:   time.Date(2024, 1, 12, 14, 0, 0, 0, time.UTC),
					Actor:       "Electrical Dept",
				},
			},
			CreatedAt: time.Date(2024, 1, 10, 19, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 12, 14, 0, 0, 0, time.UTC),
		},
	}
}
