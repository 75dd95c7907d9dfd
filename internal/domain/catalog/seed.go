package catalog

import "github.com/evento-hq/evento/internal/domain/model"

// seedEvents returns the stock catalog the service boots with.
func seedEvents() []model.Event {
	return []model.Event{
		{
			ID:          1,
			Title:       "Global Tech Summit 2026",
			Date:        "March 15-17, 2026",
			Location:    "Tokyo, Japan / Virtual",
			Category:    "Technology",
			Price:       1499,
			IsPaid:      true,
			Image:       "https://images.unsplash.com/photo-1540575861501-7ad058138a31?auto=format&fit=crop&q=80&w=800",
			Description: "The world's leading technology conference for innovators and creators.",
		},
		{
			ID:          2,
			Title:       "Eco-Innovation Forum",
			Date:        "April 22, 2026",
			Location:    "Stockholm, Sweden",
			Category:    "Sustainability",
			Price:       999,
			IsPaid:      true,
			Image:       "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09?auto=format&fit=crop&q=80&w=800",
			Description: "Designing the future of sustainable enterprise and environmental protection.",
		},
		{
			ID:          3,
			Title:       "Modern Art Expo",
			Date:        "May 10-25, 2026",
			Location:    "New York, USA",
			Category:    "Art",
			Price:       799,
			IsPaid:      true,
			Image:       "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?auto=format&fit=crop&q=80&w=800",
			Description: "A comprehensive showcase of digital and traditional modern art from global artists.",
		},
		{
			ID:          4,
			Title:       "Community Meetup 2026",
			Date:        "June 5, 2026",
			Location:    "Mumbai, India",
			Category:    "Technology",
			Price:       0,
			IsPaid:      false,
			Image:       "https://images.unsplash.com/photo-1515187029135-18ee286d815b?auto=format&fit=crop&q=80&w=800",
			Description: "Free community gathering for tech enthusiasts and developers.",
		},
		{
			ID:          5,
			Title:       "Startup Pitch Night",
			Date:        "July 12, 2026",
			Location:    "Bangalore, India",
			Category:    "Business",
			Price:       499,
			IsPaid:      true,
			Image:       "https://images.unsplash.com/photo-1559136555-9303baea8ebd?auto=format&fit=crop&q=80&w=800",
			Description: "Pitch your startup ideas to investors and mentors.",
		},
		{
			ID:          6,
			Title:       "Music Festival 2026",
			Date:        "August 20-22, 2026",
			Location:    "Goa, India",
			Category:    "Art",
			Price:       1999,
			IsPaid:      true,
			Image:       "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?auto=format&fit=crop&q=80&w=800",
			Description: "Three days of live music, art, and culture by the beach.",
		},
	}
}
