package service

import "github.com/localconnect/localconnect-backend/internal/app/model"

// SampleBusinesses is the bundled demo dataset served before a session
// has fetched anything, or when location resolution fails outright.
func SampleBusinesses() []model.Business {
	return []model.Business{
		{
			ID:          "1",
			Name:        "Sophie's Artisan Bakery",
			Category:    model.CategoryFood,
			Description: "Fresh baked goods and pastries made daily with locally sourced ingredients.",
			Address:     "123 Main Street",
			Phone:       "(555) 123-4567",
			Image:       "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=800",
			Rating:      4.8,
			ReviewCount: 42,
			HasDeal:     true,
			Deal:        "15% off all pastries before 9 AM",
		},
		{
			ID:          "2",
			Name:        "Green Leaf Bookstore",
			Category:    model.CategoryRetail,
			Description: "Independent bookstore featuring local authors and rare finds.",
			Address:     "456 Oak Avenue",
			Phone:       "(555) 234-5678",
			Image:       "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=800",
			Rating:      4.9,
			ReviewCount: 67,
		},
		{
			ID:          "3",
			Name:        "Urban Bike Repair",
			Category:    model.CategoryServices,
			Description: "Expert bicycle repair and maintenance services for all bike types.",
			Address:     "789 Elm Street",
			Phone:       "(555) 345-6789",
			Image:       "https://images.unsplash.com/photo-1485965120184-e220f721d03e?w=800",
			Rating:      4.7,
			ReviewCount: 28,
			HasDeal:     true,
			Deal:        "Free safety inspection with any repair",
		},
		{
			ID:          "4",
			Name:        "The Corner Diner",
			Category:    model.CategoryFood,
			Description: "Classic American comfort food in a cozy neighborhood setting.",
			Address:     "321 Pine Street",
			Phone:       "(555) 456-7890",
			Image:       "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800",
			Rating:      4.5,
			ReviewCount: 89,
		},
		{
			ID:          "5",
			Name:        "Bloom Flower Shop",
			Category:    model.CategoryRetail,
			Description: "Fresh flowers and custom arrangements for every occasion.",
			Address:     "654 Cedar Lane",
			Phone:       "(555) 567-8901",
			Image:       "https://images.unsplash.com/photo-1563241527-3004b7be0ffd?w=800",
			Rating:      4.6,
			ReviewCount: 34,
			HasDeal:     true,
			Deal:        "10% off bouquets on Fridays",
		},
		{
			ID:          "6",
			Name:        "Precision Auto Care",
			Category:    model.CategoryServices,
			Description: "Honest, reliable auto repair with certified technicians.",
			Address:     "987 Birch Boulevard",
			Phone:       "(555) 678-9012",
			Image:       "https://images.unsplash.com/photo-1486006920555-c77dcf18193c?w=800",
			Rating:      4.4,
			ReviewCount: 56,
		},
	}
}
