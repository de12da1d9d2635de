// Command seed populates the user-business table with demo listings for
// local development.
package main

import (
	"github.com/localconnect/localconnect-backend/config"
	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/app/repository"
	"github.com/localconnect/localconnect-backend/internal/db"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       "debug",
		Format:      "console",
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	repo := repository.NewUserBusinessRepository(db.GetDB())

	existing, err := repo.FindAll()
	if err != nil {
		logger.Fatal("Failed to check existing listings", err)
	}
	if len(existing) > 0 {
		logger.Info("Listings already present, skipping seed", map[string]interface{}{
			"count": len(existing),
		})
		return
	}

	lat1, lng1 := 40.7145, -74.0071
	lat2, lng2 := 40.7103, -74.0125

	listings := []model.UserBusiness{
		{
			OwnerID:     "seed",
			Name:        "Hudson Street Coffee Cart",
			Category:    model.CategoryFood,
			Description: "Espresso and cold brew from a family-run cart.",
			Address:     "Hudson St & Chambers St",
			Phone:       "(555) 010-1100",
			Latitude:    &lat1,
			Longitude:   &lng1,
			Deal:        "Free refill before 8 AM",
		},
		{
			OwnerID:     "seed",
			Name:        "Battery Vintage Records",
			Category:    model.CategoryRetail,
			Description: "Used vinyl, tapes and turntable repair.",
			Address:     "88 Greenwich St",
			Phone:       "(555) 010-2200",
			Latitude:    &lat2,
			Longitude:   &lng2,
		},
		{
			OwnerID:     "seed",
			Name:        "Downtown Key & Lock",
			Category:    model.CategoryServices,
			Description: "Same-day locksmith and key cutting.",
			Address:     "14 Fulton St",
			Phone:       "(555) 010-3300",
		},
	}

	for i := range listings {
		if err := repo.Create(&listings[i]); err != nil {
			logger.Fatal("Failed to seed listing", err, map[string]interface{}{
				"name": listings[i].Name,
			})
		}
	}

	logger.Info("Seeded demo listings", map[string]interface{}{
		"count": len(listings),
	})
}
