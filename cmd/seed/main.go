package main

import (
	"context"
	"os"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/repo/postgres"
	"github.com/stayviet/stayviet/pkg/config"
	"github.com/stayviet/stayviet/pkg/database"
	"github.com/stayviet/stayviet/pkg/logger"
)

// Seeds a demo user and a handful of listings for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := postgres.NewUsersRepo(pool)
	properties := postgres.NewPropertiesRepo(pool)

	hash, err := argon2id.CreateHash("password123", argon2id.DefaultParams)
	if err != nil {
		logger.Error("failed to hash demo password", "error", err)
		os.Exit(1)
	}
	if _, err := users.Create(ctx, "Demo User", "demo@stayviet.local", hash, domain.DefaultAvatar); err != nil {
		logger.Warn("demo user not created", "error", err)
	}

	joined := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []domain.Property{
		{
			Title:       "Căn hộ studio trung tâm Quận 1",
			Description: "Studio hiện đại nhìn ra phố đi bộ Nguyễn Huệ, cách chợ Bến Thành 5 phút đi bộ.",
			Price:       850_000,
			Category:    domain.CategoryEntireApartment,
			Images:      []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267"},
			Location:    domain.Location{Address: "12 Nguyễn Huệ", City: "Hồ Chí Minh", Country: "Việt Nam"},
			Amenities:   []string{"wifi", "air_conditioning", "kitchen", "washer"},
			Host:        domain.Host{Name: "Lan Phạm", Avatar: domain.DefaultAvatar, Joined: joined, Reviews: 128, IsSuperhost: true},
			MaxGuests:   2,
			Bedrooms:    1,
			Bathrooms:   1,
			Area:        35,
			IsAvailable: true,
		},
		{
			Title:       "Villa biển Đà Nẵng có hồ bơi riêng",
			Description: "Villa 4 phòng ngủ sát biển Mỹ Khê, hồ bơi vô cực và sân vườn BBQ.",
			Price:       4_500_000,
			Category:    domain.CategoryEntireVilla,
			Images:      []string{"https://images.unsplash.com/photo-1582268611958-ebfd161ef9cf"},
			Location:    domain.Location{Address: "88 Võ Nguyên Giáp", City: "Đà Nẵng", Country: "Việt Nam"},
			Amenities:   []string{"wifi", "pool", "parking", "kitchen", "bbq"},
			Host:        domain.Host{Name: "Minh Trần", Avatar: domain.DefaultAvatar, Joined: joined, Reviews: 64, IsSuperhost: false},
			MaxGuests:   8,
			Bedrooms:    4,
			Bathrooms:   3,
			Area:        220,
			IsAvailable: true,
		},
		{
			Title:       "Phòng riêng trong nhà cổ Hội An",
			Description: "Phòng riêng trong ngôi nhà cổ 100 năm tuổi, đi bộ 2 phút tới phố đèn lồng.",
			Price:       420_000,
			Category:    domain.CategoryPrivateRoom,
			Images:      []string{"https://images.unsplash.com/photo-1559131583-f176a2eb61db"},
			Location:    domain.Location{Address: "35 Trần Phú", City: "Hội An", Country: "Việt Nam"},
			Amenities:   []string{"wifi", "breakfast", "bicycle"},
			Host:        domain.Host{Name: "Hương Nguyễn", Avatar: domain.DefaultAvatar, Joined: joined, Reviews: 212, IsSuperhost: true},
			MaxGuests:   2,
			Bedrooms:    1,
			Bathrooms:   1,
			Area:        25,
			IsAvailable: true,
		},
		{
			Title:       "Nhà nguyên căn view ruộng bậc thang Sa Pa",
			Description: "Nhà gỗ nguyên căn nhìn thẳng ra thung lũng Mường Hoa, có lò sưởi.",
			Price:       1_200_000,
			Category:    domain.CategoryEntireHouse,
			Images:      []string{"https://images.unsplash.com/photo-1528127269322-539801943592"},
			Location:    domain.Location{Address: "Bản Tả Van", City: "Sa Pa", Country: "Việt Nam"},
			Amenities:   []string{"wifi", "fireplace", "mountain_view", "parking"},
			Host:        domain.Host{Name: "A Sùng", Avatar: domain.DefaultAvatar, Joined: joined, Reviews: 37, IsSuperhost: false},
			MaxGuests:   6,
			Bedrooms:    3,
			Bathrooms:   2,
			Area:        110,
			IsAvailable: true,
		},
	}

	for i := range seed {
		created, err := properties.Create(ctx, &seed[i])
		if err != nil {
			logger.Error("failed to seed property", "error", err, "title", seed[i].Title)
			os.Exit(1)
		}
		logger.Info("seeded property", "id", created.ID, "title", created.Title)
	}

	logger.Info("seed complete", "properties", len(seed))
}
