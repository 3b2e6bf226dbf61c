package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tunespace/tunespace-api/internal/features/admin"
	"github.com/tunespace/tunespace-api/internal/features/analytics"
	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/chat"
	"github.com/tunespace/tunespace-api/internal/features/creators"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/features/payments"
	"github.com/tunespace/tunespace-api/internal/features/posts"
	"github.com/tunespace/tunespace-api/internal/features/ratings"
	"github.com/tunespace/tunespace-api/internal/features/reports"
)

// Connect opens the Postgres connection pool.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate runs schema auto-migration for every feature model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&creators.CreatorProfile{},
		&posts.Post{},
		&payments.Payment{},
		&ratings.Rating{},
		&chat.Message{},
		&analytics.Engagement{},
		&analytics.AnalyticsData{},
		&admin.AppAnalytics{},
		&notifications.Notification{},
		&reports.Report{},
	)
}
