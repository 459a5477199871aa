package daemon

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/db/models"
)

// seed creates the default user and group on an empty database.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		user := &models.User{
			ID:       uuid.NewString(),
			Login:    "default",
			Password: models.HashPassword("password1"),
			Age:      30,
		}

		if err := db.Create(user).Error; err != nil {
			log.Error().Err(err).Msg("failed to seed default user")
		} else {
			log.Info().Str("login", user.Login).Msg("seeded default user")
		}
	}

	db.Model(&models.Group{}).Count(&count)
	if count == 0 {
		group := &models.Group{
			ID:          uuid.NewString(),
			Name:        "default",
			Permissions: models.DefaultPermissions(),
		}

		if err := db.Create(group).Error; err != nil {
			log.Error().Err(err).Msg("failed to seed default group")
		} else {
			log.Info().Str("name", group.Name).Msg("seeded default group")
		}
	}
}
