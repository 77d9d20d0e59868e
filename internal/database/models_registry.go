package database

import "flick/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Friendship{},
		&models.Swipe{},
		&models.Watch{},
		&models.WatchCompanion{},
		&models.Group{},
		&models.GroupMember{},
		&models.Movie{},
	}
}
