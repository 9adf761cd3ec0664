package migration

import (
	"fmt"
	"log"
	"strings"

	"meal-planner/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Store{}); err != nil {
		log.Fatalf("Error migrating store database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PantryItem{}); err != nil {
		log.Fatalf("Error migrating pantry database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealPlanEntry{}); err != nil {
		log.Fatalf("Error migrating meal plan database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Staple{}); err != nil {
		log.Fatalf("Error migrating staple database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.KnownPrice{}); err != nil {
		log.Fatalf("Error migrating known price database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Setting{}); err != nil {
		log.Fatalf("Error migrating setting database: %v", err)
		return err
	}

	if err := migrateStapleFlags(db); err != nil {
		log.Fatalf("Error migrating pantry staple flags: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// migrateStapleFlags copies pantry items still flagged with the legacy
// is_staple column into the staples table. Idempotent: items whose name
// already exists as a staple (case-insensitive) are left alone.
func migrateStapleFlags(db *gorm.DB) error {
	var flagged []entities.PantryItem
	if err := db.Where("is_staple = ?", true).Find(&flagged).Error; err != nil {
		return err
	}

	for _, item := range flagged {
		var count int64
		if err := db.Model(&entities.Staple{}).
			Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(item.Name))).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		staple := entities.Staple{
			Name:             item.Name,
			Category:         item.Category,
			PreferredStoreID: item.PreferredStoreID,
			NeedToBuy:        false,
		}
		if err := db.Create(&staple).Error; err != nil {
			return err
		}
	}
	return nil
}
