package migration

import (
	"fmt"
	"log"

	"foodplan-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Allergy{}); err != nil {
		log.Fatalf("Error migrating allergy database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DietType{}); err != nil {
		log.Fatalf("Error migrating diet type database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Dish{}); err != nil {
		log.Fatalf("Error migrating dish database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DishIngredient{}); err != nil {
		log.Fatalf("Error migrating dish ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserProfile{}); err != nil {
		log.Fatalf("Error migrating user profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SubscriptionOrder{}); err != nil {
		log.Fatalf("Error migrating subscription order database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
