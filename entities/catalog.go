package entities

import (
	"github.com/google/uuid"
)

type Allergy struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`

	Timestamp
}

type DietType struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`

	Timestamp
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`    // per unit
	Calories float64   `json:"calories"` // per unit
	Unit     string    `json:"unit"`     // g, ml, pcs, tbsp, tsp

	Allergens []*Allergy `gorm:"many2many:ingredient_allergens" json:"allergens,omitempty"`
	Timestamp
}

type Dish struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string     `json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Recipe      string     `gorm:"type:text" json:"recipe"`
	Category    string     `json:"category"` // breakfast, lunch, dinner, dessert
	PhotoURL    string     `json:"photo_url,omitempty"`
	DietTypeID  *uuid.UUID `json:"diet_type_id,omitempty"`

	DietType    *DietType         `gorm:"foreignKey:DietTypeID"`
	Ingredients []*DishIngredient `gorm:"foreignKey:DishID"`
	Timestamp
}

type DishIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DishID       uuid.UUID `json:"dish_id"`
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Position     int       `json:"position"`

	Dish       *Dish       `gorm:"foreignKey:DishID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Timestamp
}

// TotalPrice is derived from the composition, it is never stored.
func (d *Dish) TotalPrice() float64 {
	var total float64
	for _, di := range d.Ingredients {
		if di.Ingredient != nil {
			total += di.Quantity * di.Ingredient.Price
		}
	}
	return total
}

func (d *Dish) TotalCalories() float64 {
	var total float64
	for _, di := range d.Ingredients {
		if di.Ingredient != nil {
			total += di.Quantity * di.Ingredient.Calories
		}
	}
	return total
}
