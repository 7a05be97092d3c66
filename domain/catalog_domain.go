package domain

import (
	"errors"
)

const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategoryDessert   = "dessert"

	UnitGram       = "g"
	UnitMilliliter = "ml"
	UnitPiece      = "pcs"
	UnitTablespoon = "tbsp"
	UnitTeaspoon   = "tsp"
)

// MealCategories is the fixed set of meal slots, in serving order.
var MealCategories = []string{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDessert,
}

var (
	MessageSuccessGetDishes     = "dishes retrieved successfully"
	MessageSuccessGetDish       = "dish retrieved successfully"
	MessageSuccessGetDietTypes  = "diet types retrieved successfully"
	MessageSuccessGetAllergies  = "allergies retrieved successfully"
	MessageFailedGetDishes      = "failed to retrieve dishes"
	MessageFailedGetDish        = "failed to retrieve dish"
	MessageFailedGetDietTypes   = "failed to retrieve diet types"
	MessageFailedGetAllergies   = "failed to retrieve allergies"

	ErrDishNotFound    = errors.New("dish not found")
	ErrInvalidCategory = errors.New("invalid dish category")
)

type (
	DishIngredientLine struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	DishResponse struct {
		ID            string               `json:"id"`
		Name          string               `json:"name"`
		Description   string               `json:"description"`
		Recipe        string               `json:"recipe,omitempty"`
		Category      string               `json:"category"`
		PhotoURL      string               `json:"photo_url,omitempty"`
		DietType      string               `json:"diet_type,omitempty"`
		TotalPrice    float64              `json:"total_price"`
		TotalCalories float64              `json:"total_calories"`
		Ingredients   []DishIngredientLine `json:"ingredients,omitempty"`
	}

	DietTypeResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	AllergyResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
