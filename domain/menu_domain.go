package domain

import (
	"errors"
)

var (
	MessageSuccessGetDailyMenu = "daily menu retrieved successfully"
	MessageFailedGetDailyMenu  = "failed to retrieve daily menu"

	ErrSubscriptionExpired = errors.New("subscription expired or missing")
)

type (
	// MenuDish carries a selected dish with its composition already scaled
	// by the profile's count of persons.
	MenuDish struct {
		ID            string               `json:"id"`
		Name          string               `json:"name"`
		Description   string               `json:"description"`
		Recipe        string               `json:"recipe,omitempty"`
		PhotoURL      string               `json:"photo_url,omitempty"`
		TotalPrice    float64              `json:"total_price"`
		TotalCalories float64              `json:"total_calories"`
		Ingredients   []DishIngredientLine `json:"ingredients"`
	}

	DailyMenuResponse struct {
		Date      string               `json:"date"`
		Breakfast *MenuDish            `json:"breakfast"`
		Lunch     *MenuDish            `json:"lunch"`
		Dinner    *MenuDish            `json:"dinner"`
		Dessert   *MenuDish            `json:"dessert"`
	}
)
