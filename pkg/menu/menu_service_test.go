package menu

import (
	"testing"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDish(name, category string, price, calories float64, allergens ...*entities.Allergy) *entities.Dish {
	ingredient := &entities.Ingredient{
		ID:        uuid.New(),
		Name:      name + " base",
		Price:     price,
		Calories:  calories,
		Unit:      domain.UnitGram,
		Allergens: allergens,
	}
	return &entities.Dish{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Ingredients: []*entities.DishIngredient{
			{
				ID:         uuid.New(),
				Quantity:   1,
				Ingredient: ingredient,
			},
		},
	}
}

func makeProfile() *entities.UserProfile {
	return &entities.UserProfile{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CountOfPersons: 1,
		Breakfast:      true,
		Lunch:          true,
		Dinner:         true,
		Dessert:        false,
	}
}

func TestSelectMealsSingleKetoBreakfast(t *testing.T) {
	userProfile := makeProfile()
	userProfile.Lunch = false
	userProfile.Dinner = false

	dish := makeDish("Keto omelette", domain.CategoryBreakfast, 200, 300)
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	selection := SelectMeals(userProfile, []*entities.Dish{dish}, date)

	require.NotNil(t, selection[domain.CategoryBreakfast])
	assert.Equal(t, dish.ID, selection[domain.CategoryBreakfast].ID)
	assert.Nil(t, selection[domain.CategoryLunch])
	assert.Nil(t, selection[domain.CategoryDinner])
	assert.Nil(t, selection[domain.CategoryDessert])
}

func TestSelectMealsDeterministicPerDay(t *testing.T) {
	userProfile := makeProfile()

	var dishes []*entities.Dish
	for _, category := range domain.MealCategories {
		for i := 0; i < 5; i++ {
			dishes = append(dishes, makeDish(category+" option", category, float64(50+i*10), 200))
		}
	}

	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	first := SelectMeals(userProfile, dishes, date)
	second := SelectMeals(userProfile, dishes, date)

	for _, category := range domain.MealCategories {
		if first[category] == nil {
			assert.Nil(t, second[category])
			continue
		}
		require.NotNil(t, second[category])
		assert.Equal(t, first[category].ID, second[category].ID, "category %s drifted between calls", category)
	}

	// the evening call must match the morning call of the same day
	evening := SelectMeals(userProfile, dishes, date.Add(10*time.Hour))
	assert.Equal(t, first[domain.CategoryLunch].ID, evening[domain.CategoryLunch].ID)
}

func TestSelectMealsDisabledCategoryYieldsNil(t *testing.T) {
	userProfile := makeProfile()
	// dessert stays disabled by default

	dishes := []*entities.Dish{
		makeDish("Cheesecake", domain.CategoryDessert, 90, 450),
	}

	selection := SelectMeals(userProfile, dishes, time.Now())
	assert.Nil(t, selection[domain.CategoryDessert])
}

func TestSelectMealsRespectsBudget(t *testing.T) {
	userProfile := makeProfile()
	userProfile.CountOfPersons = 3
	budget := 200.0
	userProfile.BudgetLimit = &budget

	cheap := makeDish("Porridge", domain.CategoryBreakfast, 50, 250)
	expensive := makeDish("Truffle toast", domain.CategoryBreakfast, 120, 400)
	dishes := []*entities.Dish{cheap, expensive}

	// whatever the seed picks, the pick must fit the household budget
	for day := 1; day <= 20; day++ {
		date := time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC)
		selection := SelectMeals(userProfile, dishes, date)
		require.NotNil(t, selection[domain.CategoryBreakfast])
		assert.LessOrEqual(t,
			selection[domain.CategoryBreakfast].TotalPrice()*float64(userProfile.CountOfPersons),
			budget,
		)
	}
}

func TestSelectMealsExcludesAllergens(t *testing.T) {
	nuts := &entities.Allergy{ID: uuid.New(), Name: "nuts"}
	dairy := &entities.Allergy{ID: uuid.New(), Name: "dairy"}

	userProfile := makeProfile()
	userProfile.Allergies = []*entities.Allergy{nuts}

	safe := makeDish("Fruit salad", domain.CategoryBreakfast, 60, 150)
	withNuts := makeDish("Granola", domain.CategoryBreakfast, 70, 350, nuts)
	withDairy := makeDish("Yogurt bowl", domain.CategoryBreakfast, 65, 250, dairy)
	dishes := []*entities.Dish{safe, withNuts, withDairy}

	for day := 1; day <= 20; day++ {
		date := time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC)
		selection := SelectMeals(userProfile, dishes, date)
		require.NotNil(t, selection[domain.CategoryBreakfast])
		assert.NotEqual(t, withNuts.ID, selection[domain.CategoryBreakfast].ID)
	}
}

func TestSelectMealsAllCandidatesExcluded(t *testing.T) {
	nuts := &entities.Allergy{ID: uuid.New(), Name: "nuts"}

	userProfile := makeProfile()
	userProfile.Allergies = []*entities.Allergy{nuts}

	dishes := []*entities.Dish{
		makeDish("Granola", domain.CategoryBreakfast, 70, 350, nuts),
	}

	selection := SelectMeals(userProfile, dishes, time.Now())
	assert.Nil(t, selection[domain.CategoryBreakfast])
}

func TestEligibleBudgetBoundary(t *testing.T) {
	userProfile := makeProfile()
	userProfile.CountOfPersons = 2
	budget := 100.0
	userProfile.BudgetLimit = &budget

	exact := makeDish("Exact fit", domain.CategoryLunch, 50, 300)
	over := makeDish("Just over", domain.CategoryLunch, 50.01, 300)

	assert.True(t, Eligible(userProfile, exact))
	assert.False(t, Eligible(userProfile, over))
}

func TestToMenuDishScalesByPersons(t *testing.T) {
	dish := makeDish("Soup", domain.CategoryLunch, 40, 120)

	scaled := toMenuDish(dish, 4)
	require.NotNil(t, scaled)
	assert.Equal(t, 160.0, scaled.TotalPrice)
	assert.Equal(t, 480.0, scaled.TotalCalories)
	require.Len(t, scaled.Ingredients, 1)
	assert.Equal(t, 4.0, scaled.Ingredients[0].Quantity)

	assert.Nil(t, toMenuDish(nil, 4))
}
