package menu

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"time"

	"foodplan-backend/domain"
	"foodplan-backend/entities"
	"foodplan-backend/pkg/catalog"
	"foodplan-backend/pkg/profile"

	"gorm.io/gorm"
)

type (
	MenuService interface {
		GetDailyMenu(ctx context.Context, userID string, date time.Time) (domain.DailyMenuResponse, error)
	}

	menuService struct {
		profileRepository profile.ProfileRepository
		catalogRepository catalog.CatalogRepository
	}
)

func NewMenuService(profileRepository profile.ProfileRepository, catalogRepository catalog.CatalogRepository) MenuService {
	return &menuService{
		profileRepository: profileRepository,
		catalogRepository: catalogRepository,
	}
}

func (s *menuService) GetDailyMenu(ctx context.Context, userID string, date time.Time) (domain.DailyMenuResponse, error) {
	userProfile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DailyMenuResponse{}, domain.ErrProfileNotFound
		}
		return domain.DailyMenuResponse{}, err
	}

	if !userProfile.HasSubscription(date) {
		return domain.DailyMenuResponse{}, domain.ErrSubscriptionExpired
	}

	var dietTypeID *string
	if userProfile.DietTypeID != nil {
		id := userProfile.DietTypeID.String()
		dietTypeID = &id
	}

	dishes, err := s.catalogRepository.GetDishesForSelection(ctx, dietTypeID)
	if err != nil {
		return domain.DailyMenuResponse{}, err
	}

	selection := SelectMeals(userProfile, dishes, date)

	persons := userProfile.CountOfPersons
	if persons < 1 {
		persons = 1
	}

	response := domain.DailyMenuResponse{
		Date:      date.Format("2006-01-02"),
		Breakfast: toMenuDish(selection[domain.CategoryBreakfast], persons),
		Lunch:     toMenuDish(selection[domain.CategoryLunch], persons),
		Dinner:    toMenuDish(selection[domain.CategoryDinner], persons),
		Dessert:   toMenuDish(selection[domain.CategoryDessert], persons),
	}
	return response, nil
}

// SelectMeals picks one dish per enabled meal category. The choice is
// uniformly random over the eligible dishes but seeded from the date and
// the profile's user, so repeated calls on the same day return the same
// menu. Categories with no eligible dish map to nil.
func SelectMeals(userProfile *entities.UserProfile, dishes []*entities.Dish, date time.Time) map[string]*entities.Dish {
	selection := make(map[string]*entities.Dish, len(domain.MealCategories))

	for _, category := range domain.MealCategories {
		selection[category] = nil
		if !categoryEnabled(userProfile, category) {
			continue
		}

		var candidates []*entities.Dish
		for _, dish := range dishes {
			if dish.Category != category {
				continue
			}
			if !Eligible(userProfile, dish) {
				continue
			}
			candidates = append(candidates, dish)
		}
		if len(candidates) == 0 {
			continue
		}

		rng := rand.New(rand.NewSource(menuSeed(userProfile, date, category)))
		selection[category] = candidates[rng.Intn(len(candidates))]
	}

	return selection
}

// Eligible reports whether a dish fits the profile: no ingredient may
// carry an allergen from the profile's allergy set, and when a budget
// limit is set the dish priced for the whole household must stay within it.
func Eligible(userProfile *entities.UserProfile, dish *entities.Dish) bool {
	if len(userProfile.Allergies) > 0 {
		allergyIDs := make(map[string]struct{}, len(userProfile.Allergies))
		for _, allergy := range userProfile.Allergies {
			allergyIDs[allergy.ID.String()] = struct{}{}
		}
		for _, di := range dish.Ingredients {
			if di.Ingredient == nil {
				continue
			}
			for _, allergen := range di.Ingredient.Allergens {
				if _, ok := allergyIDs[allergen.ID.String()]; ok {
					return false
				}
			}
		}
	}

	if userProfile.BudgetLimit != nil {
		persons := userProfile.CountOfPersons
		if persons < 1 {
			persons = 1
		}
		if dish.TotalPrice()*float64(persons) > *userProfile.BudgetLimit {
			return false
		}
	}

	return true
}

func categoryEnabled(userProfile *entities.UserProfile, category string) bool {
	switch category {
	case domain.CategoryBreakfast:
		return userProfile.Breakfast
	case domain.CategoryLunch:
		return userProfile.Lunch
	case domain.CategoryDinner:
		return userProfile.Dinner
	case domain.CategoryDessert:
		return userProfile.Dessert
	default:
		return false
	}
}

// menuSeed derives the PRNG seed from the calendar day, the user and the
// category, so each category's pick is stable for the whole day and does
// not shift when another category's candidate pool changes.
func menuSeed(userProfile *entities.UserProfile, date time.Time, category string) int64 {
	h := fnv.New64a()
	h.Write([]byte(date.Format("2006-01-02")))
	h.Write(userProfile.UserID[:])
	h.Write([]byte(category))
	return int64(h.Sum64())
}

func toMenuDish(dish *entities.Dish, persons int) *domain.MenuDish {
	if dish == nil {
		return nil
	}

	res := &domain.MenuDish{
		ID:            dish.ID.String(),
		Name:          dish.Name,
		Description:   dish.Description,
		Recipe:        dish.Recipe,
		PhotoURL:      dish.PhotoURL,
		TotalPrice:    dish.TotalPrice() * float64(persons),
		TotalCalories: dish.TotalCalories() * float64(persons),
		Ingredients:   []domain.DishIngredientLine{},
	}
	for _, di := range dish.Ingredients {
		if di.Ingredient == nil {
			continue
		}
		res.Ingredients = append(res.Ingredients, domain.DishIngredientLine{
			Name:     di.Ingredient.Name,
			Quantity: di.Quantity * float64(persons),
			Unit:     di.Ingredient.Unit,
		})
	}
	return res
}
