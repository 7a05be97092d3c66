package catalog

import (
	"context"
	"errors"

	"foodplan-backend/domain"
	"foodplan-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CatalogService interface {
		GetDishes(ctx context.Context, category string, dietType string, page, limit int) ([]domain.DishResponse, int64, error)
		GetDishByID(ctx context.Context, id string) (domain.DishResponse, error)
		GetDietTypes(ctx context.Context) ([]domain.DietTypeResponse, error)
		GetAllergies(ctx context.Context) ([]domain.AllergyResponse, error)

		// ResolveDietType and ResolveAllergy return the catalog record for
		// a code, creating it when absent.
		ResolveDietType(ctx context.Context, name string) (*entities.DietType, error)
		ResolveAllergy(ctx context.Context, name string) (*entities.Allergy, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
	}
)

func NewCatalogService(catalogRepository CatalogRepository) CatalogService {
	return &catalogService{catalogRepository: catalogRepository}
}

func toDishResponse(dish *entities.Dish, includeRecipe bool) domain.DishResponse {
	res := domain.DishResponse{
		ID:            dish.ID.String(),
		Name:          dish.Name,
		Description:   dish.Description,
		Category:      dish.Category,
		PhotoURL:      dish.PhotoURL,
		TotalPrice:    dish.TotalPrice(),
		TotalCalories: dish.TotalCalories(),
	}
	if includeRecipe {
		res.Recipe = dish.Recipe
	}
	if dish.DietType != nil {
		res.DietType = dish.DietType.Name
	}
	for _, di := range dish.Ingredients {
		if di.Ingredient == nil {
			continue
		}
		res.Ingredients = append(res.Ingredients, domain.DishIngredientLine{
			Name:     di.Ingredient.Name,
			Quantity: di.Quantity,
			Unit:     di.Ingredient.Unit,
		})
	}
	return res
}

func (s *catalogService) GetDishes(ctx context.Context, category string, dietType string, page, limit int) ([]domain.DishResponse, int64, error) {
	if category != "" && category != "all" {
		valid := false
		for _, c := range domain.MealCategories {
			if category == c {
				valid = true
				break
			}
		}
		if !valid {
			return nil, 0, domain.ErrInvalidCategory
		}
	}

	dishes, count, err := s.catalogRepository.GetDishes(ctx, category, dietType, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		response = append(response, toDishResponse(dish, false))
	}

	return response, count, nil
}

func (s *catalogService) GetDishByID(ctx context.Context, id string) (domain.DishResponse, error) {
	dish, err := s.catalogRepository.GetDishByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DishResponse{}, domain.ErrDishNotFound
		}
		return domain.DishResponse{}, err
	}

	return toDishResponse(dish, true), nil
}

func (s *catalogService) GetDietTypes(ctx context.Context) ([]domain.DietTypeResponse, error) {
	dietTypes, err := s.catalogRepository.GetDietTypes(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.DietTypeResponse, 0, len(dietTypes))
	for _, dietType := range dietTypes {
		response = append(response, domain.DietTypeResponse{
			ID:   dietType.ID.String(),
			Name: dietType.Name,
		})
	}

	return response, nil
}

func (s *catalogService) GetAllergies(ctx context.Context) ([]domain.AllergyResponse, error) {
	allergies, err := s.catalogRepository.GetAllergies(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.AllergyResponse, 0, len(allergies))
	for _, allergy := range allergies {
		response = append(response, domain.AllergyResponse{
			ID:   allergy.ID.String(),
			Name: allergy.Name,
		})
	}

	return response, nil
}

func (s *catalogService) ResolveDietType(ctx context.Context, name string) (*entities.DietType, error) {
	dietType, err := s.catalogRepository.GetDietTypeByName(ctx, name)
	if err == nil {
		return dietType, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dietType = &entities.DietType{ID: uuid.New(), Name: name}
	if err := s.catalogRepository.CreateDietType(ctx, dietType); err != nil {
		return nil, err
	}
	return dietType, nil
}

func (s *catalogService) ResolveAllergy(ctx context.Context, name string) (*entities.Allergy, error) {
	allergy, err := s.catalogRepository.GetAllergyByName(ctx, name)
	if err == nil {
		return allergy, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	allergy = &entities.Allergy{ID: uuid.New(), Name: name}
	if err := s.catalogRepository.CreateAllergy(ctx, allergy); err != nil {
		return nil, err
	}
	return allergy, nil
}
