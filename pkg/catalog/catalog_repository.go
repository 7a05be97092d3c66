package catalog

import (
	"context"

	"foodplan-backend/entities"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetDishes(ctx context.Context, category string, dietType string, page, limit int) ([]*entities.Dish, int64, error)
		GetDishByID(ctx context.Context, id string) (*entities.Dish, error)
		GetDishesForSelection(ctx context.Context, dietTypeID *string) ([]*entities.Dish, error)
		GetDietTypes(ctx context.Context) ([]*entities.DietType, error)
		GetAllergies(ctx context.Context) ([]*entities.Allergy, error)
		GetDietTypeByName(ctx context.Context, name string) (*entities.DietType, error)
		CreateDietType(ctx context.Context, dietType *entities.DietType) error
		GetAllergyByName(ctx context.Context, name string) (*entities.Allergy, error)
		CreateAllergy(ctx context.Context, allergy *entities.Allergy) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func withComposition(db *gorm.DB) *gorm.DB {
	return db.
		Preload("DietType").
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Ingredient.Allergens")
}

func (r *catalogRepository) GetDishes(ctx context.Context, category string, dietType string, page, limit int) ([]*entities.Dish, int64, error) {
	var dishes []*entities.Dish
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Dish{})

	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if dietType != "" {
		query = query.Joins("JOIN diet_types ON diet_types.id = dishes.diet_type_id").
			Where("diet_types.name = ?", dietType)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withComposition(query).Offset(offset).Limit(limit).Order("name asc").Find(&dishes).Error; err != nil {
		return nil, 0, err
	}

	return dishes, count, nil
}

func (r *catalogRepository) GetDishByID(ctx context.Context, id string) (*entities.Dish, error) {
	var dish entities.Dish
	if err := withComposition(r.db.WithContext(ctx)).Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *catalogRepository) GetDishesForSelection(ctx context.Context, dietTypeID *string) ([]*entities.Dish, error) {
	var dishes []*entities.Dish

	query := r.db.WithContext(ctx)
	if dietTypeID != nil {
		query = query.Where("diet_type_id = ?", *dietTypeID)
	} else {
		query = query.Where("diet_type_id IS NULL")
	}

	if err := withComposition(query).Find(&dishes).Error; err != nil {
		return nil, err
	}

	return dishes, nil
}

func (r *catalogRepository) GetDietTypes(ctx context.Context) ([]*entities.DietType, error) {
	var dietTypes []*entities.DietType
	if err := r.db.WithContext(ctx).Order("name asc").Find(&dietTypes).Error; err != nil {
		return nil, err
	}
	return dietTypes, nil
}

func (r *catalogRepository) GetAllergies(ctx context.Context) ([]*entities.Allergy, error) {
	var allergies []*entities.Allergy
	if err := r.db.WithContext(ctx).Order("name asc").Find(&allergies).Error; err != nil {
		return nil, err
	}
	return allergies, nil
}

func (r *catalogRepository) GetDietTypeByName(ctx context.Context, name string) (*entities.DietType, error) {
	var dietType entities.DietType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&dietType).Error; err != nil {
		return nil, err
	}
	return &dietType, nil
}

func (r *catalogRepository) CreateDietType(ctx context.Context, dietType *entities.DietType) error {
	return r.db.WithContext(ctx).Create(dietType).Error
}

func (r *catalogRepository) GetAllergyByName(ctx context.Context, name string) (*entities.Allergy, error) {
	var allergy entities.Allergy
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&allergy).Error; err != nil {
		return nil, err
	}
	return &allergy, nil
}

func (r *catalogRepository) CreateAllergy(ctx context.Context, allergy *entities.Allergy) error {
	return r.db.WithContext(ctx).Create(allergy).Error
}
