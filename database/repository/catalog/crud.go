package catalogRepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"serenity/models"
)

// CreateCategory inserts a new category and returns its ID.
func (r *mongoCatalogRepo) CreateCategory(ctx context.Context, category models.Category) (string, error) {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		return "", err
	}
	return category.ID, nil
}

// UpdateCategory replaces an existing category's mutable fields.
func (r *mongoCatalogRepo) UpdateCategory(ctx context.Context, category models.Category) error {
	res, err := r.categories.UpdateOne(ctx, bson.M{"id": category.ID}, bson.M{"$set": bson.M{
		"title":   category.Title,
		"img_url": category.ImageURL,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("category not found")
	}
	return nil
}

// DeleteCategory removes a category by ID. Services referencing it are
// left untouched.
func (r *mongoCatalogRepo) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.categories.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("category not found")
	}
	return nil
}

// ListCategories returns all categories.
func (r *mongoCatalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateService inserts a new service and returns its ID.
func (r *mongoCatalogRepo) CreateService(ctx context.Context, service models.Service) (string, error) {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	if _, err := r.services.InsertOne(ctx, service); err != nil {
		return "", err
	}
	return service.ID, nil
}

// UpdateService replaces an existing service's mutable fields.
func (r *mongoCatalogRepo) UpdateService(ctx context.Context, service models.Service) error {
	res, err := r.services.UpdateOne(ctx, bson.M{"id": service.ID}, bson.M{"$set": bson.M{
		"title":       service.Title,
		"price":       service.Price,
		"description": service.Description,
		"img_url":     service.ImageURL,
		"category_id": service.CategoryID,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("service not found")
	}
	return nil
}

// DeleteService removes a service by ID.
func (r *mongoCatalogRepo) DeleteService(ctx context.Context, id string) error {
	res, err := r.services.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("service not found")
	}
	return nil
}

// GetServiceByID returns a service by its ID.
func (r *mongoCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		return nil, err
	}
	return &service, nil
}

// ListServices returns all services.
func (r *mongoCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	return r.findServices(ctx, bson.M{})
}

// ListServicesByCategory returns the services referencing a category.
func (r *mongoCatalogRepo) ListServicesByCategory(ctx context.Context, categoryID string) ([]models.Service, error) {
	return r.findServices(ctx, bson.M{"category_id": categoryID})
}

func (r *mongoCatalogRepo) findServices(ctx context.Context, filter bson.M) ([]models.Service, error) {
	cursor, err := r.services.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}
