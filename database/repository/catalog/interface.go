package catalogRepo

import (
	"context"

	"serenity/database"
	"serenity/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository persists categories and services. Deleting a category
// does not cascade to its services.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (string, error)
	UpdateCategory(ctx context.Context, category models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateService(ctx context.Context, service models.Service) (string, error)
	UpdateService(ctx context.Context, service models.Service) error
	DeleteService(ctx context.Context, id string) error
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	ListServicesByCategory(ctx context.Context, categoryID string) ([]models.Service, error)

	WatchCategories(ctx context.Context) (<-chan struct{}, error)
	WatchServices(ctx context.Context) (<-chan struct{}, error)
}

type mongoCatalogRepo struct {
	categories *mongo.Collection
	services   *mongo.Collection
}

// NewMongoCatalogRepo returns a CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	return &mongoCatalogRepo{
		categories: database.Collection("categories"),
		services:   database.Collection("services"),
	}
}
