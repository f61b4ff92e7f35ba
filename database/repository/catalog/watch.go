package catalogRepo

import (
	"context"

	"serenity/database"
)

// WatchCategories ticks once per change to the categories collection.
func (r *mongoCatalogRepo) WatchCategories(ctx context.Context) (<-chan struct{}, error) {
	return database.WatchCollection(ctx, r.categories)
}

// WatchServices ticks once per change to the services collection.
func (r *mongoCatalogRepo) WatchServices(ctx context.Context) (<-chan struct{}, error) {
	return database.WatchCollection(ctx, r.services)
}
