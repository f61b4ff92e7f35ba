package adminRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"serenity/database"
	"serenity/models"
)

// AdminRepository stores back-office accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin models.Admin) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type mongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo returns an AdminRepository backed by MongoDB.
func NewMongoAdminRepo() AdminRepository {
	return &mongoAdminRepo{
		coll: database.Collection("admins"),
	}
}

// Create inserts a new admin account and returns its ID.
func (r *mongoAdminRepo) Create(ctx context.Context, admin models.Admin) (string, error) {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	admin.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return "", err
	}
	return admin.ID, nil
}

// GetByEmail returns the admin account registered under an email.
func (r *mongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}
