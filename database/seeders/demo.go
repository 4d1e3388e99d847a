package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/database"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo inserts a starter admin, a seller, and a couple of plants so a
// fresh install has something to browse. Skips entirely if any user exists.
func SeedDemo(ctx context.Context, db *database.Mongo) error {
	users := db.Collection(database.UsersCollection)

	count, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	seller := models.Seller{
		Email: "seller@plantnet.app",
		Name:  "Demo Seller",
		Image: "https://i.ibb.co/tpHpX09/default-avatar.png",
	}

	_, err = users.InsertMany(ctx, []interface{}{
		models.User{
			Name:      "Demo Admin",
			Email:     "admin@plantnet.app",
			Role:      models.RoleAdmin,
			CreatedAt: now,
		},
		models.User{
			Name:      seller.Name,
			Email:     seller.Email,
			Image:     seller.Image,
			Role:      models.RoleSeller,
			CreatedAt: now,
		},
	})
	if err != nil {
		return err
	}

	plants := db.Collection(database.PlantsCollection)
	_, err = plants.InsertMany(ctx, []interface{}{
		models.Plant{
			Name:        "Monstera Deliciosa",
			Category:    "indoor",
			Description: "Split-leaf philodendron, tolerant of low light.",
			Price:       25,
			Quantity:    10,
			Image:       "https://i.ibb.co/0j1Z3yF/monstera.jpg",
			Seller:      seller,
			CreatedAt:   now,
		},
		models.Plant{
			Name:        "Snake Plant",
			Category:    "succulent",
			Description: "Nearly indestructible, thrives on neglect.",
			Price:       15,
			Quantity:    25,
			Image:       "https://i.ibb.co/8x3vR2k/snake-plant.jpg",
			Seller:      seller,
			CreatedAt:   now,
		},
	})
	return err
}
