package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes crée les index d'unicité au démarrage. L'unicité
// (user, product) des avis et celle des noms de coupons sont garanties
// ici, côté stockage, en plus du contrôle applicatif.
func ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		Users(): {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		Categories(): {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		Brands(): {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		Coupons(): {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		Reviews(): {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "product", Value: 1}}, Options: unique},
		},
		Carts(): {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
		},
		Products(): {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "slug", Value: 1}}},
		},
		Orders(): {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	log.Println("✅ Index MongoDB vérifiés")
	return nil
}
