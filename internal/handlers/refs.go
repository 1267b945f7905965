package handlers

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eshop_back_end/internal/database"
)

// ExistsByID fait un contrôle de référence (clé étrangère applicative).
func ExistsByID(coll *mongo.Collection, id primitive.ObjectID) bool {
	ctx, cancel := database.Ctx()
	defer cancel()

	count, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	return err == nil && count > 0
}

// AllExistByID vérifie que tous les identifiants référencent un document,
// optionnellement restreints par un filtre supplémentaire.
func AllExistByID(coll *mongo.Collection, ids []primitive.ObjectID, extra bson.M) bool {
	if len(ids) == 0 {
		return true
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	for k, v := range extra {
		filter[k] = v
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	count, err := coll.CountDocuments(ctx, filter)
	return err == nil && count == int64(len(ids))
}
