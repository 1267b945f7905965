package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
)

var reviews = handlers.NewFactory[models.Review](
	"avis", database.Reviews,
	handlers.BeforeCreate(func(c *gin.Context, doc *models.Review) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return errors.New("Utilisateur non authentifié")
		}
		doc.User = user.ID

		// Route imbriquée : le produit vient de l'URL.
		if raw := c.Param("productId"); raw != "" {
			oid, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return errors.New("Identifiant de produit invalide")
			}
			doc.Product = oid
		}
		if doc.Product.IsZero() {
			return errors.New("L'avis doit référencer un produit")
		}

		if !handlers.ExistsByID(database.Products(), doc.Product) {
			return errors.New("Ce produit n'existe pas")
		}

		// Un seul avis par (utilisateur, produit). Contrôle applicatif,
		// doublé d'un index unique côté Mongo.
		ctx, cancel := database.Ctx()
		defer cancel()
		count, err := database.Reviews().CountDocuments(ctx, bson.M{"user": doc.User, "product": doc.Product})
		if err != nil {
			return errors.New("Erreur base de données")
		}
		if count > 0 {
			return errors.New("Vous avez déjà déposé un avis pour ce produit")
		}
		return nil
	}),
	handlers.BeforeUpdate[models.Review](func(c *gin.Context, body bson.M) error {
		// Seuls le titre et la note sont modifiables.
		for key := range body {
			if key != "title" && key != "ratings" {
				delete(body, key)
			}
		}

		review, err := loadReview(c.Param("id"))
		if err != nil {
			return err
		}
		user := middleware.CurrentUser(c)
		if user == nil || review.User != user.ID {
			return errors.New("Vous ne pouvez modifier que vos propres avis")
		}
		return nil
	}),
	handlers.BeforeDelete[models.Review](func(c *gin.Context, id primitive.ObjectID) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return errors.New("Utilisateur non authentifié")
		}
		// Admin et manager peuvent supprimer n'importe quel avis.
		if user.Role != models.RoleUser {
			return nil
		}

		review, err := loadReview(id.Hex())
		if err != nil {
			return err
		}
		if review.User != user.ID {
			return errors.New("Vous ne pouvez supprimer que vos propres avis")
		}
		return nil
	}),
	handlers.AfterSave[models.Review](func(ctx context.Context, doc *models.Review) error {
		return RecalcProductRating(ctx, doc.Product)
	}),
	handlers.AfterDelete[models.Review](func(ctx context.Context, doc *models.Review) error {
		return RecalcProductRating(ctx, doc.Product)
	}),
)

func loadReview(id string) (*models.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("Identifiant d'avis invalide")
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var review models.Review
	if err := database.Reviews().FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		return nil, errors.New("Avis introuvable")
	}
	return &review, nil
}

// RecalcProductRating recalcule moyenne et nombre d'avis d'un produit
// par agrégation. Sans avis : moyenne et compteur à zéro.
func RecalcProductRating(ctx context.Context, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"product": productID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"average":  bson.M{"$avg": "$ratings"},
			"quantity": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := database.Reviews().Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}

	var stats []models.ProductRating
	if err := cursor.All(ctx, &stats); err != nil {
		return err
	}

	rating := models.ProductRating{}
	if len(stats) > 0 {
		rating = stats[0]
	}

	_, err = database.Products().UpdateByID(ctx, productID, bson.M{"$set": bson.M{
		"ratingsAverage":  rating.Average,
		"ratingsQuantity": rating.Quantity,
	}})
	if err != nil {
		log.Printf("⚠️ Erreur recalcul notes produit %s: %v", productID.Hex(), err)
	}
	return err
}

// FilterByProduct restreint le listing aux avis d'un produit quand la
// route est imbriquée.
func FilterByProduct(c *gin.Context) {
	if raw := c.Param("productId"); raw != "" {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			handlers.SetBaseFilter(c, bson.M{"product": oid})
		}
	}
	c.Next()
}

var (
	CreateReview = reviews.CreateOne
	GetReviews   = reviews.GetAll
	GetReview    = reviews.GetOne
	UpdateReview = reviews.UpdateOne
	DeleteReview = reviews.DeleteOne
)
