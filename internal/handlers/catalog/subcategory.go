package catalog

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/models"
)

var subCategories = handlers.NewFactory[models.SubCategory](
	"sous-catégorie", database.SubCategories,
	handlers.WithSearch[models.SubCategory]("name"),
	handlers.BeforeCreate(func(c *gin.Context, doc *models.SubCategory) error {
		doc.Slug = slug.Make(doc.Name)

		// Route imbriquée : la catégorie parente vient de l'URL.
		if raw := c.Param("categoryId"); raw != "" {
			oid, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return errors.New("Identifiant de catégorie invalide")
			}
			doc.Category = oid
		}

		if !handlers.ExistsByID(database.Categories(), doc.Category) {
			return errors.New("Cette catégorie n'existe pas")
		}
		return nil
	}),
	handlers.BeforeUpdate[models.SubCategory](func(c *gin.Context, body bson.M) error {
		if name, ok := body["name"].(string); ok && name != "" {
			body["slug"] = slug.Make(name)
		}
		return nil
	}),
)

// FilterByCategory restreint le listing aux sous-catégories d'une
// catégorie quand la route est imbriquée.
func FilterByCategory(c *gin.Context) {
	if raw := c.Param("categoryId"); raw != "" {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			handlers.SetBaseFilter(c, bson.M{"category": oid})
		}
	}
	c.Next()
}

var (
	CreateSubCategory = subCategories.CreateOne
	GetSubCategories  = subCategories.GetAll
	GetSubCategory    = subCategories.GetOne
	UpdateSubCategory = subCategories.UpdateOne
	DeleteSubCategory = subCategories.DeleteOne
)
