package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/models"
)

var categories = handlers.NewFactory[models.Category](
	"catégorie", database.Categories,
	handlers.WithSearch[models.Category]("name"),
	handlers.BeforeCreate(func(c *gin.Context, doc *models.Category) error {
		doc.Slug = slug.Make(doc.Name)
		if url := c.GetString(handlers.CtxUploadedImage); url != "" {
			doc.Image = url
		}
		return nil
	}),
	handlers.BeforeUpdate[models.Category](func(c *gin.Context, body bson.M) error {
		if name, ok := body["name"].(string); ok && name != "" {
			body["slug"] = slug.Make(name)
		}
		if url := c.GetString(handlers.CtxUploadedImage); url != "" {
			body["image"] = url
		}
		return nil
	}),
)

// Image catégorie : 600x600, JPEG qualité 90.
var ResizeCategoryImage = handlers.ResizeSingleImage("image", "categories", 600, 600, 90)

var (
	CreateCategory = categories.CreateOne
	GetCategories  = categories.GetAll
	GetCategory    = categories.GetOne
	UpdateCategory = categories.UpdateOne
	DeleteCategory = categories.DeleteOne
)
