package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/models"
)

var brands = handlers.NewFactory[models.Brand](
	"marque", database.Brands,
	handlers.WithSearch[models.Brand]("name"),
	handlers.BeforeCreate(func(c *gin.Context, doc *models.Brand) error {
		doc.Slug = slug.Make(doc.Name)
		if url := c.GetString(handlers.CtxUploadedImage); url != "" {
			doc.Image = url
		}
		return nil
	}),
	handlers.BeforeUpdate[models.Brand](func(c *gin.Context, body bson.M) error {
		if name, ok := body["name"].(string); ok && name != "" {
			body["slug"] = slug.Make(name)
		}
		if url := c.GetString(handlers.CtxUploadedImage); url != "" {
			body["image"] = url
		}
		return nil
	}),
)

var ResizeBrandImage = handlers.ResizeSingleImage("image", "brands", 600, 600, 90)

var (
	CreateBrand = brands.CreateOne
	GetBrands   = brands.GetAll
	GetBrand    = brands.GetOne
	UpdateBrand = brands.UpdateOne
	DeleteBrand = brands.DeleteOne
)
