package catalog

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/models"
)

var products = handlers.NewFactory[models.Product](
	"produit", database.Products,
	// La recherche produit couvre le titre ET la description.
	handlers.WithSearch[models.Product]("title", "description"),
	handlers.WithLookup[models.Product](handlers.Lookup{
		From: "categories", LocalField: "category", As: "category", Single: true,
	}),
	handlers.WithLookup[models.Product](handlers.Lookup{
		From: "subcategories", LocalField: "subCategories", As: "subCategories",
	}),
	handlers.WithLookup[models.Product](handlers.Lookup{
		From: "brands", LocalField: "brand", As: "brand", Single: true,
	}),
	handlers.WithLookup[models.Product](handlers.Lookup{
		From: "reviews", LocalField: "_id", ForeignField: "product", As: "reviews",
	}),
	handlers.BeforeCreate(func(c *gin.Context, doc *models.Product) error {
		doc.Slug = slug.Make(doc.Title)

		if url := c.GetString(handlers.CtxUploadedCover); url != "" {
			doc.ImageCover = url
		}
		if v, ok := c.Get(handlers.CtxUploadedImages); ok {
			if urls, ok := v.([]string); ok {
				doc.Images = urls
			}
		}
		if doc.ImageCover == "" {
			return errors.New("L'image de couverture du produit est obligatoire")
		}

		if !handlers.ExistsByID(database.Categories(), doc.Category) {
			return errors.New("Cette catégorie n'existe pas")
		}
		if !handlers.AllExistByID(database.SubCategories(), doc.SubCategories, nil) {
			return errors.New("Certaines sous-catégories n'existent pas")
		}
		// Les sous-catégories doivent appartenir à la catégorie du produit.
		if !handlers.AllExistByID(database.SubCategories(), doc.SubCategories, bson.M{"category": doc.Category}) {
			return errors.New("Certaines sous-catégories n'appartiennent pas à cette catégorie")
		}
		if doc.Brand != nil && !handlers.ExistsByID(database.Brands(), *doc.Brand) {
			return errors.New("Cette marque n'existe pas")
		}
		return nil
	}),
	handlers.BeforeUpdate[models.Product](func(c *gin.Context, body bson.M) error {
		if title, ok := body["title"].(string); ok && title != "" {
			body["slug"] = slug.Make(title)
		}
		if url := c.GetString(handlers.CtxUploadedCover); url != "" {
			body["imageCover"] = url
		}
		if v, ok := c.Get(handlers.CtxUploadedImages); ok {
			if urls, ok := v.([]string); ok {
				body["images"] = urls
			}
		}
		return nil
	}),
)

var ResizeProductImages = handlers.ResizeProductImages()

var (
	CreateProduct = products.CreateOne
	GetProducts   = products.GetAll
	GetProduct    = products.GetOne
	UpdateProduct = products.UpdateOne
	DeleteProduct = products.DeleteOne
)
