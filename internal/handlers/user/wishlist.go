package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
	"eshop_back_end/internal/utils"
)

// POST /api/v1/wishlist
func AddToWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	oid, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de produit invalide"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	if count, err := database.Products().CountDocuments(ctx, bson.M{"_id": oid}); err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ce produit n'existe pas"})
		return
	}

	// $addToSet : pas de doublon si le produit est déjà dans la liste.
	_, err = database.Users().UpdateByID(ctx, user.ID, bson.M{
		"$addToSet": bson.M{"wishlist": oid},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var updated models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Produit ajouté à votre liste d'envies",
		"data":    updated.Wishlist,
	})
}

// DELETE /api/v1/wishlist/:productId
func RemoveFromWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de produit invalide"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	_, err = database.Users().UpdateByID(ctx, user.ID, bson.M{
		"$pull": bson.M{"wishlist": oid},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	var updated models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Produit retiré de votre liste d'envies",
		"data":    updated.Wishlist,
	})
}

// GET /api/v1/wishlist — liste avec les produits développés.
func GetWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	ids := user.Wishlist
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "results": 0, "data": []models.Product{}})
		return
	}

	cursor, err := database.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "results": len(products), "data": products})
}
