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

// POST /api/v1/addresses
func AddAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Alias      string `json:"alias" binding:"required"`
		Details    string `json:"details" binding:"required"`
		Phone      string `json:"phone"`
		City       string `json:"city"`
		PostalCode string `json:"postalCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	address := models.Address{
		ID:         primitive.NewObjectID(),
		Alias:      input.Alias,
		Details:    input.Details,
		Phone:      input.Phone,
		City:       input.City,
		PostalCode: input.PostalCode,
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	_, err := database.Users().UpdateByID(ctx, user.ID, bson.M{
		"$push": bson.M{"addresses": address},
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
		"message": "Adresse ajoutée",
		"data":    updated.Addresses,
	})
}

// DELETE /api/v1/addresses/:addressId
func RemoveAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'adresse invalide"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	_, err = database.Users().UpdateByID(ctx, user.ID, bson.M{
		"$pull": bson.M{"addresses": bson.M{"_id": oid}},
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
		"message": "Adresse supprimée",
		"data":    updated.Addresses,
	})
}

// GET /api/v1/addresses
func GetAddresses(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var current models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": user.ID}).Decode(&current); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	addresses := current.Addresses
	if addresses == nil {
		addresses = []models.Address{}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "results": len(addresses), "data": addresses})
}
