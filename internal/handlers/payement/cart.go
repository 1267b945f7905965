package payement

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
	"eshop_back_end/internal/utils"
)

func loadCart(userID primitive.ObjectID) (*models.Cart, error) {
	ctx, cancel := database.Ctx()
	defer cancel()

	var cart models.Cart
	if err := database.Carts().FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// saveCart recalcule le total puis persiste le panier. Toute mutation
// annule la remise coupon en cours.
func saveCart(cart *models.Cart) error {
	cart.TotalCartPrice = totalOfItems(cart.CartItems)
	cart.TotalPriceAfterDiscount = 0
	cart.UpdatedAt = time.Now()

	ctx, cancel := database.Ctx()
	defer cancel()

	_, err := database.Carts().UpdateByID(ctx, cart.ID, bson.M{
		"$set": bson.M{
			"cartItems":      cart.CartItems,
			"totalCartPrice": cart.TotalCartPrice,
			"updatedAt":      cart.UpdatedAt,
		},
		"$unset": bson.M{"totalPriceAfterDiscount": ""},
	})
	return err
}

func cartResponse(c *gin.Context, status int, cart *models.Cart, message string) {
	body := gin.H{
		"status":         "success",
		"numOfCartItems": len(cart.CartItems),
		"data":           cart,
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// POST /api/v1/cart
func AddProductToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de produit invalide"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	// Le prix vient toujours du produit, jamais du client.
	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ce produit n'existe pas"})
		return
	}

	price := product.Price
	if product.PriceAfterDiscount > 0 {
		price = product.PriceAfterDiscount
	}

	cart, err := loadCart(user.ID)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		cart = &models.Cart{
			ID:   primitive.NewObjectID(),
			User: user.ID,
			CartItems: []models.CartItem{{
				ID:       primitive.NewObjectID(),
				Product:  productID,
				Quantity: 1,
				Color:    input.Color,
				Price:    price,
			}},
		}
		cart.TotalCartPrice = totalOfItems(cart.CartItems)
		cart.Stamp(now)

		if _, err := database.Carts().InsertOne(ctx, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
			return
		}
		cartResponse(c, http.StatusOK, cart, "Produit ajouté au panier")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	// Même produit, même couleur : on incrémente la quantité.
	found := false
	for i := range cart.CartItems {
		if cart.CartItems[i].Product == productID && cart.CartItems[i].Color == input.Color {
			cart.CartItems[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.CartItems = append(cart.CartItems, models.CartItem{
			ID:       primitive.NewObjectID(),
			Product:  productID,
			Quantity: 1,
			Color:    input.Color,
			Price:    price,
		})
	}

	if err := saveCart(cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}
	cartResponse(c, http.StatusOK, cart, "Produit ajouté au panier")
}

// GET /api/v1/cart
func GetLoggedUserCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	cart, err := loadCart(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vous n'avez pas de panier"})
		return
	}

	cartResponse(c, http.StatusOK, cart, "")
}

// PUT /api/v1/cart/:itemId
func UpdateCartItemQuantity(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'article invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	cart, err := loadCart(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vous n'avez pas de panier"})
		return
	}

	found := false
	for i := range cart.CartItems {
		if cart.CartItems[i].ID == itemID {
			cart.CartItems[i].Quantity = input.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cet article n'est pas dans votre panier"})
		return
	}

	if err := saveCart(cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}
	cartResponse(c, http.StatusOK, cart, "")
}

// DELETE /api/v1/cart/:itemId
func RemoveCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'article invalide"})
		return
	}

	cart, err := loadCart(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vous n'avez pas de panier"})
		return
	}

	items := cart.CartItems[:0]
	for _, item := range cart.CartItems {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	cart.CartItems = items

	if err := saveCart(cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}
	cartResponse(c, http.StatusOK, cart, "")
}

// DELETE /api/v1/cart
func ClearCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	if _, err := database.Carts().DeleteOne(ctx, bson.M{"user": user.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	c.Status(http.StatusNoContent)
}

// PUT /api/v1/cart/applyCoupon
func ApplyCoupon(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Coupon string `json:"coupon" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var coupon models.Coupon
	err := database.Coupons().FindOne(ctx, bson.M{
		"name":   input.Coupon,
		"expire": bson.M{"$gt": time.Now()},
	}).Decode(&coupon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon invalide ou expiré"})
		return
	}

	cart, err := loadCart(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vous n'avez pas de panier"})
		return
	}

	cart.TotalPriceAfterDiscount = applyDiscount(cart.TotalCartPrice, coupon.Discount)
	cart.UpdatedAt = time.Now()

	_, err = database.Carts().UpdateByID(ctx, cart.ID, bson.M{"$set": bson.M{
		"totalPriceAfterDiscount": cart.TotalPriceAfterDiscount,
		"updatedAt":               cart.UpdatedAt,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	cartResponse(c, http.StatusOK, cart, "Coupon appliqué")
}
