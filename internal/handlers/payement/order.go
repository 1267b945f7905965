package payement

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop_back_end/internal/config"
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
)

var orders = handlers.NewFactory[models.Order](
	"commande", database.Orders,
	handlers.WithLookup[models.Order](handlers.Lookup{
		From: "users", LocalField: "user", As: "user", Single: true,
	}),
	handlers.Hide[models.Order]("user.password", "user.passwordChangedAt",
		"user.passwordResetCode", "user.passwordResetExpires", "user.passwordResetVerified"),
)

var (
	GetOrders = orders.GetAll
	GetOrder  = orders.GetOne
)

// FilterOrdersForUser restreint le listing aux commandes de l'utilisateur
// connecté ; admin et manager voient tout.
func FilterOrdersForUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user != nil && user.Role == models.RoleUser {
		handlers.SetBaseFilter(c, bson.M{"user": user.ID})
	}
	c.Next()
}

func envPrice(key string) float64 {
	v, err := strconv.ParseFloat(config.Get(key, "0"), 64)
	if err != nil {
		return 0
	}
	return v
}

// stockUpdates construit les écritures de stock d'une commande :
// quantité décrémentée, compteur de ventes incrémenté.
func stockUpdates(items []models.CartItem) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": item.Product}).
			SetUpdate(bson.M{"$inc": bson.M{
				"quantity": -item.Quantity,
				"sold":     item.Quantity,
			}}))
	}
	return writes
}

func buildOrder(cart *models.Cart, shipping models.ShippingAddress, paymentMethod string) *models.Order {
	cartPrice := cart.TotalCartPrice
	if cart.TotalPriceAfterDiscount > 0 {
		cartPrice = cart.TotalPriceAfterDiscount
	}

	taxPrice := envPrice("TAX_PRICE")
	shippingPrice := envPrice("SHIPPING_PRICE")

	order := &models.Order{
		ID:                primitive.NewObjectID(),
		User:              cart.User,
		CartItems:         cart.CartItems,
		ShippingAddress:   shipping,
		TaxPrice:          taxPrice,
		ShippingPrice:     shippingPrice,
		TotalOrderPrice:   round2(cartPrice + taxPrice + shippingPrice),
		PaymentMethodType: paymentMethod,
	}
	order.Stamp(time.Now())
	return order
}

// createOrderFromCart insère la commande, décrémente les stocks et supprime
// le panier dans une même transaction : pas de commande sans décrément, pas
// de décrément sans commande.
func createOrderFromCart(ctx context.Context, order *models.Order, cartID primitive.ObjectID) error {
	session, err := database.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := database.Orders().InsertOne(sc, order); err != nil {
			return nil, err
		}
		if len(order.CartItems) > 0 {
			if _, err := database.Products().BulkWrite(sc, stockUpdates(order.CartItems)); err != nil {
				return nil, err
			}
		}
		if _, err := database.Carts().DeleteOne(sc, bson.M{"_id": cartID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// POST /api/v1/orders/:cartId — commande en paiement à la livraison.
func CreateCashOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	cartID, err := primitive.ObjectIDFromHex(c.Param("cartId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de panier invalide"})
		return
	}

	var input struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var cart models.Cart
	if err := database.Carts().FindOne(ctx, bson.M{"_id": cartID, "user": user.ID}).Decode(&cart); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun panier avec cet identifiant: %s !", c.Param("cartId"))})
		return
	}

	order := buildOrder(&cart, input.ShippingAddress, models.PaymentMethodCash)

	if err := createOrderFromCart(ctx, order, cart.ID); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la commande"})
		return
	}

	log.Printf("✅ Commande %s créée pour %s", order.ID.Hex(), user.Email)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": order})
}

func markOrder(c *gin.Context, update bson.M) {
	id := c.Param("id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	update["updatedAt"] = time.Now()

	var order models.Order
	err = database.Orders().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun document avec cet identifiant: %s !", id)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": order})
}

// PUT /api/v1/orders/:id/pay
func UpdateOrderToPaid(c *gin.Context) {
	markOrder(c, bson.M{"isPaid": true, "paidAt": time.Now()})
}

// PUT /api/v1/orders/:id/deliver
func UpdateOrderToDelivered(c *gin.Context) {
	markOrder(c, bson.M{"isDelivered": true, "deliveredAt": time.Now()})
}
