package payement

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	checkoutsession "github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop_back_end/internal/config"
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
	"eshop_back_end/internal/utils"
)

// GET /api/v1/orders/checkout-session/:cartId — session Stripe hébergée
// pour le paiement par carte.
func CheckoutSession(c *gin.Context) {
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

	ctx, cancel := database.Ctx()
	defer cancel()

	var cart models.Cart
	if err := database.Carts().FindOne(ctx, bson.M{"_id": cartID, "user": user.ID}).Decode(&cart); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun panier avec cet identifiant: %s !", c.Param("cartId"))})
		return
	}

	cartPrice := cart.TotalCartPrice
	if cart.TotalPriceAfterDiscount > 0 {
		cartPrice = cart.TotalPriceAfterDiscount
	}
	totalPrice := round2(cartPrice + envPrice("TAX_PRICE") + envPrice("SHIPPING_PRICE"))

	baseURL := config.Get("BASE_URL", "http://localhost:8080")

	// L'adresse de livraison voyage dans les métadonnées Stripe : le
	// webhook la retrouve au moment de créer la commande.
	metadata := map[string]string{}
	if c.Request.ContentLength > 0 {
		var input struct {
			ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			metadata["details"] = input.ShippingAddress.Details
			metadata["phone"] = input.ShippingAddress.Phone
			metadata["city"] = input.ShippingAddress.City
			metadata["postalCode"] = input.ShippingAddress.PostalCode
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("eur"),
				UnitAmount: stripe.Int64(int64(totalPrice * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Commande de " + user.Name),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(baseURL + "/orders"),
		CancelURL:         stripe.String(baseURL + "/cart"),
		CustomerEmail:     stripe.String(user.Email),
		ClientReferenceID: stripe.String(cart.ID.Hex()),
		Metadata:          metadata,
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création de la session de paiement"})
		return
	}

	log.Printf("💳 Session checkout créée: %s (%.2f€) pour %s", session.ID, totalPrice, user.Email)
	c.JSON(http.StatusOK, gin.H{"status": "success", "session": gin.H{
		"id":  session.ID,
		"url": session.URL,
	}})
}

// POST /api/v1/webhook-checkout — appelé par Stripe, hors authentification.
func WebhookCheckout(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := config.Get("STRIPE_WEBHOOK_SECRET", "")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu: %s", event.Type)
	if event.Type == "checkout.session.completed" {
		handleCheckoutCompleted(event)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleCheckoutCompleted crée la commande carte payée depuis la session
// Stripe. Rejouer l'événement est sans effet : le panier est supprimé avec
// la commande, un second passage ne le retrouve pas.
func handleCheckoutCompleted(event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Println("❌ Erreur décodage session:", err)
		return
	}

	cartID, err := primitive.ObjectIDFromHex(session.ClientReferenceID)
	if err != nil {
		log.Println("⚠️ Référence panier invalide:", session.ClientReferenceID)
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var cart models.Cart
	if err := database.Carts().FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart); err != nil {
		log.Println("🔁 Panier introuvable, commande déjà traitée ?")
		return
	}

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": session.CustomerEmail}).Decode(&user); err != nil {
		log.Println("❌ Utilisateur introuvable:", session.CustomerEmail)
		return
	}

	shipping := models.ShippingAddress{
		Details:    session.Metadata["details"],
		Phone:      session.Metadata["phone"],
		City:       session.Metadata["city"],
		PostalCode: session.Metadata["postalCode"],
	}

	order := buildOrder(&cart, shipping, models.PaymentMethodCard)
	order.TotalOrderPrice = round2(float64(session.AmountTotal) / 100)
	order.IsPaid = true
	now := time.Now()
	order.PaidAt = &now

	if err := createOrderFromCart(ctx, order, cart.ID); err != nil {
		log.Printf("❌ Erreur création commande carte: %v", err)
		return
	}
	log.Printf("✅ Commande carte %s créée pour %s", order.ID.Hex(), user.Email)

	go func() {
		body := fmt.Sprintf("Bonjour %s,\n\nVotre paiement de %.2f€ a bien été reçu. Votre commande %s est en préparation.",
			user.Name, order.TotalOrderPrice, order.ID.Hex())
		if err := utils.SendEmail(user.Email, "Confirmation de votre commande", body); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation:", err)
		} else {
			log.Println("📧 E-mail de confirmation envoyé à", user.Email)
		}
	}()
}
