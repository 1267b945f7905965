package user

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"eshop_back_end/internal/cache"
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/models"
	"eshop_back_end/internal/utils"
)

const resetCodeValidity = 5 * time.Minute

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func generateResetCode() (string, error) {
	// Code à 6 chiffres, 100000-999999.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// POST /api/v1/auth/forgotPassword
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Aucun utilisateur avec cette adresse: %s !", input.Email)})
		return
	}

	code, err := generateResetCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du code"})
		return
	}

	expires := time.Now().Add(resetCodeValidity)
	verified := false

	_, err = database.Users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"passwordResetCode":     hashResetCode(code),
		"passwordResetExpires":  expires,
		"passwordResetVerified": verified,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	body := fmt.Sprintf("Bonjour %s,\n\nNous avons reçu une demande de réinitialisation du mot de passe de votre compte E-Shop.\nVotre code de réinitialisation est: %s\n\nCe code expire dans 5 minutes.", user.Name, code)

	if err := utils.SendEmail(user.Email, "Votre code de réinitialisation (valide 5 min)", body); err != nil {
		// Échec d'envoi : on retire le code, sinon il resterait actif.
		_, _ = database.Users().UpdateByID(ctx, user.ID, bson.M{"$unset": bson.M{
			"passwordResetCode":     "",
			"passwordResetExpires":  "",
			"passwordResetVerified": "",
		}})
		log.Printf("❌ Erreur envoi e-mail de réinitialisation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi de l'e-mail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Code de réinitialisation envoyé par e-mail"})
}

// POST /api/v1/auth/verifyResetCode
func VerifyResetCode(c *gin.Context) {
	var input struct {
		ResetCode string `json:"resetCode" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var user models.User
	err := database.Users().FindOne(ctx, bson.M{
		"passwordResetCode":    hashResetCode(input.ResetCode),
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code de réinitialisation invalide ou expiré"})
		return
	}

	_, err = database.Users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{"passwordResetVerified": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// POST /api/v1/auth/resetPassword
func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse e-mail invalide"})
		return
	}

	if user.PasswordResetVerified == nil || !*user.PasswordResetVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez d'abord vérifier votre code de réinitialisation"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	now := time.Now()
	_, err = database.Users().UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"password": hashed, "passwordChangedAt": now, "updatedAt": now},
		"$unset": bson.M{
			"passwordResetCode":     "",
			"passwordResetExpires":  "",
			"passwordResetVerified": "",
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	// Les anciens tokens sont désormais rejetés par Protect.
	cache.InvalidateUser(c.Request.Context(), user.ID.Hex())

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	log.Printf("✅ Mot de passe réinitialisé pour %s", user.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
