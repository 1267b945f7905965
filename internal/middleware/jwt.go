package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop_back_end/internal/cache"
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/models"
	"eshop_back_end/internal/utils"
)

// Clés du contexte gin posées par Protect.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Protect vérifie le token porteur, recharge l'utilisateur (cache Redis
// puis Mongo) et rejette les tokens émis avant un changement de mot de passe.
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Vous n'êtes pas connecté. Veuillez vous identifier."})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide ou expiré"})
			c.Abort()
			return
		}

		user, err := currentUser(c, claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "L'utilisateur lié à ce token n'existe plus."})
			c.Abort()
			return
		}

		// Token émis avant le dernier changement de mot de passe : rejeté.
		if user.PasswordChangedAt != nil && staleToken(claims.IssuedAt, *user.PasswordChangedAt) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe changé récemment. Veuillez vous reconnecter."})
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID.Hex())
		c.Set(CtxRole, user.Role)

		c.Next()
	}
}

// staleToken compare l'émission du token au dernier changement de mot de
// passe. L'iat JWT est tronqué à la seconde : on tronque les deux côtés,
// sinon le token renvoyé juste après un changement de mot de passe serait
// rejeté à vie.
func staleToken(issuedAt, changedAt time.Time) bool {
	return issuedAt.Before(changedAt.Truncate(time.Second))
}

func currentUser(c *gin.Context, id string) (*models.User, error) {
	if user, ok := cache.GetUser(c.Request.Context(), id); ok {
		return user, nil
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}

	cache.SetUser(c.Request.Context(), &user)
	return &user, nil
}

// CurrentUser récupère l'utilisateur posé par Protect.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		log.Println("⚠️ CurrentUser appelé sans middleware Protect")
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
