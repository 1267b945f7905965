package user

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop_back_end/internal/cache"
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/handlers"
	"eshop_back_end/internal/middleware"
	"eshop_back_end/internal/models"
	"eshop_back_end/internal/utils"
)

// Champs modifiables par la route admin. Le mot de passe a sa propre route.
var updatableUserFields = map[string]bool{
	"name":         true,
	"slug":         true,
	"email":        true,
	"phone":        true,
	"profileImage": true,
	"role":         true,
}

var users = handlers.NewFactory[models.User](
	"utilisateur", database.Users,
	handlers.WithSearch[models.User]("name", "email"),
	handlers.Hide[models.User]("password", "passwordChangedAt",
		"passwordResetCode", "passwordResetExpires", "passwordResetVerified"),
	handlers.BeforeCreate(func(c *gin.Context, doc *models.User) error {
		doc.Slug = slug.Make(doc.Name)
		if doc.Role == "" {
			doc.Role = models.RoleUser
		}
		doc.Active = true

		if url := c.GetString(handlers.CtxUploadedImage); url != "" {
			doc.ProfileImage = url
		}

		hashed, err := utils.HashPassword(doc.Password)
		if err != nil {
			return errors.New("Erreur lors du hachage du mot de passe")
		}
		doc.Password = hashed
		return nil
	}),
	handlers.BeforeUpdate[models.User](func(c *gin.Context, body bson.M) error {
		for key := range body {
			if !updatableUserFields[key] {
				delete(body, key)
			}
		}
		if name, ok := body["name"].(string); ok && name != "" {
			body["slug"] = slug.Make(name)
		}
		if url := c.GetString(handlers.CtxUploadedImage); url != "" {
			body["profileImage"] = url
		}
		cache.InvalidateUser(c.Request.Context(), c.Param("id"))
		return nil
	}),
)

var ResizeUserImage = handlers.ResizeSingleImage("profileImage", "users", 600, 600, 90)

var (
	CreateUser = users.CreateOne
	GetUsers   = users.GetAll
	GetUser    = users.GetOne
	UpdateUser = users.UpdateOne
	DeleteUser = users.DeleteOne
)

func changePassword(c *gin.Context, userID primitive.ObjectID, newPassword string) error {
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	now := time.Now()
	res, err := database.Users().UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"password":          hashed,
		"passwordChangedAt": now,
		"updatedAt":         now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	cache.InvalidateUser(c.Request.Context(), userID.Hex())
	return nil
}

// PUT /api/v1/users/:id/password (admin)
func UpdateUserPassword(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	if err := changePassword(c, oid, input.Password); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aucun document avec cet identifiant: " + c.Param("id") + " !"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// SetMeParam réécrit :id vers l'utilisateur connecté, pour réutiliser
// les handlers admin sur les routes /me.
func SetMeParam(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		c.Abort()
		return
	}
	c.Params = append(c.Params, gin.Param{Key: "id", Value: user.ID.Hex()})
	c.Next()
}

// PUT /api/v1/users/updateMe
func UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Name  string `json:"name" binding:"omitempty,min=2"`
		Email string `json:"email" binding:"omitempty,email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
		set["slug"] = slug.Make(input.Name)
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := database.Users().FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cette adresse e-mail est déjà utilisée"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	cache.InvalidateUser(c.Request.Context(), user.ID.Hex())
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// PUT /api/v1/users/updateMyPassword
func UpdateMyPassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		Password        string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.AbortValidation(c, err)
		return
	}

	valid, err := utils.VerifyPassword(input.CurrentPassword, user.Password)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe actuel incorrect"})
		return
	}

	if err := changePassword(c, user.ID, input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	// Nouveau token : l'ancien est invalidé par passwordChangedAt.
	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	log.Printf("✅ Mot de passe mis à jour pour %s", user.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// DELETE /api/v1/users/deleteMe — désactivation, pas de suppression.
func DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := database.Ctx()
	defer cancel()

	_, err := database.Users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"active":    false,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}

	cache.InvalidateUser(c.Request.Context(), user.ID.Hex())
	c.Status(http.StatusNoContent)
}
