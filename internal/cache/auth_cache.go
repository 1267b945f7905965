package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"eshop_back_end/internal/database"
	"eshop_back_end/internal/models"
)

// TTL court : le middleware Protect relit Mongo toutes les 15 minutes maximum.
const userCacheTTL = 15 * time.Minute

func userKey(id string) string {
	return fmt.Sprintf("auth:user:%s", id)
}

// GetUser récupère l'utilisateur authentifié depuis Redis.
// Sérialisé en BSON : les champs sensibles (passwordChangedAt notamment)
// sont masqués en JSON mais doivent survivre au cache.
func GetUser(ctx context.Context, id string) (*models.User, bool) {
	data, err := database.Redis.Get(ctx, userKey(id)).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}

	var user models.User
	if err := bson.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// SetUser met l'utilisateur en cache après un aller Mongo.
func SetUser(ctx context.Context, user *models.User) {
	data, err := bson.Marshal(user)
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, userKey(user.ID.Hex()), data, userCacheTTL).Err(); err != nil {
		log.Printf("⚠️ Erreur écriture cache utilisateur: %v", err)
	}
}

// InvalidateUser purge le cache — obligatoire après changement de mot de
// passe ou de profil, sinon Protect servirait des données périmées.
func InvalidateUser(ctx context.Context, id string) {
	if err := database.Redis.Del(ctx, userKey(id)).Err(); err != nil {
		log.Printf("⚠️ Erreur invalidation cache utilisateur: %v", err)
	}
}
