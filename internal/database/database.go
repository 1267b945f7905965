package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop_back_end/internal/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
	Redis  *redis.Client
)

// Ctx retourne un contexte borné pour un appel base de données.
func Ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// ConnectDatabases initialise MongoDB et Redis. Échec = arrêt immédiat,
// on préfère crasher plutôt que servir dans un état corrompu.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uri := config.MustGet("DB_URI")

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(100).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		log.Fatalf("❌ Échec connexion MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ MongoDB injoignable: %v", err)
	}

	Client = client
	DB = client.Database(config.Get("DB_NAME", "eshop"))
	log.Println("✅ Connecté à MongoDB")

	connectRedis(ctx)

	if err := ensureIndexes(ctx); err != nil {
		log.Fatalf("❌ Échec création des index: %v", err)
	}

	log.Println("✅ Toutes les bases de données sont connectées")
}

func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:         config.Get("REDIS_HOST", "localhost:6379"),
		Password:     config.Get("REDIS_PASSWORD", ""),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Impossible de se connecter à Redis: %v", err)
	}
	log.Println("✅ Redis connecté avec succès")
}

// Collections
func Categories() *mongo.Collection    { return DB.Collection("categories") }
func SubCategories() *mongo.Collection { return DB.Collection("subcategories") }
func Brands() *mongo.Collection        { return DB.Collection("brands") }
func Products() *mongo.Collection      { return DB.Collection("products") }
func Users() *mongo.Collection         { return DB.Collection("users") }
func Carts() *mongo.Collection         { return DB.Collection("carts") }
func Coupons() *mongo.Collection       { return DB.Collection("coupons") }
func Orders() *mongo.Collection        { return DB.Collection("orders") }
func Reviews() *mongo.Collection       { return DB.Collection("reviews") }
