package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

func bucket() string {
	b := os.Getenv("MINIO_BUCKET")
	if b == "" {
		b = "uploads"
	}
	return b
}

// ConnectMinio initialise le client MinIO. Non bloquant : sans MinIO
// configuré, l'upload d'images renverra une erreur explicite.
func ConnectMinio(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	exists, err := client.BucketExists(ctx, bucket())
	if err == nil && !exists {
		if err := client.MakeBucket(ctx, bucket(), minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Impossible de créer le bucket :", err)
		}
	}

	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}

// UploadImage stocke une image JPEG déjà redimensionnée et retourne son
// URL publique composée depuis BASE_URL.
func UploadImage(ctx context.Context, objectName string, data []byte) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	_, err := MinioClient.PutObject(ctx, bucket(), objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", err
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return fmt.Sprintf("%s/%s/%s", baseURL, bucket(), objectName), nil
}
