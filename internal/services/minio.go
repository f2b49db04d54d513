package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"strings"
	"time"

	"tamaq_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFoodImage pousse l'image d'un plat dans le bucket MinIO et
// retourne l'URL publique stockée sur la ligne food.
func UploadFoodImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	_, err = database.MinIO.PutObject(ctx, bucket, file.Filename, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, file.Filename), nil
}

// GenerateSignedURL génère une URL signée à durée limitée pour une image
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	prefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), bucket)
	key := strings.TrimPrefix(objectPath, prefix)

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, make(url.Values))
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
