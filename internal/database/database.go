package database

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// --- Global clients ---
var (
	Sheets *sheets.Service
	Redis  *redis.Client
	MinIO  *minio.Client
)

// ConnectDatabases initializes every external client. The Google Sheet is
// the authoritative store, so a failure there is fatal; Redis and MinIO are
// optional and only disable rate limiting / uploads when absent.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := connectSheets(ctx); err != nil {
		log.Fatalf("❌ Google Sheets init failed: %v", err)
	}

	connectRedis(ctx)
	connectMinIO()

	log.Println("✅ External services connected")
}

// connectSheets builds the Sheets client from the service account env vars.
// The private key usually arrives with literal \n sequences from .env files.
func connectSheets(ctx context.Context) error {
	clientEmail := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL")
	privateKey := strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n")

	if clientEmail == "" || privateKey == "" {
		return errors.New("GOOGLE_SERVICE_ACCOUNT_EMAIL / GOOGLE_PRIVATE_KEY missing")
	}

	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{"https://www.googleapis.com/auth/spreadsheets"},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return err
	}

	Sheets = svc
	log.Println("✅ Google Sheets client ready:", clientEmail)
	return nil
}

func connectRedis(ctx context.Context) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		log.Println("⚠️ REDIS_HOST not set — rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v) — rate limiting disabled", err)
		return
	}

	Redis = client
	log.Println("✅ Redis connected:", redisHost)
}

func connectMinIO() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT not set — image upload disabled")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: strings.ToLower(os.Getenv("MINIO_USE_SSL")) == "true",
	})
	if err != nil {
		log.Println("⚠️ MinIO init failed:", err)
		return
	}

	MinIO = client
	log.Println("✅ MinIO connected:", endpoint)
}
