package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretLength = 16

type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	TokenSecret    []byte
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	StripeKey      string
	Currency       string
	CORSOrigins    []string
	Minio          MinioConfig
}

// MinioConfig describes the bucket meal images are uploaded to.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Enabled reports whether every setting needed to connect is present.
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != "" && m.Bucket != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and reports every problem at once.
func FromEnv(getenv func(string) string) (*Config, error) {
	var errs []error
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	duration := func(key, def string) time.Duration {
		raw := get(key, def)
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		}
		return d
	}

	cfg := &Config{
		Port:           get("PORT", "5000"),
		DBName:         get("DB_NAME", "hostelManagement"),
		TokenSecret:    []byte(get("ACCESS_TOKEN_SECRET", "")),
		TokenTTL:       duration("TOKEN_TTL", "1h"),
		RequestTimeout: duration("REQUEST_TIMEOUT", "10s"),
		StripeKey:      get("STRIPE_SECRET_KEY", ""),
		Currency:       strings.ToLower(get("PAYMENT_CURRENCY", "usd")),
		Minio: MinioConfig{
			Endpoint:  get("MINIO_ENDPOINT", ""),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			Bucket:    get("MINIO_BUCKET", ""),
			PublicURL: get("MINIO_PUBLIC_URL", ""),
		},
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: invalid port %q", cfg.Port))
	}

	cfg.MongoURI = get("MONGODB_URI", "")
	if cfg.MongoURI == "" {
		user, pass := get("DB_USER", ""), get("DB_PASS", "")
		if user == "" || pass == "" {
			errs = append(errs, errors.New("MONGODB_URI or DB_USER/DB_PASS must be set"))
		} else {
			cfg.MongoURI = atlasURI(user, pass, get("DB_CLUSTER", "cluster0.qkg2o.mongodb.net"))
		}
	}

	if len(cfg.TokenSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_SECRET: must be at least %d bytes", minSecretLength))
	}

	if origins := get("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func atlasURI(user, pass, cluster string) string {
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     cluster,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}
