package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP        HTTP
		Log         Log
		PG          PG
		S3          S3
		Media       Media
		Razorpay    Razorpay
		Kafka       Kafka
		OutboxRelay OutboxRelay
		Swagger     Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Media struct {
		Endpoint     string        `env:"MEDIA_ENDPOINT,required"`
		FetchTimeout time.Duration `env:"MEDIA_FETCH_TIMEOUT" envDefault:"15s"`
		StampText    string        `env:"MEDIA_STAMP_TEXT" envDefault:"pixelshop"`
	}

	Razorpay struct {
		Endpoint      string        `env:"RAZORPAY_ENDPOINT" envDefault:"https://api.razorpay.com"`
		KeyID         string        `env:"RAZORPAY_KEY_ID,required"`
		KeySecret     string        `env:"RAZORPAY_KEY_SECRET,required"`
		WebhookSecret string        `env:"RAZORPAY_WEBHOOK_SECRET,required"`
		Timeout       time.Duration `env:"RAZORPAY_TIMEOUT" envDefault:"10s"`
		Currency      string        `env:"RAZORPAY_CURRENCY" envDefault:"INR"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS,required"`
		Topic   string   `env:"KAFKA_TOPIC,required"`
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
