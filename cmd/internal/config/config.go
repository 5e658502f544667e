package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	envVarsPrefix = "/entitysearch/prod/"
	ssmRegion     = "us-east-2"
)

// Config is the runtime configuration of the API, read from the process
// environment.
type Config struct {
	Port            int
	DatabasePath    string
	HistoryDBPath   string
	SearchLatency   time.Duration
	SuggestDebounce time.Duration
	SearchPoolSize  int
	MachineID       int64
	S3Bucket        string
	S3Region        string
	MinhaReceitaURL string
	CompanyCacheTTL time.Duration
	CacheSweepEvery time.Duration
}

// ExportEnabled reports whether recent searches can be exported to S3.
func (c Config) ExportEnabled() bool {
	return c.S3Bucket != ""
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LoadEnvironment populates the process environment: from AWS SSM Parameter
// Store when GO_ENV is "production", from a .env file otherwise.
func LoadEnvironment(ctx context.Context) error {
	if os.Getenv("GO_ENV") == "production" {
		return loadProdEnv(ctx)
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env is fine, the defaults and real env still apply.
		log.Warnf("no .env file loaded: %v", err)
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to the
// defaults for unset keys. Malformed values are an error.
func FromEnv() (Config, error) {
	p := parser{}
	cfg := Config{
		Port:            p.integer("PORT", 7070),
		DatabasePath:    str("DATABASE_PATH", "database.db"),
		HistoryDBPath:   str("HISTORY_DB_PATH", "recent-searches.db"),
		SearchLatency:   p.millis("SEARCH_LATENCY_MS", 800),
		SuggestDebounce: p.millis("SUGGEST_DEBOUNCE_MS", 300),
		SearchPoolSize:  p.integer("SEARCH_POOL_SIZE", 16),
		MachineID:       int64(p.integer("MACHINE_ID", 1)),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		S3Region:        str("AWS_S3_REGION", "us-east-2"),
		MinhaReceitaURL: str("MINHARECEITA_URL", "https://minhareceita.org/"),
		CompanyCacheTTL: p.duration("COMPANY_CACHE_TTL", 10*time.Hour),
		CacheSweepEvery: p.duration("COMPANY_CACHE_SWEEP_INTERVAL", time.Hour),
	}
	if p.err != nil {
		return Config{}, p.err
	}

	if cfg.SearchPoolSize < 1 {
		return Config{}, fmt.Errorf("SEARCH_POOL_SIZE must be positive, got %d", cfg.SearchPoolSize)
	}
	if cfg.SearchLatency < 0 || cfg.SuggestDebounce < 0 {
		return Config{}, fmt.Errorf("latency and debounce must not be negative")
	}
	return cfg, nil
}

func str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parser keeps the first conversion error so FromEnv can read every key
// before checking.
type parser struct {
	err error
}

func (p *parser) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n
}

func (p *parser) millis(key string, def int) time.Duration {
	return time.Duration(p.integer(key, def)) * time.Millisecond
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ssmRegion))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := (*param.Name)[len(envVarsPrefix):]
			if err := os.Setenv(key, *param.Value); err != nil {
				return fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}
	log.Debugf("loaded %d prod environment variables", count)
	return nil
}
