package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/ats/analysis/analysisapi"
	"github.com/folioforge/ats/ats/analysis/analysisinfra"
	"github.com/folioforge/ats/ats/analysis/analysissrv"
	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/ats/taxonomy/taxonomyapi"
	"github.com/folioforge/ats/ats/taxonomy/taxonomyinfra"
	"github.com/folioforge/ats/ats/taxonomy/taxonomysrv"
	"github.com/folioforge/ats/internal/docext"
	"github.com/folioforge/ats/pkg/fsx"
	"github.com/folioforge/ats/pkg/fsx/fsxs3"
	"github.com/folioforge/ats/pkg/logx"
)

const (
	defaultMaxUploadBytes   = 10 << 20 // 10 MiB
	defaultExtractTimeout   = 10 * time.Second
	defaultTaxonomyCacheTTL = 24 * time.Hour
)

// Container holds all application dependencies. Postgres, Redis, OpenAI and
// S3 are each optional: the engine runs fully in-memory without them and the
// dependent features degrade gracefully.
type Container struct {
	// Config
	MaxUploadBytes int
	ExtractTimeout time.Duration
	CacheTTL       time.Duration

	// Infrastructure
	DB       *sqlx.DB       // nil without DB_HOST
	Redis    *redis.Client  // nil without REDIS_ADDR
	S3Client *s3.Client     // nil without ARCHIVE_BUCKET
	Archive  fsx.FileSystem // nil without ARCHIVE_BUCKET

	// Services
	TaxonomyService *taxonomysrv.TaxonomyService
	AnalysisService *analysissrv.Service

	// API Handlers
	TaxonomyHandlers *taxonomyapi.Handlers
	AnalysisHandlers *analysisapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initConfig()
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initConfig() {
	c.MaxUploadBytes = envInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	c.ExtractTimeout = time.Duration(envInt("EXTRACT_TIMEOUT_SECONDS", int(defaultExtractTimeout/time.Second))) * time.Second
	c.CacheTTL = time.Duration(envInt("TAXONOMY_CACHE_TTL_MINUTES", int(defaultTaxonomyCacheTTL/time.Minute))) * time.Minute
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection (optional, enables analysis history)
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))

		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db
	} else {
		logx.Warn("DB_HOST not set, analysis history is disabled")
	}

	// 2. Redis Connection (optional, enables taxonomy caching)
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})
		if err := c.Redis.Ping(context.Background()).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. AWS S3 (optional, enables upload archival)
	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.Archive = fsxs3.NewS3FileSystem(c.S3Client, bucket, "resumes")
	}
}

func (c *Container) initServices() {
	// --- Taxonomy ---
	var generative taxonomy.Provider
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		generative = taxonomyinfra.NewOpenAIProvider(apiKey)
	} else {
		logx.Warn("OPENAI_API_KEY not set, unknown professions will not be generated")
	}

	var cache taxonomy.Cache
	if c.Redis != nil {
		cache = taxonomyinfra.NewRedisCache(c.Redis, c.CacheTTL)
	}

	c.TaxonomyService = taxonomysrv.NewTaxonomyService(taxonomyinfra.NewStaticProvider(), generative, cache)

	// --- Analysis ---
	var history analysis.HistoryRepository
	if c.DB != nil {
		repo := analysisinfra.NewPostgresHistoryRepository(c.DB)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			logx.Fatalf("Failed to prepare analysis history schema: %v", err)
		}
		history = repo
	}

	extractor := docext.NewExtractor(int64(c.MaxUploadBytes), c.ExtractTimeout)
	c.AnalysisService = analysissrv.NewService(extractor, history)

	// --- Handlers ---
	c.TaxonomyHandlers = taxonomyapi.NewHandlers(c.TaxonomyService)
	c.AnalysisHandlers = analysisapi.NewHandlers(c.AnalysisService, c.Archive, c.MaxUploadBytes)
}

// Close releases the container's connections
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logx.Warnf("Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}
