// Package config provides configuration management for Lexroute.
package config

import (
	"fmt"
	"time"
)

// Config is the global configuration for Lexroute.
type Config struct {
	// App is the application configuration.
	App AppConfig `mapstructure:"app" validate:"required"`

	// Server is the HTTP server configuration.
	Server ServerConfig `mapstructure:"server" validate:"required"`

	// Log is the logging configuration.
	Log LogConfig `mapstructure:"log" validate:"required"`

	// Classifier is the domain classifier configuration.
	Classifier ClassifierConfig `mapstructure:"classifier"`

	// Policy is the decision policy configuration.
	Policy PolicyConfig `mapstructure:"policy"`

	// Feedback is the reward computation configuration.
	Feedback FeedbackConfig `mapstructure:"feedback"`

	// Engine is the session orchestrator configuration.
	Engine EngineConfig `mapstructure:"engine"`

	// Storage is the persistence configuration.
	Storage StorageConfig `mapstructure:"storage"`

	// Metrics is the observability configuration.
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Tracing is the distributed tracing configuration.
	Tracing TracingConfig `mapstructure:"tracing"`
}

// AppConfig holds application metadata and settings.
type AppConfig struct {
	// Name is the application name.
	Name string `mapstructure:"name" validate:"required"`

	// Version is the application version.
	Version string `mapstructure:"version"`

	// Environment is the runtime environment (development, staging, production).
	Environment string `mapstructure:"environment" validate:"oneof=development staging production"`

	// Debug enables debug mode with verbose logging.
	Debug bool `mapstructure:"debug"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	// Host is the bind address.
	Host string `mapstructure:"host"`

	// Port is the HTTP API port.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`

	// HTTP is the HTTP server configuration.
	HTTP HTTPConfig `mapstructure:"http"`

	// CORS is the CORS configuration.
	CORS CORSConfig `mapstructure:"cors"`

	// RateLimit is the per-client rate limit configuration.
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// HTTPConfig holds HTTP-specific settings.
type HTTPConfig struct {
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	MaxHeaderBytes int `mapstructure:"max_header_bytes"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	// Enabled enables CORS support.
	Enabled bool `mapstructure:"enabled"`

	// AllowedOrigins is the list of allowed origins.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// AllowedMethods is the list of allowed HTTP methods.
	AllowedMethods []string `mapstructure:"allowed_methods"`

	// AllowedHeaders is the list of allowed headers.
	AllowedHeaders []string `mapstructure:"allowed_headers"`

	// AllowCredentials indicates whether credentials are allowed.
	AllowCredentials bool `mapstructure:"allow_credentials"`

	// MaxAge is the maximum age of CORS preflight cache in seconds.
	MaxAge int `mapstructure:"max_age"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	// Enabled enables request rate limiting.
	Enabled bool `mapstructure:"enabled"`

	// RequestsPerSecond is the sustained request rate per client.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"min=0"`

	// Burst is the maximum burst size per client.
	Burst int `mapstructure:"burst" validate:"min=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`

	// Format is the output format (json, text).
	Format string `mapstructure:"format" validate:"oneof=json text"`

	// Output is the output destination (stdout, stderr, or file path).
	Output string `mapstructure:"output"`
}

// ClassifierConfig holds domain classifier settings.
type ClassifierConfig struct {
	// ConfidenceThreshold is the minimum confidence for a domain prediction.
	// Below this the classifier reports the unknown domain.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" validate:"min=0,max=1"`

	// PosteriorWeight is the blend weight of the bayes posterior score.
	// The similarity score receives 1 - PosteriorWeight.
	PosteriorWeight float64 `mapstructure:"posterior_weight" validate:"min=0,max=1"`

	// Smoothing is the Lidstone smoothing constant for the bayes model.
	Smoothing float64 `mapstructure:"smoothing" validate:"min=0"`

	// HoldoutFraction is the fraction of examples held out for validation
	// during retraining.
	HoldoutFraction float64 `mapstructure:"holdout_fraction" validate:"min=0,max=0.5"`

	// AccuracyFloor is the minimum holdout accuracy a retrained snapshot
	// must reach once the previous snapshot has met it. The bootstrap
	// fit is exempt.
	AccuracyFloor float64 `mapstructure:"accuracy_floor" validate:"min=0,max=1"`

	// RegressionMargin is how far below the previous snapshot's accuracy a
	// retrained snapshot may fall before being rejected.
	RegressionMargin float64 `mapstructure:"regression_margin" validate:"min=0,max=1"`
}

// PolicyConfig holds decision policy settings.
type PolicyConfig struct {
	// LearningRate is the constant step size for value updates.
	LearningRate float64 `mapstructure:"learning_rate" validate:"min=0,max=1"`

	// InitialEpsilon is the starting exploration rate.
	InitialEpsilon float64 `mapstructure:"initial_epsilon" validate:"min=0,max=1"`

	// MinEpsilon is the exploration floor; the policy never explores less
	// than this.
	MinEpsilon float64 `mapstructure:"min_epsilon" validate:"min=0,max=1"`

	// EpsilonDecayVisits controls how fast epsilon decays with state visits.
	EpsilonDecayVisits int `mapstructure:"epsilon_decay_visits" validate:"min=1"`

	// RewardWindow is how many recent rewards feed the state's feedback
	// summary bucket.
	RewardWindow int `mapstructure:"reward_window" validate:"min=1"`
}

// FeedbackConfig holds reward computation settings.
type FeedbackConfig struct {
	// DwellCapSeconds clips dwell time before scaling.
	DwellCapSeconds float64 `mapstructure:"dwell_cap_seconds" validate:"min=0"`

	// DwellBonusMax is the maximum reward bonus from dwell time.
	DwellBonusMax float64 `mapstructure:"dwell_bonus_max" validate:"min=0"`

	// RewardMin is the lower clip bound of the final reward.
	RewardMin float64 `mapstructure:"reward_min"`

	// RewardMax is the upper clip bound of the final reward.
	RewardMax float64 `mapstructure:"reward_max"`
}

// EngineConfig holds session orchestrator settings.
type EngineConfig struct {
	// CheckpointInterval is how often the policy table is persisted.
	CheckpointInterval time.Duration `mapstructure:"checkpoint_interval"`

	// RetrainMinExamples is the minimum number of feedback-derived labels
	// before a retrain is attempted.
	RetrainMinExamples int `mapstructure:"retrain_min_examples" validate:"min=1"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// Type is the storage backend (memory, badger).
	Type string `mapstructure:"type" validate:"oneof=memory badger"`

	// Badger is the BadgerDB configuration.
	Badger BadgerConfig `mapstructure:"badger"`

	// Redis is the session cache configuration.
	Redis RedisConfig `mapstructure:"redis"`
}

// BadgerConfig holds BadgerDB-specific settings.
type BadgerConfig struct {
	// Path is the database directory path.
	Path string `mapstructure:"path"`

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool `mapstructure:"sync_writes"`

	// ValueLogFileSize is the maximum size of value log files in bytes.
	ValueLogFileSize int64 `mapstructure:"value_log_file_size"`

	// NumVersionsToKeep is the number of versions to keep per key.
	NumVersionsToKeep int `mapstructure:"num_versions_to_keep"`
}

// RedisConfig holds Redis session cache settings.
type RedisConfig struct {
	// Enabled enables the Redis aggregate cache in front of the store.
	Enabled bool `mapstructure:"enabled"`

	// Address is the Redis server address.
	Address string `mapstructure:"address"`

	// Password is the Redis password.
	Password string `mapstructure:"password"`

	// DB is the Redis database number.
	DB int `mapstructure:"db"`

	// TTL is the cache entry lifetime.
	TTL time.Duration `mapstructure:"ttl"`
}

// MetricsConfig holds observability settings.
type MetricsConfig struct {
	// Enabled enables metrics collection.
	Enabled bool `mapstructure:"enabled"`

	// Path is the metrics endpoint path.
	Path string `mapstructure:"path"`

	// Port is the metrics server port.
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// TracingConfig holds distributed tracing settings.
type TracingConfig struct {
	// Enabled enables distributed tracing.
	Enabled bool `mapstructure:"enabled"`

	// Endpoint is the OTLP collector endpoint.
	Endpoint string `mapstructure:"endpoint"`

	// SampleRate is the fraction of traces to sample (0.0-1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"min=0,max=1"`

	// Timeout is the exporter timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// Headers are extra headers sent to the collector.
	Headers map[string]string `mapstructure:"headers"`
}

// Validate performs validation on the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// String returns a string representation of the configuration (without sensitive data).
func (c *Config) String() string {
	return fmt.Sprintf("Config{App: %s, Server: :%d, Env: %s}",
		c.App.Name, c.Server.Port, c.App.Environment)
}
