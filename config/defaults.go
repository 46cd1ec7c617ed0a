package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "lexroute",
			Version:     "dev",
			Environment: "development",
			Debug:       false,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			HTTP: HTTPConfig{
				ReadTimeout:     30 * time.Second,
				WriteTimeout:    30 * time.Second,
				IdleTimeout:     120 * time.Second,
				ShutdownTimeout: 30 * time.Second,
				MaxHeaderBytes:  1 << 20, // 1MB
			},
			CORS: CORSConfig{
				Enabled:          true,
				AllowedOrigins:   []string{"*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
				AllowCredentials: false,
				MaxAge:           300,
			},
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerSecond: 20,
				Burst:             40,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Classifier: ClassifierConfig{
			ConfidenceThreshold: 0.30,
			PosteriorWeight:     0.5,
			Smoothing:           0.1,
			HoldoutFraction:     0.2,
			AccuracyFloor:       0.5,
			RegressionMargin:    0.05,
		},
		Policy: PolicyConfig{
			LearningRate:       0.1,
			InitialEpsilon:     0.3,
			MinEpsilon:         0.05,
			EpsilonDecayVisits: 50,
			RewardWindow:       5,
		},
		Feedback: FeedbackConfig{
			DwellCapSeconds: 120,
			DwellBonusMax:   0.5,
			RewardMin:       -1.0,
			RewardMax:       1.5,
		},
		Engine: EngineConfig{
			CheckpointInterval: 5 * time.Minute,
			RetrainMinExamples: 20,
		},
		Storage: StorageConfig{
			Type: "memory",
			Badger: BadgerConfig{
				Path:              "./data/badger",
				SyncWrites:        true,
				ValueLogFileSize:  1073741824, // 1GB
				NumVersionsToKeep: 1,
			},
			Redis: RedisConfig{
				Enabled:  false,
				Address:  "localhost:6379",
				Password: "",
				DB:       0,
				TTL:      30 * time.Minute,
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9091,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Endpoint:   "localhost:4317",
			SampleRate: 0.1,
			Timeout:    10 * time.Second,
			Headers:    map[string]string{},
		},
	}
}
