package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "item", cfg.MongoDatabase)
	assert.Equal(t, "items", cfg.MongoCollection)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.DemoRoutes)
	assert.Equal(t, "66d95456911798ba6188be6a", cfg.DemoItemID)
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mongo without uri", Config{StoreDriver: "mongo", RequestTimeout: time.Second}, true},
		{"mongo with uri", Config{StoreDriver: "mongo", MongoURI: "mongodb://localhost:27017", RequestTimeout: time.Second}, false},
		{"mysql without dsn", Config{StoreDriver: "mysql", RequestTimeout: time.Second}, true},
		{"sqlite", Config{StoreDriver: "sqlite", SQLitePath: "x.db", RequestTimeout: time.Second}, false},
		{"memory upper case", Config{StoreDriver: " MEMORY ", RequestTimeout: time.Second}, false},
		{"unknown driver", Config{StoreDriver: "redis", RequestTimeout: time.Second}, true},
		{"zero timeout", Config{StoreDriver: "memory"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
