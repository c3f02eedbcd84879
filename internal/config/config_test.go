package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Mode:      ModeDev,
		Port:      "8000",
		DBDriver:  DriverPostgres,
		DBURL:     "postgres://u:p@localhost:5432/app?sslmode=require",
		TestDBURL: "postgres://u:p@localhost:5432/app_test?sslmode=disable",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Dev defaults", func(c *Config) {}, false},
		{"Unknown mode", func(c *Config) { c.Mode = "STAGING" }, true},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"Missing database url", func(c *Config) { c.DBURL = "" }, true},
		{"Test mode needs test url", func(c *Config) { c.Mode = ModeTest; c.TestDBURL = "" }, true},
		{"Test mode ignores main url", func(c *Config) { c.Mode = ModeTest; c.DBURL = "" }, false},
		{"Negative pool size", func(c *Config) { c.DBMaxOpenConns = -1 }, true},
		{"Prod rejects sqlite", func(c *Config) { c.Mode = ModeProd; c.DBDriver = DriverSQLite }, true},
		{"Prod rejects auto schema", func(c *Config) { c.Mode = ModeProd; c.DBSchemaMode = "auto" }, true},
		{"Prod with postgres", func(c *Config) { c.Mode = ModeProd; c.DBSchemaMode = "sql" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	c := validConfig()
	assert.Equal(t, c.DBURL, c.DatabaseURL())

	c.Mode = ModeTest
	assert.Equal(t, c.TestDBURL, c.DatabaseURL())
}

func TestLoadConfig_ModeFromEnvironment(t *testing.T) {
	defer os.Unsetenv("MODE")
	defer os.Unsetenv("API_V1_STR")
	defer viper.Reset()

	os.Setenv("MODE", " test ")
	os.Setenv("API_V1_STR", "api/v2/")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ModeTest, c.Mode)
	assert.True(t, c.IsTest())
	assert.Equal(t, "/api/v2", c.APIV1Str)
	assert.Equal(t, "SimplePostApp", c.ProjectName)
	assert.Equal(t, c.TestDBURL, c.DatabaseURL())
}

func TestConfig_Durations(t *testing.T) {
	c := validConfig()
	c.RequestTimeoutSeconds = 30
	c.PostCacheTTLSeconds = 60

	assert.Equal(t, "30s", c.RequestTimeout().String())
	assert.Equal(t, "1m0s", c.PostCacheTTL().String())

	c.RequestTimeoutSeconds = -1
	assert.Error(t, c.Validate())
}
