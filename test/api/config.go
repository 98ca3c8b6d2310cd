/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"

	"github.com/unikorn-cloud/users-conformance/pkg/fake"
)

var ErrInvalidConfig = errors.New("invalid test configuration")

const (
	defaultConfigFile = "config.json5"

	defaultRequestTimeout = 30 * time.Second
	defaultTestTimeout    = 5 * time.Minute
)

type TestConfig struct {
	// BaseURL is the users API root, e.g. https://gorest.co.in/public/v2.
	// When empty the suites run against an in-process fake.
	BaseURL          string
	AuthToken        string
	RequestTimeout   time.Duration
	TestTimeout      time.Duration
	SkipIntegration  bool
	DebugLogging     bool
	LogRequests      bool
	LogResponses     bool
	ValidateContract bool
	FixtureSeed      uint64
	MaxNameLength    int
}

// UseFake is true when no provider is configured.
func (c *TestConfig) UseFake() bool {
	return c.BaseURL == ""
}

// fileConfig is the shape of config.json5 and config.local.json5.
type fileConfig struct {
	TestConfiguration struct {
		BaseURL        string `json:"baseUrl"`
		AuthToken      string `json:"authToken"`
		RequestTimeout string `json:"requestTimeout"`
	} `json:"testConfiguration"`
}

// LoadTestConfig loads configuration from JSON5 files, a .env file and
// environment variables, in increasing order of precedence.
func LoadTestConfig() (*TestConfig, error) {
	file, err := loadConfigFile()
	if err != nil {
		return nil, err
	}

	loadEnvFile()

	fileTimeout := defaultRequestTimeout

	if file.TestConfiguration.RequestTimeout != "" {
		if fileTimeout, err = time.ParseDuration(file.TestConfiguration.RequestTimeout); err != nil {
			return nil, fmt.Errorf("%w: requestTimeout: %w", ErrInvalidConfig, err)
		}
	}

	config := &TestConfig{
		BaseURL:          getStringWithDefault("API_BASE_URL", file.TestConfiguration.BaseURL),
		AuthToken:        getStringWithDefault("API_AUTH_TOKEN", file.TestConfiguration.AuthToken),
		RequestTimeout:   getDurationWithDefault("REQUEST_TIMEOUT", fileTimeout),
		TestTimeout:      getDurationWithDefault("TEST_TIMEOUT", defaultTestTimeout),
		SkipIntegration:  getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:     getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:      getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:     getBoolWithDefault("LOG_RESPONSES", false),
		ValidateContract: getBoolWithDefault("VALIDATE_CONTRACT", true),
		FixtureSeed:      getUintWithDefault("FIXTURE_SEED", 0),
		MaxNameLength:    getIntWithDefault("MAX_NAME_LENGTH", fake.DefaultMaxNameLength),
	}

	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getIntWithDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return value
}

func getUintWithDefault(key string, defaultValue uint64) uint64 {
	value, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// loadConfigFile reads CONFIG_FILE, or the first config.json5 found walking
// up from the working directory, merged with its .local sibling.  No file
// is not an error.
func loadConfigFile() (*fileConfig, error) {
	if name := os.Getenv("CONFIG_FILE"); name != "" {
		config, err := readConfig(name)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, name, err)
		}

		return config, nil
	}

	current, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		config, err := readConfig(filepath.Join(current, defaultConfigFile))
		if err == nil {
			return config, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return &fileConfig{}, nil
		}

		current = parent
	}
}

// readConfig merges <name>.<ext> with <name>.local.<ext>, the latter taking
// precedence.  Returns os.ErrNotExist when neither exists.
func readConfig(name string) (*fileConfig, error) {
	out := &fileConfig{}
	found := false

	data, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if len(data) > 0 {
		if err := json5.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		found = true
	}

	ext := filepath.Ext(name)
	local := strings.TrimSuffix(name, ext) + ".local" + ext

	data, err = os.ReadFile(local)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if len(data) > 0 {
		override := &fileConfig{}

		if err := json5.Unmarshal(data, override); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", local, err)
		}

		if err := mergo.Merge(out, override, mergo.WithOverride); err != nil {
			return nil, err
		}

		found = true
	}

	if !found {
		return nil, os.ErrNotExist
	}

	return out, nil
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../.env",
	}

	if path := os.Getenv("ENV_FILE"); path != "" {
		envPaths = []string{path}
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// No .env, variables come from the environment.
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

func validateConfig(config *TestConfig) error {
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: API_BASE_URL %q must be an absolute http(s) URL", ErrInvalidConfig, config.BaseURL)
		}
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrInvalidConfig)
	}

	if config.MaxNameLength < 1 {
		return fmt.Errorf("%w: MAX_NAME_LENGTH must be positive", ErrInvalidConfig)
	}

	return nil
}
