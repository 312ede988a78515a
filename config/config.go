// Package config loads process configuration once at startup. Values come
// from an optional yaml file overlaid with environment variables; the flat
// env names the deployment already uses (JWT_SECRET, DATABASE_URL, ...)
// are read directly on top.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	// DefaultJWTSecret is a known-weak placeholder. Deployments must set
	// JWT_SECRET; the token service logs loudly when this value is in use.
	DefaultJWTSecret = "dev-secret-change"

	// DefaultAccessTokenExpireMinutes is the token TTL used when
	// ACCESS_TOKEN_EXPIRE_MINUTES is unset or not numeric.
	DefaultAccessTokenExpireMinutes = 1440

	defaultHTTPPort    = 8000
	defaultOpenAIModel = "gpt-4o-mini"
)

// Config is the immutable process configuration. It is constructed once
// in main and passed by reference; nothing mutates it afterwards.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
			WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout  time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Database is nil when no DATABASE_URL is configured. The process
	// still starts; auth routes answer 503 until a store is available.
	Database *DatabaseConfig `json:"database" yaml:"database"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	// OpenAI is nil when no API key is configured; generation then uses
	// the template fallback only.
	OpenAI *OpenAIConfig `json:"openai" yaml:"openai"`

	CORS CORSConfig `json:"cors" yaml:"cors"`
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	URL string `json:"url" yaml:"url"`
}

// AuthConfig holds the token signing settings, loaded once per process.
type AuthConfig struct {
	JWTSecret                string `json:"jwtSecret" yaml:"jwtSecret"`
	AccessTokenExpireMinutes int    `json:"accessTokenExpireMinutes" yaml:"accessTokenExpireMinutes"`
}

// OpenAIConfig holds the LLM generation settings.
type OpenAIConfig struct {
	APIKey   string `json:"apiKey" yaml:"apiKey"`
	Model    string `json:"model" yaml:"model"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	Origins []string `json:"origins" yaml:"origins"`
}

// Log holds logger settings.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads an optional yaml file through koanf and overlays
// environment variables whose underscore-separated segments line up with
// existing yaml keys.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	// The yaml file is optional: env-only deployments are supported.
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := koanfInstance.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}

		break
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a path and align each segment with
			// existing yaml keys. Example: HTTP_PORT -> http.port
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New builds the process configuration. Flat env names take precedence
// over the yaml/env overlay because the existing deployment sets them.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config")
	if err != nil {
		return nil, err
	}

	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}

	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		cfg.Database = &DatabaseConfig{URL: url}
	} else if cfg.Database != nil && strings.TrimSpace(cfg.Database.URL) == "" {
		cfg.Database = nil
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = DefaultJWTSecret
	}
	cfg.Auth.AccessTokenExpireMinutes = expireMinutes(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"), cfg.Auth.AccessTokenExpireMinutes)

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.OpenAI == nil {
			cfg.OpenAI = &OpenAIConfig{}
		}
		cfg.OpenAI.APIKey = key
	}
	if cfg.OpenAI != nil {
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			cfg.OpenAI.Model = model
		}
		if cfg.OpenAI.Model == "" {
			cfg.OpenAI.Model = defaultOpenAIModel
		}
		if cfg.OpenAI.APIKey == "" {
			cfg.OpenAI = nil
		}
	}

	cfg.CORS.Origins = corsOrigins(cfg.CORS.Origins, os.Getenv("FRONTEND_ORIGINS"))

	return cfg, nil
}

// expireMinutes parses the TTL env value. A non-numeric value silently
// falls back to the default rather than failing startup.
func expireMinutes(raw string, fromFile int) int {
	if raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil {
			return minutes
		}

		return DefaultAccessTokenExpireMinutes
	}
	if fromFile > 0 {
		return fromFile
	}

	return DefaultAccessTokenExpireMinutes
}

// corsOrigins merges the default development origins, yaml-configured
// origins and the comma-separated FRONTEND_ORIGINS env value.
func corsOrigins(configured []string, extra string) []string {
	seen := make(map[string]struct{})
	origins := make([]string, 0, len(configured)+2)

	add := func(origin string) {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			return
		}
		if _, ok := seen[origin]; ok {
			return
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}

	add("http://localhost:3000")
	add("http://127.0.0.1:3000")
	for _, origin := range configured {
		add(origin)
	}
	for _, origin := range strings.Split(extra, ",") {
		add(origin)
	}

	return origins
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
