package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. A double underscore separates
// sections, so POSTERGEN_SERVER__ADDR sets server.addr.
const EnvPrefix = "POSTERGEN_"

// Config is the application configuration
type Config struct {
	Server struct {
		Addr         string  `koanf:"addr"`
		PreviewScale float64 `koanf:"preview_scale"`
		ExportRPS    float64 `koanf:"export_rps"`
		ExportBurst  int     `koanf:"export_burst"`
	} `koanf:"server"`

	Fonts struct {
		Regular string `koanf:"regular"`
		Bold    string `koanf:"bold"`
	} `koanf:"fonts"`

	Queue struct {
		Backend       string `koanf:"backend"`
		Path          string `koanf:"path"`
		RedisAddr     string `koanf:"redis_addr"`
		RedisPassword string `koanf:"redis_password"`
		RedisDB       int    `koanf:"redis_db"`
		RedisKey      string `koanf:"redis_key"`
	} `koanf:"queue"`

	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":          ":8080",
		"server.preview_scale": 0.5,
		"server.export_rps":    2.0,
		"server.export_burst":  4,
		"fonts.regular":        "",
		"fonts.bold":           "",
		"queue.backend":        "file",
		"queue.path":           "./data/queue.json",
		"queue.redis_addr":     "",
		"queue.redis_password": "",
		"queue.redis_db":       0,
		"queue.redis_key":      "vck_post_queue",
		"log.level":            "info",
		"log.format":           "console",
	}
}

// DefaultPaths are tried in order when no config path is given.
var DefaultPaths = []string{"./postergen.toml", "$HOME/.postergen.toml"}

// LoadConfig layers defaults, the TOML file and POSTERGEN_ environment
// variables. An explicit configPath must exist.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range DefaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config %s: %w", path, err)
			}
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &config, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

const sampleConfig = `# postergen configuration

[server]
addr = ":8080"
# Scale used by the preview endpoint when the request gives none.
preview_scale = 0.5
# Exports per second allowed across all clients, and the burst above that.
export_rps = 2.0
export_burst = 4

[fonts]
# TrueType/OpenType files with Tamil coverage. Empty means the built-in Go fonts.
regular = ""
bold = ""

[queue]
# "file" or "redis"
backend = "file"
path = "./data/queue.json"
redis_addr = ""
redis_key = "vck_post_queue"

[log]
level = "info"
# "console" or "json"
format = "console"
`

// InitConfig writes a sample configuration file. It refuses to overwrite.
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}
	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate reports every invalid setting.
func Validate(config *Config) error {
	var errs []error

	if config.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if config.Server.PreviewScale <= 0 {
		errs = append(errs, fmt.Errorf("server.preview_scale must be positive, got %v", config.Server.PreviewScale))
	}
	if config.Server.ExportRPS <= 0 {
		errs = append(errs, fmt.Errorf("server.export_rps must be positive, got %v", config.Server.ExportRPS))
	}
	if config.Server.ExportBurst < 1 {
		errs = append(errs, fmt.Errorf("server.export_burst must be at least 1, got %d", config.Server.ExportBurst))
	}
	if (config.Fonts.Regular == "") != (config.Fonts.Bold == "") {
		errs = append(errs, errors.New("fonts.regular and fonts.bold must be set together"))
	}

	switch config.Queue.Backend {
	case "file":
		if config.Queue.Path == "" {
			errs = append(errs, errors.New("queue.path is required for the file backend"))
		}
	case "redis":
		if config.Queue.RedisAddr == "" {
			errs = append(errs, errors.New("queue.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown queue backend %q", config.Queue.Backend))
	}

	switch config.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", config.Log.Format))
	}

	return errors.Join(errs...)
}
