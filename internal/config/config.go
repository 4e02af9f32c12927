package config

import (
	"log/slog"
	"reflect"
	"strings"
	"time"
	"unicode"

	"ecommerce-api/internal/logger"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort                string        `envconfig:"APP_PORT" default:"3000"`
	AppName                string        `envconfig:"APP_NAME" default:"ecommerce-api"`
	AppEnv                 string        `envconfig:"ENV" default:"development"`
	GrpcPort               string        `envconfig:"GRPC_PORT"`
	MongoURI               string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName            string        `envconfig:"MONGO_DB_NAME" default:"ecommerce"`
	SeedSampleData         bool          `envconfig:"SEED_SAMPLE_DATA" default:"true"`
	ShutdownTimeout        time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RemoteLogHttpURI       string        `envconfig:"REMOTE_LOG_HTTP_URI"`
	RemoteTraceRpcURI      string        `envconfig:"REMOTE_TRACE_RPC_URI"`
	RemoteProfilingHttpURI string        `envconfig:"REMOTE_PROFILING_HTTP_URI"`
	TraceStdout            bool          `envconfig:"TRACE_STDOUT" default:"false"`
}

// SafeConfig is the loggable view of Config. MONGO_URI is left out because
// it may carry credentials.
type SafeConfig struct {
	AppPort                string `json:"app_port"`
	AppName                string `json:"app_name"`
	AppEnv                 string `json:"env"`
	GrpcPort               string `json:"grpc_port"`
	MongoDBName            string `json:"mongo_db_name"`
	SeedSampleData         bool   `json:"seed_sample_data"`
	ShutdownTimeout        string `json:"shutdown_timeout"`
	RemoteLogHttpURI       string `json:"remote_log_http_uri"`
	RemoteTraceRpcURI      string `json:"remote_trace_rpc_uri"`
	RemoteProfilingHttpURI string `json:"remote_profiling_http_uri"`
	TraceStdout            bool   `json:"trace_stdout"`
}

func (c *Config) ToSafeConfig() SafeConfig {
	return SafeConfig{
		AppPort:                c.AppPort,
		AppName:                c.AppName,
		AppEnv:                 c.AppEnv,
		GrpcPort:               c.GrpcPort,
		MongoDBName:            c.MongoDBName,
		SeedSampleData:         c.SeedSampleData,
		ShutdownTimeout:        c.ShutdownTimeout.String(),
		RemoteLogHttpURI:       c.RemoteLogHttpURI,
		RemoteTraceRpcURI:      c.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: c.RemoteProfilingHttpURI,
		TraceStdout:            c.TraceStdout,
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	log := logger.Instance()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.RemoteLogHttpURI == "" {
		log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
	}
	if cfg.RemoteTraceRpcURI == "" {
		log.Warn("Missing REMOTE_TRACE_RPC_URI will skip sending trace")
	}
	if cfg.RemoteProfilingHttpURI == "" {
		log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip sending profiling")
	}

	attrs := StructAttrs("data", cfg.ToSafeConfig())
	anyAttrs := make([]any, len(attrs))
	for i, a := range attrs {
		anyAttrs[i] = a
	}
	log.Info("Configuration loaded successfully", anyAttrs...)

	return &cfg, nil
}

// StructAttrs("data", cfg) ➜ []slog.Attr{ slog.String("data.app_port", "3000"), ... }
func StructAttrs(prefix string, s any) []slog.Attr {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	attrs := make([]slog.Attr, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + "." + jsonKey(f)

		switch fv := v.Field(i); fv.Kind() {
		case reflect.String:
			attrs = append(attrs, slog.String(key, fv.String()))
		case reflect.Bool:
			attrs = append(attrs, slog.Bool(key, fv.Bool()))
		case reflect.Int, reflect.Int64, reflect.Int32:
			attrs = append(attrs, slog.Int64(key, fv.Int()))
		default:
			attrs = append(attrs, slog.Any(key, fv.Interface()))
		}
	}
	return attrs
}

// json tag name when present, otherwise the field name in snake_case
func jsonKey(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return toSnake(f.Name)
}

func toSnake(s string) string {
	var out strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != '_' {
				out.WriteRune('_')
			}
			out.WriteRune(unicode.ToLower(r))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
