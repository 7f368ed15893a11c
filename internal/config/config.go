package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("apidoc-filter version %s, commit %s, built at %s", version, commit, date)
}

// DefaultGroup names the group formed by the top-level document settings.
const DefaultGroup = "default"

// ErrNoSource is returned when no documentation group has a document source.
var ErrNoSource = errors.New("no swagger document configured")

type Config struct {
	Server          ServerConfig   `mapstructure:"server"`
	Logging         LoggingConfig  `mapstructure:"logging"`
	Filter          FilterConfig   `mapstructure:"filter"`
	UI              UIConfig       `mapstructure:"ui"`
	Upstream        UpstreamConfig `mapstructure:"upstream"`
	SwaggerFile     string         `mapstructure:"swagger_file"`
	SwaggerURL      string         `mapstructure:"swagger_url"`
	ListingsFile    string         `mapstructure:"listings_file"`
	AdjustmentsFile string         `mapstructure:"adjustments_file"`
	Groups          []GroupConfig  `mapstructure:"groups"`
}

// AuthType represents the type of authentication used against the upstream
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeOAuth2 AuthType = "oauth2"
)

// UpstreamConfig describes how remote descriptor documents are fetched.
type UpstreamConfig struct {
	BaseURL    string            `json:"base_url" mapstructure:"base_url"`
	AuthType   AuthType          `json:"auth_type" mapstructure:"auth_type"`
	AuthConfig map[string]string `json:"auth_config" mapstructure:"auth_config"`
	Headers    map[string]string `json:"headers" mapstructure:"headers"`
	Timeout    time.Duration     `json:"timeout" mapstructure:"timeout"`
}

type ServerMode string

const (
	ServerModeSSE   ServerMode = "sse"
	ServerModeSTDIO ServerMode = "stdio"
	ServerModeHTTP  ServerMode = "http"
)

type ServerConfig struct {
	Port          int        `mapstructure:"port"`
	Host          string     `mapstructure:"host"`
	Mode          ServerMode `mapstructure:"mode"`
	Name          string     `mapstructure:"name"`
	Version       string     `mapstructure:"version"`
	DocsPath      string     `mapstructure:"docs_path"`
	ResourcesPath string     `mapstructure:"resources_path"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// FilterConfig holds the markers and thresholds of the descriptor filter.
type FilterConfig struct {
	RequestHiddenMarker string   `mapstructure:"request_hidden_marker"`
	UpdateMarkers       []string `mapstructure:"update_markers"`
	UpdateSuffix        string   `mapstructure:"update_suffix"`
	ReadOnlyThreshold   int      `mapstructure:"read_only_threshold"`
	ListingMatch        string   `mapstructure:"listing_match"`
}

// UIConfig describes the documentation UI that redirects point at.
type UIConfig struct {
	Path                      string `mapstructure:"path"`
	BaseURL                   string `mapstructure:"base_url"`
	DocExpansion              string `mapstructure:"doc_expansion"`
	SupportsModelsExpandDepth bool   `mapstructure:"supports_models_expand_depth"`
	RedirectParam             string `mapstructure:"redirect_param"`
}

// GroupConfig is one documentation group served by the filter.
type GroupConfig struct {
	Name            string `mapstructure:"name"`
	SwaggerFile     string `mapstructure:"swagger_file"`
	SwaggerURL      string `mapstructure:"swagger_url"`
	ListingsFile    string `mapstructure:"listings_file"`
	AdjustmentsFile string `mapstructure:"adjustments_file"`
}

// Source returns the file or URL the group's document is read from.
func (g GroupConfig) Source() string {
	if g.SwaggerFile != "" {
		return g.SwaggerFile
	}
	return g.SwaggerURL
}

// DocumentGroups returns the configured groups, led by the implicit default
// group when top-level document settings are present.
func (c *Config) DocumentGroups() []GroupConfig {
	var groups []GroupConfig
	if c.SwaggerFile != "" || c.SwaggerURL != "" {
		groups = append(groups, GroupConfig{
			Name:            DefaultGroup,
			SwaggerFile:     c.SwaggerFile,
			SwaggerURL:      c.SwaggerURL,
			ListingsFile:    c.ListingsFile,
			AdjustmentsFile: c.AdjustmentsFile,
		})
	}
	for _, g := range c.Groups {
		if g.Name == "" {
			g.Name = DefaultGroup
		}
		groups = append(groups, g)
	}
	return groups
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	groups := c.DocumentGroups()
	if len(groups) == 0 {
		return fmt.Errorf("%w, please adjust the config or pass --swagger-file or APIDOC_FILTER_SWAGGER_FILE environment variable", ErrNoSource)
	}
	seen := make(map[string]bool)
	for _, g := range groups {
		if g.Source() == "" {
			return fmt.Errorf("group %q: %w", g.Name, ErrNoSource)
		}
		if seen[g.Name] {
			return fmt.Errorf("group %q is configured twice", g.Name)
		}
		seen[g.Name] = true
	}
	switch c.Filter.ListingMatch {
	case "", "first", "all":
	default:
		return fmt.Errorf("filter.listing_match must be first or all, got %q", c.Filter.ListingMatch)
	}
	if c.Filter.ReadOnlyThreshold < 1 {
		return fmt.Errorf("filter.read_only_threshold must be at least 1, got %d", c.Filter.ReadOnlyThreshold)
	}
	switch c.Server.Mode {
	case ServerModeSSE, ServerModeSTDIO, ServerModeHTTP:
	default:
		return fmt.Errorf("unsupported server mode: %s", c.Server.Mode)
	}
	return nil
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", string(ServerModeHTTP))
	v.SetDefault("server.name", "apidoc-filter")
	v.SetDefault("server.version", version)
	v.SetDefault("server.docs_path", "/v2/api-docs")
	v.SetDefault("server.resources_path", "/swagger-resources")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("filter.request_hidden_marker", "RequestHidden")
	v.SetDefault("filter.update_markers", []string{"x-update", "update"})
	v.SetDefault("filter.update_suffix", "Update")
	v.SetDefault("filter.read_only_threshold", 3)
	v.SetDefault("filter.listing_match", "first")

	v.SetDefault("ui.path", "/swagger-ui.html")
	v.SetDefault("ui.doc_expansion", "list")
	v.SetDefault("ui.supports_models_expand_depth", true)
	v.SetDefault("ui.redirect_param", "api-docs")

	v.SetDefault("upstream.auth_type", string(AuthTypeNone))
	v.SetDefault("upstream.timeout", 30*time.Second)
}

// InitFlags registers the command line flags that override config keys
func InitFlags(fs *pflag.FlagSet) {
	fs.String("mode", string(ServerModeHTTP), "Server mode (http|sse|stdio)")
	fs.String("swagger-file", "", "Path to the swagger file")
	fs.String("swagger-url", "", "URL of the swagger document")
	fs.String("listings-file", "", "Path to the listings index file")
	fs.String("adjustments-file", "", "Path to the adjustments file")
	fs.String("config", "", "Path to the config file")
}

// Load reads the configuration from config files, the environment and fs.
// fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("APIDOC_FILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/apidoc-filter")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}

		// Merge /config/config.yaml (overrides overlapping keys)
		if _, err := os.Stat("/config/config.yaml"); err == nil {
			v.SetConfigFile("/config/config.yaml")
			if err := v.MergeInConfig(); err != nil {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Flags and environment win over the top-level document settings
	if fs != nil && fs.Changed("mode") {
		config.Server.Mode = ServerMode(v.GetString("mode"))
	} else if mode := os.Getenv("APIDOC_FILTER_MODE"); mode != "" {
		config.Server.Mode = ServerMode(mode)
	}
	if swaggerFile := v.GetString("swagger-file"); swaggerFile != "" {
		config.SwaggerFile = swaggerFile
	}
	if swaggerURL := v.GetString("swagger-url"); swaggerURL != "" {
		config.SwaggerURL = swaggerURL
	}
	if listingsFile := v.GetString("listings-file"); listingsFile != "" {
		config.ListingsFile = listingsFile
	}
	if adjustmentsFile := v.GetString("adjustments-file"); adjustmentsFile != "" {
		config.AdjustmentsFile = adjustmentsFile
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
