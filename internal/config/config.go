package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/master-moose/aurorakvm/internal/kvmerr"
	"github.com/master-moose/aurorakvm/internal/logging"
	"github.com/master-moose/aurorakvm/internal/topology"
)

var log = logging.L("config")

const (
	defaultLocalWidth  = 1920
	defaultLocalHeight = 1080
	defaultClientWidth = 1920
	defaultClientHeight = 1080
)

// Screen mirrors one entry of the config file's local_screens array.
type Screen struct {
	X      int32  `mapstructure:"x"`
	Y      int32  `mapstructure:"y"`
	Width  uint32 `mapstructure:"width"`
	Height uint32 `mapstructure:"height"`
}

// Client mirrors one entry of the config file's clients array.
type Client struct {
	Name   string `mapstructure:"name"`
	IP     string `mapstructure:"ip"`
	X      int32  `mapstructure:"x"`
	Y      int32  `mapstructure:"y"`
	Width  uint32 `mapstructure:"width"`
	Height uint32 `mapstructure:"height"`
}

// Config is the on-disk schema at $XDG_CONFIG_HOME/aurora_kvm/config.json
// (or the platform analogue under os.UserConfigDir()).
type Config struct {
	Port            uint16   `mapstructure:"port"`
	Secret          *string  `mapstructure:"secret"`
	InputGrabHotkey *string  `mapstructure:"input_grab_hotkey"`
	LocalScreens    []Screen `mapstructure:"local_screens"`
	Clients         []Client `mapstructure:"clients"`
}

// Default returns the configuration applied when no file is present or a
// field is omitted: a single local screen at the common 1080p size and no
// clients.
func Default() *Config {
	return &Config{
		Port: 8080,
		LocalScreens: []Screen{
			{X: 0, Y: 0, Width: defaultLocalWidth, Height: defaultLocalHeight},
		},
	}
}

// Load reads the config file at path (or the default XDG location if
// path is empty), applying defaults for omitted fields. A missing file is
// not an error: Default() is returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(configDir())
	}
	v.AutomaticEnv()
	v.SetEnvPrefix("AURORA_KVM")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, kvmerr.New(kvmerr.KindConfigParse, "read config", err)
		}
		return cfg, nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, kvmerr.New(kvmerr.KindConfigParse, "unmarshal config", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Reload parses path into an entirely new Config, validates it, and only
// on success calls topo.UpdateConfig — a parse or fatal-validation
// failure never touches the live topology.
func Reload(topo *topology.Topology, path string) (*Config, ValidationResult, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, ValidationResult{}, err
	}

	result := cfg.ValidateTiered()
	for _, w := range result.Warnings {
		log.Warn("config validation", "error", w)
	}
	if result.HasFatals() {
		for _, f := range result.Fatals {
			log.Error("config validation fatal", "error", f)
		}
		return cfg, result, kvmerr.New(kvmerr.KindConfigParse, "reload", result.Fatals[0])
	}

	topo.UpdateConfig(cfg.ToTopologyConfig())
	return cfg, result, nil
}

// ToTopologyConfig converts the on-disk schema to the in-memory shape
// internal/topology operates on.
func (c *Config) ToTopologyConfig() topology.Config {
	local := make([]topology.Rect, 0, len(c.LocalScreens))
	for _, s := range c.LocalScreens {
		local = append(local, topology.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height})
	}

	clients := make([]topology.ClientConfig, 0, len(c.Clients))
	for _, cl := range c.Clients {
		clients = append(clients, topology.ClientConfig{
			Name: cl.Name,
			IP:   cl.IP,
			Rect: topology.Rect{X: cl.X, Y: cl.Y, Width: cl.Width, Height: cl.Height},
		})
	}

	return topology.Config{
		Port:            c.Port,
		Secret:          c.Secret,
		InputGrabHotkey: c.InputGrabHotkey,
		LocalScreens:    local,
		Clients:         clients,
	}
}

func applyDefaults(cfg *Config) {
	if len(cfg.LocalScreens) == 0 {
		cfg.LocalScreens = []Screen{{X: 0, Y: 0, Width: defaultLocalWidth, Height: defaultLocalHeight}}
	}
	for i := range cfg.Clients {
		if cfg.Clients[i].Width == 0 {
			cfg.Clients[i].Width = defaultClientWidth
		}
		if cfg.Clients[i].Height == 0 {
			cfg.Clients[i].Height = defaultClientHeight
		}
	}
}

// Save writes cfg as JSON to path (or the default XDG location if path
// is empty), restricting the file to owner-only access since Secret may
// hold a shared authentication token.
func Save(cfg *Config, path string) error {
	v := viper.New()
	v.Set("port", cfg.Port)
	v.Set("secret", cfg.Secret)
	v.Set("input_grab_hotkey", cfg.InputGrabHotkey)
	v.Set("local_screens", cfg.LocalScreens)
	v.Set("clients", cfg.Clients)

	var cfgPath string
	if path != "" {
		cfgPath = path
	} else {
		cfgPath = filepath.Join(configDir(), "config.json")
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := v.WriteConfigAs(cfgPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(cfgPath, 0600)
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "aurora_kvm")
	}
	return filepath.Join(".", "aurora_kvm")
}
