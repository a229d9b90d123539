package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grovert/maintassist/internal/llm"
)

// Config is the full assistant configuration. Values resolve in three
// layers: built-in defaults, then an optional YAML file, then environment
// variables.
type Config struct {
	ListenAddr string       `yaml:"listen_addr"`
	Zabbix     ZabbixConfig `yaml:"zabbix"`
	DBPath     string       `yaml:"db_path"`
	LLM        llm.Config   `yaml:"llm"`
}

// ZabbixConfig locates the Zabbix JSON-RPC endpoint.
type ZabbixConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Zabbix: ZabbixConfig{
			URL: "http://localhost/api_jsonrpc.php",
		},
		DBPath: "maintassist.db",
		LLM:    llm.DefaultConfig(),
	}
}

// Load resolves the configuration. The YAML file path comes from
// MAINTASSIST_CONFIG; a missing variable means no file layer. Environment
// variables win over the file.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("MAINTASSIST_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("MAINTASSIST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("ZABBIX_URL"); v != "" {
		cfg.Zabbix.URL = v
	}
	if v := os.Getenv("ZABBIX_API_TOKEN"); v != "" {
		cfg.Zabbix.Token = v
	}
	if v := os.Getenv("MAINTASSIST_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	cfg.LLM = llm.LoadConfigFrom(cfg.LLM)

	return cfg, nil
}

// Validate reports configuration the server cannot start without.
func (c Config) Validate() error {
	if c.Zabbix.URL == "" {
		return fmt.Errorf("zabbix URL is required (ZABBIX_URL)")
	}
	if c.Zabbix.Token == "" {
		return fmt.Errorf("zabbix API token is required (ZABBIX_API_TOKEN)")
	}
	if c.LLM.APIKey() == "" {
		return fmt.Errorf("no API key configured for provider %s", c.LLM.Provider)
	}
	return nil
}
