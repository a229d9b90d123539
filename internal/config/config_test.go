package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovert/maintassist/internal/llm"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAINTASSIST_CONFIG", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "maintassist.db", cfg.DBPath)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
}

func TestLoad_FileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9090"
zabbix:
  url: http://zabbix.internal/api_jsonrpc.php
  token: file-token
db_path: /var/lib/maintassist/audit.db
llm:
  provider: openai
  openai_key: file-key
  max_tokens: 800
`), 0o600))
	t.Setenv("MAINTASSIST_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "http://zabbix.internal/api_jsonrpc.php", cfg.Zabbix.URL)
	assert.Equal(t, "file-token", cfg.Zabbix.Token)
	assert.Equal(t, "/var/lib/maintassist/audit.db", cfg.DBPath)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, 800, cfg.LLM.MaxTokens)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
zabbix:
  token: file-token
`), 0o600))
	t.Setenv("MAINTASSIST_CONFIG", path)
	t.Setenv("ZABBIX_API_TOKEN", "env-token")
	t.Setenv("MAINTASSIST_LISTEN_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Zabbix.Token)
	assert.Equal(t, ":7070", cfg.ListenAddr)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Setenv("MAINTASSIST_CONFIG", "/nonexistent/config.yaml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Zabbix.Token = "tok"
	cfg.LLM.GeminiKey = "key"
	assert.NoError(t, cfg.Validate())

	missingToken := cfg
	missingToken.Zabbix.Token = ""
	assert.Error(t, missingToken.Validate())

	missingKey := cfg
	missingKey.LLM.GeminiKey = ""
	assert.Error(t, missingKey.Validate())
}
