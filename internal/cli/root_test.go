package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "check")
}

func TestRootCommand_Help(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "maintassist")
	assert.Contains(t, out.String(), "serve")
}

func TestPrintBanner_PlainOnNonTerminal(t *testing.T) {
	var out bytes.Buffer
	printBanner(&out, bannerInfo{Listen: ":8080", Provider: "gemini", ZabbixURL: "http://z/api_jsonrpc.php"})
	assert.Contains(t, out.String(), "listening on :8080")
	assert.NotContains(t, out.String(), "__")
}
