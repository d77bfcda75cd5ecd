package cli

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind(t *testing.T, cmd *cobra.Command) *viper.Viper {
	t.Helper()
	v, err := Bind(cmd, "lcdtest")
	require.NoError(t, err)
	return v
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("rs-pin", "GPIO18", "")
	cmd.Flags().Bool("cursor", false, "")
	return cmd
}

func TestBindDefaults(t *testing.T) {
	cmd := newCmd()
	v := bind(t, cmd)
	require.NoError(t, cmd.ParseFlags(nil))
	require.NoError(t, Load(v))

	assert.Equal(t, "GPIO18", v.GetString("rs-pin"))
	assert.False(t, v.GetBool("cursor"))
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestBindPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rs-pin: GPIO5\ncursor: true\nlog-level: debug\n"), 0o600))
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	t.Setenv("LCDTEST_RS_PIN", "GPIO6")

	cmd := newCmd()
	v := bind(t, cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	require.NoError(t, Load(v))

	assert.Equal(t, "GPIO6", v.GetString("rs-pin"), "environment beats config file")
	assert.True(t, v.GetBool("cursor"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	require.NoError(t, cmd.ParseFlags([]string{"--rs-pin", "GPIO7"}))
	assert.Equal(t, "GPIO7", v.GetString("rs-pin"), "flag beats environment")
}

func TestLoadErrors(t *testing.T) {
	cmd := newCmd()
	v := bind(t, cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
	assert.Error(t, Load(v))

	cmd = newCmd()
	v = bind(t, cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "loud"}))
	assert.Error(t, Load(v))
}

func TestBindRegistersCommonFlags(t *testing.T) {
	cmd := newCmd()
	v := bind(t, cmd)
	for _, name := range []string{"config", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "info", v.GetString("log-level"))
}
