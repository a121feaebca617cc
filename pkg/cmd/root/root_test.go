package root

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/Paintersrp/astromark/internal/logging"
)

func TestFlagsBindToViper(t *testing.T) {
	v := viper.New()
	cmd := NewCmdRoot(v)

	if err := cmd.ParseFlags([]string{"-c", "/tmp/custom.lua", "-r", "--log", "/tmp/am.log"}); err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}

	if got := v.GetString("config"); got != "/tmp/custom.lua" {
		t.Fatalf("expected config flag, got %q", got)
	}
	if !v.GetBool("reset-config") {
		t.Fatalf("expected reset-config to be set")
	}
	if got := v.GetString("log"); got != "/tmp/am.log" {
		t.Fatalf("expected log flag, got %q", got)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("ASTROMARK_CONFIG", "/tmp/env.lua")
	t.Setenv("ASTROMARK_RESET_CONFIG", "true")

	v := viper.New()
	NewCmdRoot(v)

	if got := v.GetString("config"); got != "/tmp/env.lua" {
		t.Fatalf("expected config from environment, got %q", got)
	}
	if !v.GetBool("reset-config") {
		t.Fatalf("expected reset-config from environment")
	}
}

func TestPrepareBuildsState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	st, err := Prepare(Options{})
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	defer logging.Close()
	defer st.Close()

	if st.Config == nil || st.Recent == nil {
		t.Fatalf("expected configuration and recents to be loaded")
	}
	if st.Dir == "" {
		t.Fatalf("expected configuration directory to be resolved")
	}
}
