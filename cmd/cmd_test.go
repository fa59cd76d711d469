package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaffee/commandeer"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/brewkit/brewkit/bronze"
)

func TestRootCommandHasAllStages(t *testing.T) {
	rc := NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	want := []string{"fetch", "transform", "aggregate", "check", "pipeline", "runs"}
	for _, name := range want {
		found := false
		for _, sub := range rc.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

func TestFetchHelpListsFlags(t *testing.T) {
	rc := NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	rc.SetArgs([]string{"fetch", "--help"})
	var out bytes.Buffer
	rc.SetOut(&out)
	if err := rc.Execute(); err != nil {
		t.Fatalf("executing help: %v", err)
	}
	for _, flag := range []string{"--base-url", "--per-page", "--bronze", "--s3-bucket", "--catalog"} {
		if !strings.Contains(out.String(), flag) {
			t.Errorf("fetch help missing flag %s", flag)
		}
	}
}

func TestSetAllConfigPriority(t *testing.T) {
	m := bronze.NewMain()
	flags := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
	if err := commandeer.Flags(flags, m); err != nil {
		t.Fatalf("binding flags: %v", err)
	}
	flags.String("config", "", "")

	conf := filepath.Join(t.TempDir(), "brewkit.toml")
	toml := "per-page = 50\nbronze = \"/data/from-toml\"\ns3-region = \"eu-west-1\"\n"
	if err := os.WriteFile(conf, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("config", conf); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BREWKIT_PER_PAGE", "75")
	if err := flags.Set("bronze", "/data/from-flag"); err != nil {
		t.Fatal(err)
	}

	if err := setAllConfig(viper.New(), flags, "BREWKIT"); err != nil {
		t.Fatalf("merging config: %v", err)
	}

	// a flag set on the command line beats every other source
	if m.Bronze != "/data/from-flag" {
		t.Errorf("got bronze %q, expected the flag value", m.Bronze)
	}
	// env beats the config file
	if m.PerPage != 75 {
		t.Errorf("got per-page %d, expected 75 from env", m.PerPage)
	}
	// the config file fills flags nothing else set
	if m.S3Region != "eu-west-1" {
		t.Errorf("got s3-region %q, expected the config file value", m.S3Region)
	}
}

func TestSetAllConfigBadFile(t *testing.T) {
	flags := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
	flags.String("config", "", "")
	if err := flags.Set("config", filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatal(err)
	}
	if err := setAllConfig(viper.New(), flags, "BREWKIT"); err == nil {
		t.Fatal("expected error for unreadable config file")
	}
}
