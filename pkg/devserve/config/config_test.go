/*
Copyright 2026 The Skaffold Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"path/filepath"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/GoogleContainerTools/devserve/testutil"
)

func TestReadConfigFile(t *testing.T) {
	tests := []struct {
		description string
		content     string
		expected    *GlobalConfig
		shouldErr   bool
	}{
		{
			description: "full config",
			content: `defaults:
  host: 127.0.0.1
  port: 9000
  serverCommand: python3 -m http.server {{.PORT}}
  noBrowser: true
  readyTimeout: 5s
  prefix: "[web]:"
`,
			expected: &GlobalConfig{Defaults: LaunchOptions{
				Host:          "127.0.0.1",
				Port:          9000,
				ServerCommand: "python3 -m http.server {{.PORT}}",
				NoBrowser:     true,
				ReadyTimeout:  5 * time.Second,
				Prefix:        "[web]:",
			}},
		},
		{
			description: "empty file",
			content:     "",
			expected:    &GlobalConfig{},
		},
		{
			description: "invalid yaml",
			content:     "defaults: [",
			shouldErr:   true,
		},
		{
			description: "invalid duration",
			content:     "defaults:\n  readyTimeout: soon\n",
			shouldErr:   true,
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			cfgFile := t.NewTempDir().Write("config", test.content).Path("config")

			cfg, err := ReadConfigFile(cfgFile)

			t.CheckErrorAndDeepEqual(test.shouldErr, err, test.expected, cfg)
		})
	}
}

func TestReadConfigFileMissing(t *testing.T) {
	testutil.Run(t, "default location", func(t *testutil.T) {
		home := t.NewTempDir()
		t.Override(&homedir.DisableCache, true)
		t.SetEnvs(map[string]string{"HOME": home.Root(), "USERPROFILE": home.Root()})

		cfg, err := ReadConfigFile("")

		t.CheckErrorAndDeepEqual(false, err, &GlobalConfig{}, cfg)
	})

	testutil.Run(t, "explicit location", func(t *testutil.T) {
		_, err := ReadConfigFile(filepath.Join(t.NewTempDir().Root(), "missing"))

		t.CheckError(true, err)
	})
}

func TestResolveConfigFile(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		home := t.NewTempDir()
		t.Override(&homedir.DisableCache, true)
		t.SetEnvs(map[string]string{"HOME": home.Root(), "USERPROFILE": home.Root()})

		got, err := ResolveConfigFile("")
		t.CheckErrorAndDeepEqual(false, err, home.Path(".devserve/config"), got)

		got, err = ResolveConfigFile("/etc/devserve.yaml")
		t.CheckErrorAndDeepEqual(false, err, "/etc/devserve.yaml", got)
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		description string
		opts        LaunchOptions
		cfg         *GlobalConfig
		expected    LaunchOptions
	}{
		{
			description: "built-in defaults",
			opts:        LaunchOptions{WorkingDir: "web", EntryFile: "index.html"},
			expected: LaunchOptions{
				WorkingDir:   "web",
				EntryFile:    "index.html",
				Host:         "localhost",
				Port:         8000,
				ReadyTimeout: 2 * time.Second,
				Prefix:       "[Server]:",
			},
		},
		{
			description: "global config over defaults",
			opts:        LaunchOptions{EntryFile: "index.html"},
			cfg:         &GlobalConfig{Defaults: LaunchOptions{Port: 9000, NoBrowser: true}},
			expected: LaunchOptions{
				EntryFile:    "index.html",
				Host:         "localhost",
				Port:         9000,
				NoBrowser:    true,
				ReadyTimeout: 2 * time.Second,
				Prefix:       "[Server]:",
			},
		},
		{
			description: "flags over global config",
			opts:        LaunchOptions{Port: 8080, Prefix: ">"},
			cfg:         &GlobalConfig{Defaults: LaunchOptions{Port: 9000, Host: "127.0.0.1"}},
			expected: LaunchOptions{
				Host:         "127.0.0.1",
				Port:         8080,
				ReadyTimeout: 2 * time.Second,
				Prefix:       ">",
			},
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			got, err := Resolve(test.opts, test.cfg)

			t.CheckErrorAndDeepEqual(false, err, test.expected, got)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	testutil.Run(t, "relative file", func(t *testutil.T) {
		tmpDir := t.NewTempDir().Write(".env", "PORT=9000\nAPI_URL=http://localhost:3000\n")

		env, err := LoadEnvFile(tmpDir.Root(), ".env")

		t.CheckErrorAndDeepEqual(false, err, []string{"API_URL=http://localhost:3000", "PORT=9000"}, env)
	})

	testutil.Run(t, "no file", func(t *testutil.T) {
		env, err := LoadEnvFile("/", "")

		t.CheckNoError(err)
		t.CheckEmpty(env)
	})

	testutil.Run(t, "missing file", func(t *testutil.T) {
		_, err := LoadEnvFile(t.NewTempDir().Root(), ".env")

		t.CheckError(true, err)
	})
}

func TestMarshal(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		cfg := &GlobalConfig{Defaults: LaunchOptions{Port: 9000}}

		out, err := cfg.Marshal()

		t.CheckErrorAndDeepEqual(false, err, "defaults:\n    port: 9000\n", string(out))
	})
}
