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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imdario/mergo"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
)

// GlobalConfig is the content of the global config file.
type GlobalConfig struct {
	Defaults LaunchOptions `yaml:"defaults,omitempty"`
}

// ResolveConfigFile determines the default config location, if the configFile argument is empty.
func ResolveConfigFile(configFile string) (string, error) {
	if configFile != "" {
		return configFile, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("retrieving home directory: %w", err)
	}
	return filepath.Join(home, constants.DefaultConfigDir, constants.DefaultConfigFile), nil
}

// ReadConfigFile reads the global config file. A missing file yields an empty config.
func ReadConfigFile(configFile string) (*GlobalConfig, error) {
	filename, err := ResolveConfigFile(configFile)
	if err != nil {
		return nil, err
	}

	contents, err := afero.ReadFile(util.Fs, filename)
	if os.IsNotExist(err) && configFile == "" {
		log.Entry(context.TODO()).Debugf("No global config at %q", filename)
		return &GlobalConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	cfg := GlobalConfig{}
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling global config %q: %w", filename, err)
	}
	log.Entry(context.TODO()).Infof("Loaded defaults from %q", filename)
	return &cfg, nil
}

// Resolve fills the unset fields of opts from the global config, then from the built-in defaults.
func Resolve(opts LaunchOptions, cfg *GlobalConfig) (LaunchOptions, error) {
	if cfg != nil {
		if err := mergo.Merge(&opts, cfg.Defaults); err != nil {
			return opts, fmt.Errorf("merging global config: %w", err)
		}
	}
	if err := mergo.Merge(&opts, Defaults()); err != nil {
		return opts, fmt.Errorf("merging defaults: %w", err)
	}
	return opts, nil
}

// Marshal renders the config as yaml.
func (c *GlobalConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
