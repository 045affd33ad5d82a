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
	"time"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
)

// LaunchOptions are the parameters of a single launch.
// A zero value field means "not set": it is filled from the global config
// and then from the built-in defaults.
type LaunchOptions struct {
	// WorkingDir is the directory served, and the directory the launcher switches to.
	WorkingDir string `yaml:"-"`
	// EntryFile is opened in the browser, relative to WorkingDir.
	EntryFile string `yaml:"-"`

	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`

	// ServerCommand is a command template for the static file server.
	// Empty means the built-in `devserve serve`.
	ServerCommand string `yaml:"serverCommand,omitempty"`
	// EnvFile is a dotenv file whose variables are added to the server environment.
	EnvFile string `yaml:"envFile,omitempty"`

	NoBrowser    bool `yaml:"noBrowser,omitempty"`
	PortFallback bool `yaml:"portFallback,omitempty"`

	// ReadyTimeout bounds the readiness check.
	ReadyTimeout time.Duration `yaml:"readyTimeout,omitempty"`
	// StartupDelay, when set, replaces the readiness check with a fixed sleep.
	StartupDelay time.Duration `yaml:"startupDelay,omitempty"`

	Prefix string `yaml:"prefix,omitempty"`
}

// Defaults returns the built-in launch defaults.
func Defaults() LaunchOptions {
	return LaunchOptions{
		Host:         constants.DefaultHost,
		Port:         constants.DefaultPort,
		ReadyTimeout: constants.DefaultReadyTimeout,
		Prefix:       constants.DefaultServerPrefix,
	}
}
