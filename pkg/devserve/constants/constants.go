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

package constants

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLogLevel is the default global verbosity
	DefaultLogLevel = logrus.WarnLevel

	// DefaultHost is the loopback host the static file server binds to.
	DefaultHost = "localhost"
	// DefaultPort is the port the static file server listens on.
	DefaultPort = 8000

	// DefaultServerPrefix is written in front of every line relayed from the server.
	DefaultServerPrefix = "[Server]:"

	// DefaultReadyTimeout bounds how long the launcher waits for the server to listen.
	DefaultReadyTimeout = 2 * time.Second
	// ReadyPollInterval is the delay between two readiness checks.
	ReadyPollInterval = 50 * time.Millisecond
	// TerminationGracePeriod is how long a terminated server may take before it is killed.
	TerminationGracePeriod = 2 * time.Second

	// DefaultConfigDir is created under the user home directory.
	DefaultConfigDir = ".devserve"
	// DefaultConfigFile is the name of the global config file in DefaultConfigDir.
	DefaultConfigFile = "config"

	// ServeCommand is the subcommand running the built-in static file server.
	ServeCommand = "serve"
)

// Phase is a step of the launcher, attached to log entries.
type Phase string

const (
	Prepare  = Phase("Prepare")
	Spawn    = Phase("Spawn")
	Ready    = Phase("Ready")
	Browse   = Phase("Browse")
	Relay    = Phase("Relay")
	Shutdown = Phase("Shutdown")
	Serve    = Phase("Serve")

	SubtaskIDNone = "-1"
)
