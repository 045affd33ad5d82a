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

package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
)

// AddLaunchFlags binds the launcher flags to the launch options.
// Flags left unset fall back to the global config, then to the built-in defaults.
func AddLaunchFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.Host, "host", "", fmt.Sprintf("Host the server binds to and the browser connects to (default %q)", constants.DefaultHost))
	f.IntVarP(&opts.Port, "port", "p", 0, fmt.Sprintf("Port the server listens on (default %d)", constants.DefaultPort))
	f.StringVar(&opts.ServerCommand, "server-cmd", "", "Command starting the static file server, with {{.HOST}}, {{.PORT}} and {{.DIR}} expanded (default: the built-in file server)")
	f.StringVar(&opts.EnvFile, "env-file", "", "File of KEY=VALUE lines added to the server environment, relative to the working directory")
	f.BoolVar(&opts.NoBrowser, "no-browser", false, "Serve without opening the browser")
	f.BoolVar(&opts.PortFallback, "port-fallback", false, "Serve on a nearby free port when the port is already in use")
	f.DurationVar(&opts.ReadyTimeout, "ready-timeout", 0, fmt.Sprintf("How long to wait for the server to listen before opening the browser (default %v)", constants.DefaultReadyTimeout))
	f.DurationVar(&opts.StartupDelay, "startup-delay", 0, "Sleep this long instead of waiting for the server to listen")
	f.StringVar(&opts.Prefix, "prefix", "", fmt.Sprintf("Prefix of the relayed server lines (default %q)", constants.DefaultServerPrefix))
}
