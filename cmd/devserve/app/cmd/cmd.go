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
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/config"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/errors"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/launcher"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/version"
)

var (
	opts       config.LaunchOptions
	v          string
	configFile string
)

type runner interface {
	Run(ctx context.Context) error
}

// For testing
var newLauncher = func(opts config.LaunchOptions, out io.Writer) runner {
	return launcher.New(opts, out)
}

// NewDevserveCommand creates the root command. Run with a working directory and an entry file,
// it serves the directory and opens the entry file in the browser.
func NewDevserveCommand(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devserve [flags] <working-dir> <entry-file>",
		Short: "Serve a directory over HTTP and open a page of it in the browser",
		Long: `Serve a directory over HTTP and open a page of it in the browser.

The static file server runs as a child process until devserve is interrupted.
Every line it prints is relayed, prefixed with "[Server]:".`,
		Example: `  # Serve ./build and open http://localhost:8000/index.html
  devserve ./build index.html

  # Use python's http.server instead of the built-in file server
  devserve --server-cmd 'python3 -m http.server {{.PORT}} --bind {{.HOST}}' ./build app.html`,
		SilenceUsage: true,
		Args:         usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doLaunch(cmd.Context(), out, args)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := log.SetupLogs(errOut, v); err != nil {
			return errors.NewUsageError(err)
		}
		log.Entry(cmd.Context()).Infof("devserve %+v", version.Get())
		return nil
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUsageError(err)
	})

	rootCmd.PersistentFlags().StringVarP(&v, "verbosity", "v", constants.DefaultLogLevel.String(), "Log level: one of [panic fatal error warning info debug trace]")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the global config file (default $HOME/.devserve/config)")
	AddLaunchFlags(rootCmd.Flags())

	rootCmd.AddCommand(NewCmdServe(errOut))
	rootCmd.AddCommand(NewCmdVersion(out))
	rootCmd.AddCommand(NewCmdConfig(out))

	return rootCmd
}

func doLaunch(ctx context.Context, out io.Writer, args []string) error {
	cfg, err := config.ReadConfigFile(configFile)
	if err != nil {
		return err
	}

	launchOpts := opts
	launchOpts.WorkingDir = args[0]
	launchOpts.EntryFile = args[1]
	launchOpts, err = config.Resolve(launchOpts, cfg)
	if err != nil {
		return err
	}
	log.Entry(ctx).Debugf("Launch options: %+v", launchOpts)

	return newLauncher(launchOpts, out).Run(ctx)
}
