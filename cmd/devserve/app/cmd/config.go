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
)

// NewCmdConfig describes the commands to interact with the global config.
func NewCmdConfig(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Interact with the global devserve config",
	}

	cmd.AddCommand(NewCmd(out, "view").
		WithDescription("Print the launch defaults: the global config completed with the built-in defaults").
		NoArgs(viewConfig))
	return cmd
}

func viewConfig(_ context.Context, out io.Writer) error {
	cfg, err := config.ReadConfigFile(configFile)
	if err != nil {
		return err
	}

	defaults, err := config.Resolve(config.LaunchOptions{}, cfg)
	if err != nil {
		return err
	}

	buf, err := (&config.GlobalConfig{Defaults: defaults}).Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(buf)
	return err
}
