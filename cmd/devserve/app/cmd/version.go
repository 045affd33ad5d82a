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
	"github.com/spf13/pflag"

	"github.com/GoogleContainerTools/devserve/cmd/devserve/app/flags"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/version"
)

// NewCmdVersion describes the CLI command to print the version.
func NewCmdVersion(out io.Writer) *cobra.Command {
	versionFlag := flags.NewTemplateFlag("{{.Version}}\n", version.Info{})

	return NewCmd(out, "version").
		WithDescription("Print the version information").
		WithFlags(func(f *pflag.FlagSet) {
			f.VarP(versionFlag, "output", "o", versionFlag.Usage())
		}).
		NoArgs(func(_ context.Context, out io.Writer) error {
			return versionFlag.Template().Execute(out, version.Get())
		})
}
