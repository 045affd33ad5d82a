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

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/fileserver"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
)

// NewCmdServe describes the CLI command running the built-in static file server.
// Its banner and request log go to errOut.
func NewCmdServe(errOut io.Writer) *cobra.Command {
	s := &fileserver.Server{Out: errOut}

	return NewCmd(errOut, constants.ServeCommand).
		WithDescription("Serve a directory over HTTP").
		WithLongDescription("Serve a directory over HTTP, with directory listings, until interrupted. Every request is logged on stderr.").
		WithExample("Serve the current directory on port 8080", "devserve serve --port 8080").
		WithFlags(func(f *pflag.FlagSet) {
			f.StringVar(&s.Host, "host", constants.DefaultHost, "Host to bind to")
			f.IntVarP(&s.Port, "port", "p", constants.DefaultPort, "Port to listen on")
			f.StringVarP(&s.Dir, "dir", "d", ".", "Directory to serve")
		}).
		NoArgs(func(ctx context.Context, _ io.Writer) error {
			return doServe(ctx, s)
		})
}

func doServe(ctx context.Context, s *fileserver.Server) error {
	ctx = log.WithPhase(ctx, constants.Serve)

	dir, err := util.AbsDir(s.Dir)
	if err != nil {
		return err
	}
	s.Dir = dir

	return s.Run(ctx)
}
