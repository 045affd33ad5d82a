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

package util

import (
	"context"
	"os/exec"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
)

// DefaultExecCommand starts commands using exec.Cmd
var DefaultExecCommand Command = &Commander{}

// Command is an interface used to start long running commands. All packages should use this
// interface instead of calling exec.Cmd directly.
type Command interface {
	StartCmd(ctx context.Context, cmd *exec.Cmd) error
}

// StartCmd starts an exec.Cmd without waiting for it to complete.
func StartCmd(ctx context.Context, cmd *exec.Cmd) error {
	return DefaultExecCommand.StartCmd(ctx, cmd)
}

// Commander is the exec.Cmd implementation of the Command interface
type Commander struct{}

// StartCmd starts an exec.Cmd.
func (*Commander) StartCmd(ctx context.Context, cmd *exec.Cmd) error {
	log.Entry(ctx).Debugf("Running command: %s", cmd.Args)
	return cmd.Start()
}
