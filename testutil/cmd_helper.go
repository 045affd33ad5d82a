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

package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FakeCmd replaces util.DefaultExecCommand in tests. It checks the command line
// and fails to start with err, without running anything.
type FakeCmd struct {
	expectedCommand string
	err             error
	started         []string
}

func NewFakeCmd(expectedCommand string, err error) *FakeCmd {
	return &FakeCmd{
		expectedCommand: expectedCommand,
		err:             err,
	}
}

func (f *FakeCmd) StartCmd(_ context.Context, cmd *exec.Cmd) error {
	actualCommand := strings.Join(cmd.Args, " ")
	f.started = append(f.started, actualCommand)
	if f.expectedCommand != actualCommand {
		return fmt.Errorf("expected: %s. Got: %s", f.expectedCommand, actualCommand)
	}

	if f.err == nil {
		return fmt.Errorf("fake command %q can't be started successfully, give it an error", actualCommand)
	}
	return f.err
}

// Started returns the command lines that were started, in order.
func (f *FakeCmd) Started() []string {
	return f.started
}
