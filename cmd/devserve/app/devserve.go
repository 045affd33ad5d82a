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

package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/GoogleContainerTools/devserve/cmd/devserve/app/cmd"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/errors"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
)

// Run executes the command line in os.Args. An interrupt cancels the command's context.
func Run(out, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := catchCtrlC(cancel)
	defer stop()

	c := cmd.NewDevserveCommand(out, stderr)
	return c.ExecuteContext(ctx)
}

// ExitCode maps the error returned by Run to the process exit code.
func ExitCode(err error) int {
	return errors.ExitCode(err)
}

// ignoredSignal is called for every signal received once the context is cancelled.
var ignoredSignal = func(sig os.Signal) {
	log.Entry(context.TODO()).Warnf("Received %s, already stopping the server", sig)
}

// catchCtrlC cancels the context on the first SIGINT or SIGTERM.
// Further signals are ignored until the returned func is called, so that
// stopping the server runs to completion.
func catchCtrlC(cancel context.CancelFunc) func() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals,
		os.Interrupt,
		syscall.SIGTERM,
	)

	done := make(chan struct{})
	go func() {
		select {
		case <-signals:
			cancel()
		case <-done:
			return
		}

		for {
			select {
			case sig := <-signals:
				ignoredSignal(sig)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(signals)
			close(done)
		})
	}
}
