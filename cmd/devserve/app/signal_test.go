//go:build !windows

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
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/GoogleContainerTools/devserve/testutil"
)

func TestCatchCtrlC(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		ignored := make(chan os.Signal, 1)
		t.Override(&ignoredSignal, func(sig os.Signal) { ignored <- sig })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stop := catchCtrlC(cancel)
		defer stop()

		t.RequireNoError(syscall.Kill(os.Getpid(), syscall.SIGINT))
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("context wasn't cancelled on SIGINT")
		}

		t.RequireNoError(syscall.Kill(os.Getpid(), syscall.SIGINT))
		select {
		case sig := <-ignored:
			t.CheckDeepEqual(os.Interrupt, sig)
		case <-time.After(5 * time.Second):
			t.Fatal("second SIGINT wasn't caught")
		}
	})
}

func TestCatchCtrlCStop(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stop := catchCtrlC(cancel)
		stop()
		stop()

		t.CheckNoError(ctx.Err())
	})
}
