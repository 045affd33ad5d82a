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

package launcher

import (
	"context"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/browser"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/color"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/config"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	dsErrors "github.com/GoogleContainerTools/devserve/pkg/devserve/errors"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/logger"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/server"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
)

// For testing
var (
	chdir            = os.Chdir
	executable       = os.Executable
	isPortFree       = util.IsPortFree
	getAvailablePort = util.GetAvailablePort
	waitForPort      = server.WaitForPort
)

// Launcher serves a directory with a static file server child process,
// opens the entry file in the browser and relays the server output until interrupted.
type Launcher struct {
	opts    config.LaunchOptions
	console *logger.Console

	starter server.Starter
	opener  browser.Opener

	// drainTimeout bounds how long the remaining server output is relayed after the server exited.
	drainTimeout time.Duration
}

// New creates a Launcher for fully resolved options, writing its status lines to out.
func New(opts config.LaunchOptions, out io.Writer) *Launcher {
	return &Launcher{
		opts:         opts,
		console:      logger.NewConsole(out, opts.Prefix),
		starter:      server.ExecStarter{GracePeriod: constants.TerminationGracePeriod},
		opener:       browser.Default{},
		drainTimeout: time.Second,
	}
}

// handle tracks a started server: its exit and the goroutine relaying its output.
type handle struct {
	proc server.Process
	args []string

	exited  chan struct{}
	waitErr error

	relayed  chan struct{}
	relayErr error
}

// Run blocks until ctx is cancelled or the server exits on its own.
// An interrupted launch is not an error.
func (l *Launcher) Run(ctx context.Context) error {
	dir, err := l.prepareWorkingDir(log.WithPhase(ctx, constants.Prepare))
	if err != nil {
		return err
	}

	port, err := l.choosePort(log.WithPhase(ctx, constants.Prepare))
	if err != nil {
		return err
	}

	spec, err := l.serverSpec(dir, port)
	if err != nil {
		return err
	}

	h, err := l.start(log.WithPhase(ctx, constants.Spawn), spec)
	if err != nil {
		return err
	}

	url := browser.EntryURL(l.opts.Host, port, l.opts.EntryFile)
	l.console.Println(color.Default, "Server starting in background at", url)
	go func() {
		h.relayErr = l.console.Relay(log.WithPhase(ctx, constants.Relay), h.proc)
		close(h.relayed)
	}()

	if err := l.waitUntilReady(log.WithPhase(ctx, constants.Ready), h, port); err != nil {
		if ctx.Err() != nil {
			return l.interrupt(ctx, h)
		}
		l.drain(ctx, h)
		return err
	}

	if !l.opts.NoBrowser {
		l.console.Println(color.Default, "Opening browser...")
		if err := l.opener.Open(log.WithPhase(ctx, constants.Browse), url); err != nil {
			l.stop(ctx, h)
			return &dsErrors.BrowserLaunchError{URL: url, Err: err}
		}
	}

	select {
	case <-ctx.Done():
		return l.interrupt(ctx, h)
	case <-h.relayed:
		if h.relayErr != nil {
			log.Entry(ctx).Warnf("Relaying server output: %v", h.relayErr)
		}
	}

	select {
	case <-ctx.Done():
		return l.interrupt(ctx, h)
	case <-h.exited:
	}

	if h.waitErr != nil && !util.IsTerminatedError(h.waitErr) {
		return errors.Wrap(h.waitErr, "server exited")
	}
	log.Entry(ctx).Debug("Server exited")
	return nil
}

func (l *Launcher) prepareWorkingDir(ctx context.Context) (string, error) {
	dir, err := util.AbsDir(l.opts.WorkingDir)
	if err != nil {
		return "", &dsErrors.FileSystemError{Path: l.opts.WorkingDir, Err: err}
	}
	if err := chdir(dir); err != nil {
		return "", &dsErrors.FileSystemError{Path: dir, Err: err}
	}

	log.Entry(ctx).Debugf("Working directory is now %s", dir)
	return dir, nil
}

func (l *Launcher) choosePort(ctx context.Context) (int, error) {
	if isPortFree(l.opts.Host, l.opts.Port) {
		return l.opts.Port, nil
	}

	address := util.JoinHostPort(l.opts.Host, l.opts.Port)
	if !l.opts.PortFallback {
		return 0, &dsErrors.PortInUseError{Address: address}
	}

	port := getAvailablePort(l.opts.Host, l.opts.Port, &sync.Map{})
	if port == -1 {
		return 0, &dsErrors.PortInUseError{Address: address}
	}

	log.Entry(ctx).Warnf("%s is already in use, serving on port %d instead", address, port)
	return port, nil
}

func (l *Launcher) serverSpec(dir string, port int) (server.Spec, error) {
	args, err := l.serverArgs(dir, port)
	if err != nil {
		return server.Spec{}, err
	}

	env, err := config.LoadEnvFile(dir, l.opts.EnvFile)
	if err != nil {
		return server.Spec{}, err
	}

	return server.Spec{
		Args: args,
		Dir:  dir,
		Env:  env,
	}, nil
}

func (l *Launcher) serverArgs(dir string, port int) ([]string, error) {
	if l.opts.ServerCommand == "" {
		self, err := executable()
		if err != nil {
			return nil, errors.Wrap(err, "locating the devserve binary")
		}
		return []string{self, constants.ServeCommand, "--host", l.opts.Host, "--port", strconv.Itoa(port), "--dir", dir}, nil
	}

	args, err := util.ExpandCommand(l.opts.ServerCommand, map[string]string{
		"HOST": l.opts.Host,
		"PORT": strconv.Itoa(port),
		"DIR":  dir,
	})
	if err != nil {
		return nil, dsErrors.NewUsageError(errors.Wrap(err, "expanding --server-cmd"))
	}
	return args, nil
}

func (l *Launcher) start(ctx context.Context, spec server.Spec) (*handle, error) {
	proc, err := l.starter.Start(ctx, spec)
	if err != nil {
		return nil, &dsErrors.ProcessSpawnError{Args: spec.Args, Err: err}
	}
	log.Entry(ctx).Debugf("Server started with pid %d", proc.Pid())

	h := &handle{
		proc:    proc,
		args:    spec.Args,
		exited:  make(chan struct{}),
		relayed: make(chan struct{}),
	}
	go func() {
		h.waitErr = proc.Wait()
		close(h.exited)
	}()

	return h, nil
}

// waitUntilReady returns nil once the server listens, or when it didn't within the ready timeout.
func (l *Launcher) waitUntilReady(ctx context.Context, h *handle, port int) error {
	if l.opts.StartupDelay > 0 {
		select {
		case <-time.After(l.opts.StartupDelay):
			return nil
		case <-h.exited:
			return l.exitedEarly(h)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	readyCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-h.exited:
			cancel()
		case <-readyCtx.Done():
		}
	}()

	err := waitForPort(readyCtx, l.opts.Host, port, l.opts.ReadyTimeout)

	select {
	case <-h.exited:
		return l.exitedEarly(h)
	default:
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		log.Entry(ctx).Warnf("Server not listening on %s after %v, opening the browser anyway", util.JoinHostPort(l.opts.Host, port), l.opts.ReadyTimeout)
	}
	return nil
}

func (l *Launcher) exitedEarly(h *handle) error {
	err := h.waitErr
	if err == nil {
		err = errors.New("exited before listening")
	} else {
		err = errors.Wrap(err, "exited before listening")
	}
	return &dsErrors.ProcessSpawnError{Args: h.args, Err: err}
}

func (l *Launcher) interrupt(ctx context.Context, h *handle) error {
	l.console.Println(color.Default, "\nStopping server...")
	l.stop(ctx, h)
	l.console.Println(color.Default, "Server stopped.")
	return nil
}

// stop sends a single termination request and waits for the server to exit.
func (l *Launcher) stop(ctx context.Context, h *handle) {
	ctx = log.WithPhase(ctx, constants.Shutdown)

	if err := h.proc.Terminate(); err != nil {
		log.Entry(ctx).Warnf("Terminating server: %v", err)
	}

	select {
	case <-h.exited:
	case <-time.After(constants.TerminationGracePeriod + l.drainTimeout):
		log.Entry(ctx).Warnf("Server with pid %d didn't exit", h.proc.Pid())
	}
	l.drain(ctx, h)
}

// drain waits for the output written before the server exited to be relayed.
func (l *Launcher) drain(ctx context.Context, h *handle) {
	select {
	case <-h.relayed:
		if h.relayErr != nil {
			log.Entry(ctx).Debugf("Relaying server output: %v", h.relayErr)
		}
	case <-time.After(l.drainTimeout):
		log.Entry(ctx).Debug("Server output still open, not waiting for it")
	}
}
