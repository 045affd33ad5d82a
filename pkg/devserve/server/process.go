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

package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
)

// Spec describes the static file server process to start.
type Spec struct {
	// Args is the command line, Args[0] being the executable.
	Args []string
	// Dir is the working directory of the process.
	Dir string
	// Env is added to the environment inherited from the launcher.
	Env []string
}

// Process is a handle on a running static file server.
// The handle is the only owner of the OS process.
type Process interface {
	// ReadLine returns the next line written by the server on stdout or stderr,
	// without its line terminator. It returns io.EOF once the server closed its output.
	ReadLine() (string, error)
	// Terminate asks the server to stop. Only the first call sends a signal.
	Terminate() error
	// Wait blocks until the server exited. A server stopped by Terminate is not an error.
	Wait() error
	Pid() int
}

// Starter starts static file server processes.
type Starter interface {
	Start(ctx context.Context, spec Spec) (Process, error)
}

// ExecStarter starts the server as an OS process.
type ExecStarter struct {
	// GracePeriod is how long a terminated process may take before it's killed.
	GracePeriod time.Duration
}

// Start starts the process described by spec with its stdout and stderr merged into a single pipe,
// so that lines are read in the order they were written.
func (s ExecStarter) Start(ctx context.Context, spec Spec) (Process, error) {
	if len(spec.Args) == 0 {
		return nil, errors.New("no server command")
	}

	cmd := exec.Command(spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)
	setProcessGroup(cmd)

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := util.StartCmd(ctx, cmd); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// The child holds its own copy of the write end.
	pw.Close()

	gracePeriod := s.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = constants.TerminationGracePeriod
	}

	p := &execProcess{
		ctx:         ctx,
		cmd:         cmd,
		output:      pr,
		reader:      bufio.NewReader(pr),
		gracePeriod: gracePeriod,
		exited:      make(chan struct{}),
	}
	go p.wait()

	return p, nil
}

type execProcess struct {
	ctx         context.Context
	cmd         *exec.Cmd
	output      io.Closer
	reader      *bufio.Reader
	gracePeriod time.Duration

	terminateOnce sync.Once
	terminated    atomic.Bool

	exited  chan struct{}
	waitErr error
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if line != "" && errors.Is(err, io.EOF) {
			return strings.TrimRight(line, "\r\n"), nil
		}
		p.output.Close()
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *execProcess) Terminate() error {
	var err error

	p.terminateOnce.Do(func() {
		select {
		case <-p.exited:
			return
		default:
		}

		p.terminated.Store(true)
		log.Entry(p.ctx).Debugf("Terminating process %v", p.Pid())
		if err = terminate(p.cmd); err != nil {
			log.Entry(p.ctx).Debugf("Killing process %v: %v", p.Pid(), err)
			err = kill(p.cmd)
			return
		}

		go func() {
			select {
			case <-p.exited:
			case <-time.After(p.gracePeriod):
				log.Entry(p.ctx).Debugf("Killing process %v after %v grace period", p.Pid(), p.gracePeriod)
				kill(p.cmd)
			}
		}()
	})

	return err
}

func (p *execProcess) Wait() error {
	<-p.exited

	var exitErr *exec.ExitError
	if p.terminated.Load() && errors.As(p.waitErr, &exitErr) {
		return nil
	}
	return p.waitErr
}

func (p *execProcess) wait() {
	p.waitErr = p.cmd.Wait()
	log.Entry(p.ctx).Debugf("Process %v exited: %v", p.Pid(), p.waitErr)
	close(p.exited)
}
