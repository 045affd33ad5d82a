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

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Exit codes returned by the devserve binary.
const (
	ExitOK = iota
	ExitUnknown
	ExitUsage
	ExitFileSystem
	ExitProcessSpawn
	ExitBrowserLaunch
	ExitPortInUse
)

type exitCoder interface {
	ExitCode() int
}

// FileSystemError is returned when the working directory doesn't exist or is not accessible.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("changing to working directory %q: %s", e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }
func (e *FileSystemError) ExitCode() int { return ExitFileSystem }

// ProcessSpawnError is returned when the static file server can't be started,
// or exits before it starts listening.
type ProcessSpawnError struct {
	Args []string
	Err  error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("starting server %q: %s", strings.Join(e.Args, " "), e.Err)
}

func (e *ProcessSpawnError) Unwrap() error { return e.Err }
func (e *ProcessSpawnError) ExitCode() int { return ExitProcessSpawn }

// BrowserLaunchError is returned when the default browser can't be opened.
type BrowserLaunchError struct {
	URL string
	Err error
}

func (e *BrowserLaunchError) Error() string {
	return fmt.Sprintf("opening %s in browser: %s", e.URL, e.Err)
}

func (e *BrowserLaunchError) Unwrap() error { return e.Err }
func (e *BrowserLaunchError) ExitCode() int { return ExitBrowserLaunch }

// PortInUseError is returned when the server port is already bound and no fallback was requested.
type PortInUseError struct {
	Address string
}

func (e *PortInUseError) Error() string {
	return fmt.Sprintf("%s is already in use, stop the process listening on it or use --port-fallback", e.Address)
}

func (e *PortInUseError) ExitCode() int { return ExitPortInUse }

// UsageError wraps invalid arguments or flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }
func (e *UsageError) ExitCode() int { return ExitUsage }
func NewUsageError(err error) error { return &UsageError{Err: err} }

// IsCancelled returns true when err comes from a user interrupt.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil || IsCancelled(err) {
		return ExitOK
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitUnknown
}
