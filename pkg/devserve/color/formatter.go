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

package color

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorable "github.com/mattn/go-colorable"
	"golang.org/x/term"
)

// Color is an ANSI foreground color code.
type Color int

var (
	// Default doesn't add any escape code.
	Default = Color(0)

	Red   = Color(31)
	Green = Color(32)
	Blue  = Color(34)
)

// IsTerminal will check if the specified output stream is a terminal. This can be changed
// for testing to an arbitrary method.
var IsTerminal = isTerminal

// Sprint wraps the operands in c's ANSI escape codes.
func (c Color) Sprint(a ...interface{}) string {
	if c == Default {
		return fmt.Sprint(a...)
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", c, fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and wraps the result in c's ANSI escape codes.
func (c Color) Sprintf(format string, a ...interface{}) string {
	return c.Sprint(fmt.Sprintf(format, a...))
}

// Fprintf outputs the formatted result to out, colored only if out is a terminal.
func (c Color) Fprintf(out io.Writer, format string, a ...interface{}) (n int, err error) {
	return Fprintf(out, c, format, a...)
}

// Fprintln outputs the operands to out followed by a newline, colored only if out is a terminal.
func (c Color) Fprintln(out io.Writer, a ...interface{}) (n int, err error) {
	return Fprintln(out, c, a...)
}

// Wrap returns s wrapped in c's escape codes when out is a terminal, s otherwise.
func (c Color) Wrap(out io.Writer, s string) string {
	if IsTerminal(out) {
		return c.Sprint(s)
	}
	return s
}

// Fprintln wraps the operands in the color ANSI escape codes, and outputs the result to
// out, followed by a newline. If out is not a terminal, the escape codes will not be added.
// It returns the number of bytes written and any errors encountered.
func Fprintln(out io.Writer, c Color, a ...interface{}) (n int, err error) {
	if IsTerminal(out) {
		return fmt.Fprintln(out, c.Sprint(strings.TrimSuffix(fmt.Sprintln(a...), "\n")))
	}
	return fmt.Fprintln(out, a...)
}

// Fprintf applies formats according to the format specifier (and the optional interfaces provided),
// wraps the result in the color ANSI escape codes, and outputs the result to out.
// If out is not a terminal, the escape codes will not be added.
func Fprintf(out io.Writer, c Color, format string, a ...interface{}) (n int, err error) {
	var t string
	if IsTerminal(out) {
		t = c.Sprintf(format, a...)
	} else {
		t = fmt.Sprintf(format, a...)
	}
	return fmt.Fprint(out, t)
}

// ColorableWriter is a terminal writer that understands ANSI escape codes.
type ColorableWriter struct {
	io.Writer
}

// Stdout returns a writer for os.Stdout that understands ANSI escape codes on every platform.
func Stdout() io.Writer {
	if !IsTerminal(os.Stdout) {
		return os.Stdout
	}
	return ColorableWriter{colorable.NewColorable(os.Stdout)}
}

func isTerminal(w io.Writer) bool {
	type descriptor interface {
		Fd() uintptr
	}

	switch v := w.(type) {
	case ColorableWriter:
		return true
	case descriptor:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}
