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

package logger

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/acarl005/stripansi"
	"github.com/segmentio/textio"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/color"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
)

// LineReader reads the output of a server one line at a time.
type LineReader interface {
	ReadLine() (string, error)
}

// Console serializes the launcher status messages and the server lines relayed to the user.
type Console struct {
	out         io.Writer
	prefix      string
	headerColor color.Color

	outputLock sync.Mutex
}

// NewConsole creates a Console writing to out. Relayed lines start with prefix.
func NewConsole(out io.Writer, prefix string) *Console {
	return &Console{
		out:         out,
		prefix:      prefix,
		headerColor: color.Blue,
	}
}

// Println prints a status line.
func (c *Console) Println(col color.Color, a ...interface{}) {
	c.outputLock.Lock()
	defer c.outputLock.Unlock()

	col.Fprintln(c.out, a...)
}

// Relay copies every line read from r to the console, in order, until r returns io.EOF.
// Each line is written behind the prefix, with its trailing whitespace removed.
// Escape sequences are dropped when the console is not a terminal.
func (c *Console) Relay(ctx context.Context, r LineReader) error {
	header := c.prefix
	if header != "" {
		header = c.headerColor.Wrap(c.out, header) + " "
	}
	w := textio.NewPrefixWriter(c.out, header)
	defer c.flush(w)

	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			log.Entry(ctx).Debug("Server output closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading server output: %w", err)
		}

		c.printLogLine(w, line)
	}
}

func (c *Console) printLogLine(w *textio.PrefixWriter, line string) {
	c.outputLock.Lock()
	defer c.outputLock.Unlock()

	line = strings.TrimRight(line, " \t\r\n")
	if !color.IsTerminal(c.out) {
		line = stripansi.Strip(line)
	}
	fmt.Fprintln(w, line)
}

func (c *Console) flush(w *textio.PrefixWriter) {
	c.outputLock.Lock()
	defer c.outputLock.Unlock()

	w.Flush()
}
