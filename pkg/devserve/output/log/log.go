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

package log

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
)

type contextKey struct{}

var ContextKey = contextKey{}

type EventContext struct {
	Task    constants.Phase
	Subtask string
}

// WithPhase returns a context whose log entries are tagged with the given phase.
func WithPhase(ctx context.Context, phase constants.Phase) context.Context {
	return context.WithValue(ctx, ContextKey, EventContext{
		Task:    phase,
		Subtask: constants.SubtaskIDNone,
	})
}

// Entry takes an context.Context and constructs a logrus.Entry from it, adding
// fields for task and subtask information
func Entry(ctx context.Context) *logrus.Entry {
	val := ctx.Value(ContextKey)
	if eventContext, ok := val.(EventContext); ok {
		return logrus.WithFields(logrus.Fields{
			"task":    eventContext.Task,
			"subtask": eventContext.Subtask,
		})
	}

	// Prepare is the first phase of a launch, so it is the default.
	return logrus.WithFields(logrus.Fields{
		"task":    constants.Prepare,
		"subtask": constants.SubtaskIDNone,
	})
}

// SetupLogs sets the output and the level of the global logger.
func SetupLogs(out io.Writer, level string) error {
	logrus.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}
