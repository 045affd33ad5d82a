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
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	"github.com/GoogleContainerTools/devserve/testutil"
)

func TestEntry(t *testing.T) {
	tests := []struct {
		description string
		ctx         context.Context
		expected    logrus.Fields
	}{
		{
			description: "no phase in context",
			ctx:         context.Background(),
			expected:    logrus.Fields{"task": constants.Prepare, "subtask": constants.SubtaskIDNone},
		},
		{
			description: "phase in context",
			ctx:         WithPhase(context.Background(), constants.Relay),
			expected:    logrus.Fields{"task": constants.Relay, "subtask": constants.SubtaskIDNone},
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			got := Entry(test.ctx)

			t.CheckDeepEqual(test.expected, got.Data)
		})
	}
}

func TestSetupLogs(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		prevOut, prevLevel := logrus.StandardLogger().Out, logrus.GetLevel()
		t.Cleanup(func() {
			logrus.SetOutput(prevOut)
			logrus.SetLevel(prevLevel)
		})

		var buf bytes.Buffer
		err := SetupLogs(&buf, "info")
		t.CheckNoError(err)
		t.CheckDeepEqual(logrus.InfoLevel, logrus.GetLevel())

		logrus.Info("hello")
		t.CheckContains("hello", buf.String())

		t.CheckError(true, SetupLogs(&buf, "loud"))
	})
}
