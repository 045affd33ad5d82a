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
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// T wraps a *testing.T with assertion helpers and automatic cleanup of overrides.
type T struct {
	*testing.T
}

// Run runs a subtest with a *T.
func Run(t *testing.T, name string, f func(t *T)) {
	t.Helper()

	t.Run(name, func(tt *testing.T) {
		tt.Helper()

		f(&T{T: tt})
	})
}

// Override sets the value of dest to tmp and restores the previous value when the test ends.
func (t *T) Override(dest, tmp interface{}) {
	t.Helper()

	if err := override(t.T, dest, tmp); err != nil {
		t.Fatal(err)
	}
}

func override(t *testing.T, dest, tmp interface{}) error {
	dValue := reflect.ValueOf(dest)
	if dValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	dValue = dValue.Elem()

	curValue := reflect.New(dValue.Type()).Elem()
	curValue.Set(dValue)

	var tmpV reflect.Value
	if tmp == nil {
		tmpV = reflect.Zero(dValue.Type())
	} else {
		tmpV = reflect.ValueOf(tmp)
	}
	if !tmpV.Type().AssignableTo(dValue.Type()) {
		return fmt.Errorf("cannot override a %s with a %s", dValue.Type(), tmpV.Type())
	}
	dValue.Set(tmpV)

	t.Cleanup(func() {
		dValue.Set(curValue)
	})
	return nil
}

func (t *T) CheckDeepEqual(expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	CheckDeepEqual(t.T, expected, actual, opts...)
}

func (t *T) CheckErrorAndDeepEqual(shouldErr bool, err error, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	if err := checkErr(shouldErr, err); err != nil {
		t.Error(err)
		return
	}
	if !shouldErr {
		CheckDeepEqual(t.T, expected, actual, opts...)
	}
}

func (t *T) CheckError(shouldErr bool, err error) {
	t.Helper()
	CheckError(t.T, shouldErr, err)
}

func (t *T) CheckNoError(err error) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

// RequireNoError stops the test on error.
func (t *T) RequireNoError(err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func (t *T) CheckErrorContains(message string, err error) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error containing %q, but returned none", message)
		return
	}
	if !strings.Contains(err.Error(), message) {
		t.Errorf("expected message [%s] not found in error: %s", message, err)
	}
}

func (t *T) CheckContains(expected, actual string) {
	t.Helper()
	if !strings.Contains(actual, expected) {
		t.Errorf("[%s] does not contain [%s]", actual, expected)
	}
}

func (t *T) CheckNotContains(unexpected, actual string) {
	t.Helper()
	if strings.Contains(actual, unexpected) {
		t.Errorf("[%s] contains [%s]", actual, unexpected)
	}
}

func (t *T) CheckTrue(actual bool) {
	t.Helper()
	if !actual {
		t.Error("expected true, was false")
	}
}

func (t *T) CheckFalse(actual bool) {
	t.Helper()
	if actual {
		t.Error("expected false, was true")
	}
}

func (t *T) CheckEmpty(actual interface{}) {
	t.Helper()
	assert.Empty(t.T, actual)
}

// CheckDeepEqual compares two values with go-cmp and reports a diff.
func CheckDeepEqual(t *testing.T, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(actual, expected, opts...); diff != "" {
		t.Errorf("%T differ (-got, +want): %s", expected, diff)
	}
}

func CheckError(t *testing.T, shouldErr bool, err error) {
	t.Helper()
	if err := checkErr(shouldErr, err); err != nil {
		t.Error(err)
	}
}

func checkErr(shouldErr bool, err error) error {
	if err == nil && shouldErr {
		return errors.New("expected error, but returned none")
	}
	if err != nil && !shouldErr {
		return fmt.Errorf("unexpected error: %s", err)
	}
	return nil
}
