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

package flags

import (
	"bytes"
	"testing"
)

type templateData struct {
	Field string `json:"field"`
}

var (
	data        = &templateData{Field: "test"}
	rawTemplate = "{{.Field}}"
)

func TestNewTemplateFlag(t *testing.T) {
	actual := &bytes.Buffer{}

	flag := NewTemplateFlag(rawTemplate, nil)
	if err := flag.Template().Execute(actual, data); err != nil {
		t.Errorf("Error executing template from flag: %s", err)
	}

	if actual.String() != "test" {
		t.Errorf("Template output did not match. Expected test, Actual %s", actual.String())
	}
}

func TestTemplateSet(t *testing.T) {
	flag := &TemplateFlag{}
	if err := flag.Set(rawTemplate); err != nil {
		t.Errorf("Error setting flag value: %s", err)
	}

	if err := flag.Set("{{.Field bad template"); err == nil {
		t.Errorf("Expected error setting flag but got none.")
	}
}

func TestTemplateSetJSON(t *testing.T) {
	flag := NewTemplateFlag(rawTemplate, nil)
	if err := flag.Set("json"); err != nil {
		t.Fatalf("Error setting flag value: %s", err)
	}

	actual := &bytes.Buffer{}
	if err := flag.Template().Execute(actual, data); err != nil {
		t.Fatalf("Error executing template from flag: %s", err)
	}
	if expected := "{\"field\":\"test\"}\n"; actual.String() != expected {
		t.Errorf("Template output did not match. Expected %s, Actual %s", expected, actual.String())
	}
	if flag.String() != "json" {
		t.Errorf("Flag String() does not match. Expected json, Actual %s", flag.String())
	}
}

func TestTemplateSprigFunctions(t *testing.T) {
	flag := &TemplateFlag{}
	if err := flag.Set("{{.Field | upper}}"); err != nil {
		t.Fatalf("Error setting flag value: %s", err)
	}

	actual := &bytes.Buffer{}
	if err := flag.Template().Execute(actual, data); err != nil {
		t.Fatalf("Error executing template from flag: %s", err)
	}
	if actual.String() != "TEST" {
		t.Errorf("Template output did not match. Expected TEST, Actual %s", actual.String())
	}
}

func TestTemplateString(t *testing.T) {
	flag := NewTemplateFlag(rawTemplate, nil)
	if rawTemplate != flag.String() {
		t.Errorf("Flag String() does not match. Expected %s, Actual %s", rawTemplate, flag.String())
	}
}

func TestTemplateUsage(t *testing.T) {
	flag := NewTemplateFlag(rawTemplate, templateData{})
	expected := "Format output with go-template, or json. For full struct documentation, see https://pkg.go.dev/github.com/GoogleContainerTools/devserve/cmd/devserve/app/flags#templateData"
	if flag.Usage() != expected {
		t.Errorf("Flag Usage() does not match. Expected %s, Actual %s", expected, flag.Usage())
	}
}
