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
	"os"
	"path/filepath"
)

// TempDir offers temporary folder and file manipulation.
type TempDir struct {
	t    *T
	root string
}

// NewTempDir creates a temporary directory, removed when the test ends.
func (t *T) NewTempDir() *TempDir {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %s", err)
	}

	return &TempDir{t: t, root: root}
}

// Root returns the path to the temporary folder.
func (h *TempDir) Root() string {
	return h.root
}

// Path returns the path to a file in the temporary folder.
func (h *TempDir) Path(file string) string {
	return filepath.Join(h.root, filepath.FromSlash(file))
}

// Mkdir creates a sub directory.
func (h *TempDir) Mkdir(dir string) *TempDir {
	h.t.Helper()

	if err := os.MkdirAll(h.Path(dir), os.ModePerm); err != nil {
		h.t.Fatalf("creating directory %s: %s", dir, err)
	}
	return h
}

// Write creates a file with the given content, along with its parent directories.
func (h *TempDir) Write(file, content string) *TempDir {
	h.t.Helper()

	path := h.Path(file)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		h.t.Fatalf("creating directory for %s: %s", file, err)
	}
	if err := os.WriteFile(path, []byte(content), os.ModePerm); err != nil {
		h.t.Fatalf("writing %s: %s", file, err)
	}
	return h
}

// WriteFiles writes multiple files.
func (h *TempDir) WriteFiles(files map[string]string) *TempDir {
	for path, content := range files {
		h.Write(path, content)
	}
	return h
}

// Touch creates empty files.
func (h *TempDir) Touch(files ...string) *TempDir {
	for _, file := range files {
		h.Write(file, "")
	}
	return h
}

// Chdir changes the current directory to the temporary folder
// and restores it when the test ends.
func (h *TempDir) Chdir() *TempDir {
	h.t.Chdir(h.root)
	return h
}

// Chdir changes the current directory and restores the previous one when the test ends.
func (t *T) Chdir(dir string) {
	t.Helper()

	pwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting current directory: %s", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing directory to %s: %s", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(pwd); err != nil {
			t.Fatalf("restoring directory %s: %s", pwd, err)
		}
	})
}
