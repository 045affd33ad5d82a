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

package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads a dotenv file and returns its variables as sorted KEY=VALUE pairs.
// A relative path is resolved against workingDir.
func LoadEnvFile(workingDir, envFile string) ([]string, error) {
	if envFile == "" {
		return nil, nil
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(workingDir, envFile)
	}

	vars, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("reading env file %q: %w", envFile, err)
	}

	var env []string
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env, nil
}
