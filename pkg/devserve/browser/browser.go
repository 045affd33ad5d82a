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

package browser

import (
	"context"
	"strings"

	"github.com/pkg/browser"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
)

var (
	// for testing
	open = browser.OpenURL
)

// Opener opens URLs in a browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Default opens URLs in the user's default browser.
type Default struct{}

// Open asks the OS to open url in the default browser. It doesn't wait for the browser.
func (Default) Open(ctx context.Context, url string) error {
	log.Entry(ctx).Debugf("Opening %s in browser", url)
	return open(url)
}

// EntryURL builds the URL of the entry file served at host:port.
// The entry file is used as given, so it may carry a query string or a fragment.
func EntryURL(host string, port int, entryFile string) string {
	return "http://" + util.JoinHostPort(host, port) + "/" + strings.TrimLeft(entryFile, "/")
}
