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

package fileserver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
	"github.com/GoogleContainerTools/devserve/testutil"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		description  string
		method       string
		path         string
		expectedCode int
		expectedBody string
		expectedLog  string
	}{
		{
			description:  "serves a file",
			method:       http.MethodGet,
			path:         "/app.html",
			expectedCode: http.StatusOK,
			expectedBody: "<h1>app</h1>",
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "GET /app.html HTTP/1.1" 200 12 B` + "\n",
		},
		{
			description:  "serves index.html for the root",
			method:       http.MethodGet,
			path:         "/",
			expectedCode: http.StatusOK,
			expectedBody: "<h1>index</h1>",
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "GET / HTTP/1.1" 200 14 B` + "\n",
		},
		{
			description:  "serves index.html when named",
			method:       http.MethodGet,
			path:         "/index.html",
			expectedCode: http.StatusOK,
			expectedBody: "<h1>index</h1>",
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "GET /index.html HTTP/1.1" 200 14 B` + "\n",
		},
		{
			description:  "missing index.html",
			method:       http.MethodGet,
			path:         "/missing/index.html",
			expectedCode: http.StatusNotFound,
			expectedBody: "404 page not found\n",
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "GET /missing/index.html HTTP/1.1" 404 19 B` + "\n",
		},
		{
			description:  "serves nested files",
			method:       http.MethodGet,
			path:         "/js/main.js?v=2",
			expectedCode: http.StatusOK,
			expectedBody: "main()",
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "GET /js/main.js?v=2 HTTP/1.1" 200 6 B` + "\n",
		},
		{
			description:  "missing file",
			method:       http.MethodGet,
			path:         "/missing.html",
			expectedCode: http.StatusNotFound,
			expectedBody: "404 page not found\n",
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "GET /missing.html HTTP/1.1" 404 19 B` + "\n",
		},
		{
			description:  "head request has no body",
			method:       http.MethodHead,
			path:         "/app.html",
			expectedCode: http.StatusOK,
			expectedLog:  `192.0.2.1 - - [19/Oct/2026 10:00:00] "HEAD /app.html HTTP/1.1" 200 -` + "\n",
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			t.Override(&now, func() time.Time { return time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC) })
			tmpDir := t.NewTempDir().WriteFiles(map[string]string{
				"index.html": "<h1>index</h1>",
				"app.html":   "<h1>app</h1>",
				"js/main.js": "main()",
			})

			var out bytes.Buffer
			s := &Server{Host: "localhost", Port: 8000, Dir: tmpDir.Root(), Out: &out}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(test.method, test.path, nil))

			t.CheckDeepEqual(test.expectedCode, rec.Code)
			t.CheckDeepEqual(test.expectedBody, rec.Body.String())
			t.CheckDeepEqual(test.expectedLog, out.String())
		})
	}
}

func TestHandlerInMemory(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		fs := afero.NewMemMapFs()
		t.RequireNoError(fs.MkdirAll("/site/js", 0o755))
		t.RequireNoError(afero.WriteFile(fs, "/site/app.html", []byte("<h1>app</h1>"), 0o644))
		t.Override(&util.Fs, fs)

		s := &Server{Dir: "/site", Out: io.Discard}

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.html", nil))
		t.CheckDeepEqual(http.StatusOK, rec.Code)
		t.CheckDeepEqual("<h1>app</h1>", rec.Body.String())
		t.CheckContains("devserve/", rec.Header().Get("Server"))

		rec = httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/js/missing.js", nil))
		t.CheckDeepEqual(http.StatusNotFound, rec.Code)
	})
}

func TestDirectoryListing(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		tmpDir := t.NewTempDir().Touch("assets/logo.png", "assets/style.css")

		s := &Server{Dir: tmpDir.Root(), Out: io.Discard}
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/", nil))

		t.CheckDeepEqual(http.StatusOK, rec.Code)
		t.CheckContains(`<a href="logo.png">logo.png</a>`, rec.Body.String())
		t.CheckContains(`<a href="style.css">style.css</a>`, rec.Body.String())
	})
}

func TestServe(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		tmpDir := t.NewTempDir().Write("index.html", "<h1>index</h1>")
		l, err := net.Listen("tcp", "127.0.0.1:0")
		t.RequireNoError(err)
		port := l.Addr().(*net.TCPAddr).Port

		var out bytes.Buffer
		s := &Server{Host: "127.0.0.1", Port: port, Dir: tmpDir.Root(), Out: &out}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Serve(ctx, l) }()

		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
		t.RequireNoError(err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.CheckNoError(err)
		t.CheckDeepEqual("<h1>index</h1>", string(body))

		cancel()
		select {
		case err := <-done:
			t.CheckNoError(err)
		case <-time.After(5 * time.Second):
			t.Fatal("server didn't stop")
		}
		t.CheckContains(fmt.Sprintf("Serving HTTP on 127.0.0.1 port %d (http://127.0.0.1:%d/) ...\n", port, port), out.String())
		t.CheckContains(`"GET / HTTP/1.1" 200 14 B`, out.String())
	})
}

func TestRunPortInUse(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		t.RequireNoError(err)
		defer l.Close()

		s := &Server{Host: "127.0.0.1", Port: l.Addr().(*net.TCPAddr).Port, Dir: t.TempDir(), Out: io.Discard}
		err = s.Run(context.Background())

		t.CheckErrorContains("listening on 127.0.0.1:", err)
	})
}
