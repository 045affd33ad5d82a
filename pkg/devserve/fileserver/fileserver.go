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
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/version"
)

const (
	timestampFormat = "02/Jan/2006 15:04:05"
	indexFile       = "index.html"
)

var (
	// waits for 1 second before forcing a server shutdown
	forceShutdownTimeout = 1 * time.Second

	now = time.Now
)

// Server serves the files of a directory over plain HTTP and logs every request.
type Server struct {
	Host string
	Port int
	Dir  string

	// Out receives the startup banner and the request log.
	Out io.Writer

	outputLock sync.Mutex
}

// Handler returns the http.Handler serving Dir, with directory listings.
func (s *Server) Handler() http.Handler {
	root := afero.NewHttpFs(util.Fs).Dir(s.Dir)
	return s.logRequests(serveIndexFiles(root, http.FileServer(root)))
}

// serveIndexFiles answers explicit requests for index.html with the file itself.
// http.FileServer would redirect them to the enclosing directory.
func serveIndexFiles(root http.FileSystem, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.HasSuffix(req.URL.Path, "/"+indexFile) {
			next.ServeHTTP(w, req)
			return
		}

		f, err := root.Open(path.Clean(req.URL.Path))
		if err != nil {
			next.ServeHTTP(w, req)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			next.ServeHTTP(w, req)
			return
		}
		http.ServeContent(w, req, info.Name(), info.ModTime(), f)
	})
}

// Run listens on Host:Port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	address := util.JoinHostPort(s.Host, s.Port)
	l, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", address, err)
	}

	return s.Serve(ctx, l)
}

// Serve serves requests accepted on l until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	port := s.Port
	if addr, ok := l.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	s.printf("Serving HTTP on %s port %d (http://%s/) ...\n", s.Host, port, util.JoinHostPort(s.Host, port))
	log.Entry(ctx).Debugf("Serving directory %s", s.Dir)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), forceShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Entry(ctx).Debugf("Forcing server shutdown: %v", err)
			return srv.Close()
		}
		return nil
	})

	return g.Wait()
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Server", version.UserAgent())
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, req)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		size := "-"
		if rec.size > 0 {
			size = humanize.Bytes(uint64(rec.size))
		}

		s.printf("%s - - [%s] \"%s %s %s\" %d %s\n", remoteHost(req.RemoteAddr), now().Format(timestampFormat), req.Method, req.URL.RequestURI(), req.Proto, status, size)
	})
}

func (s *Server) printf(format string, a ...interface{}) {
	s.outputLock.Lock()
	defer s.outputLock.Unlock()

	fmt.Fprintf(s.Out, format, a...)
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
