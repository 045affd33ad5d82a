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

package server

import (
	"context"
	"net"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/GoogleContainerTools/devserve/pkg/devserve/constants"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/output/log"
	"github.com/GoogleContainerTools/devserve/pkg/devserve/util"
)

// WaitForPort polls host:port until it accepts a tcp connection, the timeout
// elapses or ctx is cancelled.
func WaitForPort(ctx context.Context, host string, port int, timeout time.Duration) error {
	address := util.JoinHostPort(host, port)
	dialer := net.Dialer{Timeout: constants.ReadyPollInterval}

	return wait.PollUntilContextTimeout(ctx, constants.ReadyPollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			log.Entry(ctx).Tracef("%s not ready: %v", address, err)
			return false, nil
		}
		conn.Close()
		return true, nil
	})
}
