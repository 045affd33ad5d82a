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

package util

import (
	"net"
	"strconv"
	"sync"
)

// Loopback network address.
const Loopback = "127.0.0.1"

// fallbackPortRange is how many ports after the requested one are tried before
// asking the OS for a random free port.
const fallbackPortRange = 10

// JoinHostPort formats a host and a numeric port as host:port.
func JoinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// GetAvailablePort returns an available port that is near the requested port when possible.
// First, check if the provided port is available on the specified address. If so, use it.
// If not, check if any of the next ports after the provided port are available.
// If not, get a random port from the OS.
// Ports already handed out through usedPorts are never returned twice.
// Returns -1 if no port could be found.
func GetAvailablePort(host string, port int, usedPorts *sync.Map) int {
	if port > 0 {
		if getPortIfAvailable(host, port, usedPorts) {
			return port
		}

		for i := 0; i < fallbackPortRange; i++ {
			port++
			if getPortIfAvailable(host, port, usedPorts) {
				return port
			}
		}
	}

	l, err := net.Listen("tcp", JoinHostPort(host, 0))
	if err != nil {
		return -1
	}
	p := l.Addr().(*net.TCPAddr).Port
	usedPorts.Store(p, true)
	l.Close()
	return p
}

func getPortIfAvailable(host string, p int, usedPorts *sync.Map) bool {
	if _, alreadyUsed := usedPorts.LoadOrStore(p, true); alreadyUsed {
		return false
	}

	return IsPortFree(host, p)
}

// IsPortFree returns true if a tcp listener can be bound to host:p.
func IsPortFree(host string, p int) bool {
	l, err := net.Listen("tcp", JoinHostPort(host, p))
	if err != nil {
		return false
	}

	l.Close()
	return true
}
