package utils

import (
	"fmt"
	"net"
)

// FindAvailableAPIPort finds an available port for the API server.
func FindAvailableAPIPort() int {
	port := 8080
	for {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port
		}
		port++
	}
}
