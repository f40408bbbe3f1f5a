package generator

import (
	"fmt"
	"strings"

	"github.com/moamenhredeen/oascurl/internal/config"
)

// Generator builds curl invocations that reach the API over a unix socket
type Generator struct {
	socketPath string
	baseURL    string
}

// NewGenerator creates a generator for the given socket path and base URL.
// Empty arguments fall back to the defaults.
func NewGenerator(socketPath, baseURL string) *Generator {
	if socketPath == "" {
		socketPath = config.DefaultSocketPath
	}
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return &Generator{
		socketPath: socketPath,
		baseURL:    baseURL,
	}
}

// BuildCommand returns the curl invocation for path and method using the
// generator's socket path and base URL
func (g *Generator) BuildCommand(path, method string) string {
	return buildCommand(g.socketPath, g.baseURL, path, method)
}

// BuildCommand returns the curl invocation for path and method against the
// default socket. An empty baseURL selects http://localhost/v1.
//
// The result is three lines: the socket flag, the request method (three
// spaces of indent) and the url (two spaces), joined by line continuations.
func BuildCommand(path, method, baseURL string) string {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return buildCommand(config.DefaultSocketPath, baseURL, path, method)
}

func buildCommand(socketPath, baseURL, path, method string) string {
	// Plain concatenation: paths keep their {templates} unescaped
	fullURL := baseURL + path
	return fmt.Sprintf("curl --unix-socket %s \\\n   --request %s \\\n  --url %s",
		socketPath, strings.ToUpper(method), fullURL)
}
