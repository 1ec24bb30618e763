package registry

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/marcusholm/mcp-excel-reader/internal/tools"
	"github.com/sirupsen/logrus"
)

// Registry holds the set of tools exposed to the MCP server along with
// the shared logger and cache handed to every execution. A Registry is
// built once at process start; Register is not safe for use after the
// server starts serving.
type Registry struct {
	tools    map[string]tools.Tool
	disabled map[string]bool
	logger   *logrus.Logger
	cache    *sync.Map
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithDisabledTools marks tool names that Register must skip.
func WithDisabledTools(names ...string) Option {
	return func(r *Registry) {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name != "" {
				r.disabled[name] = true
			}
		}
	}
}

// DisabledFromEnv reads the DISABLED_TOOLS environment variable, a
// comma-separated list of tool names.
func DisabledFromEnv() []string {
	env := os.Getenv("DISABLED_TOOLS")
	if env == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(env, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// New creates an empty registry with its shared resources.
func New(logger *logrus.Logger, opts ...Option) *Registry {
	r := &Registry{
		tools:    make(map[string]tools.Tool),
		disabled: make(map[string]bool),
		logger:   logger,
		cache:    &sync.Map{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool implementation unless its name is disabled.
func (r *Registry) Register(tool tools.Tool) {
	name := tool.Definition().Name
	if r.disabled[name] {
		r.logger.WithField("tool", name).Debug("Tool disabled via environment variable")
		return
	}
	r.tools[name] = tool
	r.logger.WithField("tool", name).Debug("Tool registered")
}

// Tool retrieves a tool by name.
func (r *Registry) Tool(name string) (tools.Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Tools returns all registered tools keyed by name.
func (r *Registry) Tools() map[string]tools.Tool {
	out := make(map[string]tools.Tool, len(r.tools))
	for name, tool := range r.tools {
		out[name] = tool
	}
	return out
}

// ToolNames returns a sorted list of registered tool names.
func (r *Registry) ToolNames() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Logger returns the shared logger instance.
func (r *Registry) Logger() *logrus.Logger {
	return r.logger
}

// Cache returns the shared cache instance.
func (r *Registry) Cache() *sync.Map {
	return r.cache
}
