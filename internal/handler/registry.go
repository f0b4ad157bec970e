package handler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/occopus/sigmanode/internal/config"
)

// Factory creates a resource handler from its configuration.
type Factory func(cfg *config.HandlerConfig, opts ...Option) (ResourceHandler, error)

var (
	registry      = map[string]Factory{}
	registryMutex sync.Mutex
)

func init() {
	Register(Protocol, func(cfg *config.HandlerConfig, opts ...Option) (ResourceHandler, error) {
		return New(cfg, opts...)
	})
}

// Register makes a handler factory available under protocol. Registering a
// protocol twice replaces the earlier factory.
func Register(protocol string, f Factory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[protocol] = f
}

// NewByProtocol creates the handler registered under protocol.
func NewByProtocol(protocol string, cfg *config.HandlerConfig, opts ...Option) (ResourceHandler, error) {
	registryMutex.Lock()
	f, ok := registry[protocol]
	registryMutex.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown resource handler protocol: %s", protocol)
	}
	return f(cfg, opts...)
}

// Protocols lists the registered protocol ids.
func Protocols() []string {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	out := make([]string, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
