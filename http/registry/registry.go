package registry

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// SetupFunc declares the routes of one router
type SetupFunc func(r *Router)

type routerEntry struct {
	tags   []string
	setups []SetupFunc
}

var routerRegistry = make(map[string]*routerEntry)

// Register adds a router mounted at prefix; tags default every operation's tags
func Register(prefix string, tags []string, setup SetupFunc) {
	logger.WithScope("RegistryRegister").Debug().Str("prefix", prefix).Msg("Registering router")
	entry, ok := routerRegistry[prefix]
	if !ok {
		entry = &routerEntry{tags: tags}
		routerRegistry[prefix] = entry
	}
	entry.setups = append(entry.setups, setup)
}

// SetupAllRoutes installs the validator and applies every registered router
// in prefix order
func SetupAllRoutes(e *echo.Echo) {
	e.Validator = validation.NewEchoValidator()
	openapi.Reset()

	log := logger.WithScope("SetupAllRoutes")
	if len(routerRegistry) == 0 {
		log.Warn().Msg("No routes registered")
		return
	}

	prefixes := make([]string, 0, len(routerRegistry))
	for prefix := range routerRegistry {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		entry := routerRegistry[prefix]
		group := e.Group(prefix)
		for _, setup := range entry.setups {
			// middleware added with Use stays local to one setup
			setup(&Router{group: group, prefix: prefix, tags: entry.tags})
		}
		log.Debug().Str("prefix", prefix).Int("setups", len(entry.setups)).Msg("Router mounted")
	}
}

// Router registers routes on one prefix and documents them
type Router struct {
	group      *echo.Group
	prefix     string
	tags       []string
	middleware []echo.MiddlewareFunc
}

// Use adds router-level middleware to every route declared after it
func (r *Router) Use(m ...echo.MiddlewareFunc) {
	r.middleware = append(r.middleware, m...)
}

// Handle mounts h for op and records op for the API document. A "/" path
// also answers on the bare prefix.
func (r *Router) Handle(op openapi.Operation, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	op.Method = strings.ToUpper(op.Method)
	if op.Method == "" {
		op.Method = http.MethodGet
	}
	chain := append(append([]echo.MiddlewareFunc{}, r.middleware...), m...)

	r.group.Add(op.Method, op.Path, h, chain...)
	if op.Path == "/" && r.prefix != "" {
		r.group.Add(op.Method, "", h, chain...)
	}

	op.Path = r.prefix + op.Path
	if len(op.Tags) == 0 {
		op.Tags = r.tags
	}
	openapi.Register(op)
}

// Group exposes the underlying Echo group for undocumented mounts
func (r *Router) Group() *echo.Group {
	return r.group
}
