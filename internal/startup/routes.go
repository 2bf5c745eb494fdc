package startup

import (
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"media-parser/internal/logging"
)

// Route describes one registered HTTP route.
type Route struct {
	Methods []string
	Path    string
}

// GetRoutes walks the router and collects registered routes.
func GetRoutes(r *mux.Router) []Route {
	var routes []Route
	err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ANY"}
		}
		routes = append(routes, Route{Methods: methods, Path: path})
		return nil
	})
	if err != nil {
		logging.Warn("Failed to walk routes: %v", err)
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	return routes
}

// LogHTTPRoutes logs the registered routes at startup.
func LogHTTPRoutes(r *mux.Router) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP ROUTES")
	logging.Info("------------------------------------------------------------")
	for _, route := range GetRoutes(r) {
		logging.Info("  %-18s %s", strings.Join(route.Methods, ","), route.Path)
	}
}
