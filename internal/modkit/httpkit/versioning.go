package httpkit

import (
	"net/http"
	"strings"
)

// MountVersion mounts a subrouter under /{version}, applies mw, then lets mount register routes
//
//	httpkit.MountVersion(r, "v1", nil, func(v1 httpkit.Router) {
//	  weekly.MountRoutes(v1)
//	})
func MountVersion(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/"+strings.Trim(version, "/"), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
