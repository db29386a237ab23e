// Package guard implements the navigation checks both apps run before
// rendering a route.
package guard

// Route is the navigation target as the guard sees it
type Route struct {
	Path         string
	RequiresAuth bool
}

// Authenticator reports whether a valid session or credential is held
type Authenticator interface {
	Authenticated() bool
}

// Guard redirects unauthenticated users to the login route and authenticated
// users away from it
type Guard struct {
	auth      Authenticator
	loginPath string
	homePath  string
}

func New(auth Authenticator, loginPath, homePath string) *Guard {
	return &Guard{auth: auth, loginPath: loginPath, homePath: homePath}
}

// Resolve returns the path navigation should actually go to
func (g *Guard) Resolve(route Route) string {
	authed := g.auth.Authenticated()
	if route.RequiresAuth && !authed {
		return g.loginPath
	}
	if route.Path == g.loginPath && authed {
		return g.homePath
	}
	return route.Path
}
