// Package router resolves front-end locations to pages. Path matching is done by echo's radix
// router; no route carries an authorization guard.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
)

var (
	ErrNotFound     = errors.New("no route matches path")
	ErrRedirectLoop = errors.New("too many redirects")
)

const (
	routeKey     = "route"
	maxRedirects = 5
)

// Resolution is the outcome of matching a location. Exactly one of Page and Redirect is set.
type Resolution struct {
	Path     string            `json:"path"`
	Pattern  string            `json:"pattern"`
	Name     string            `json:"name,omitempty"`
	Page     enums.Page        `json:"page,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

type Router struct {
	echo   *echo.Echo
	routes []Route
}

// New builds a router over routes. Patterns must be unique.
func New(routes []Route) *Router {
	e := echo.New()
	for _, route := range routes {
		e.GET(route.Pattern, func(c echo.Context) error {
			c.Set(routeKey, route)
			return nil
		})
	}
	return &Router{echo: e, routes: routes}
}

// Default returns a router over the front-end route table.
func Default() *Router {
	return New(Routes)
}

func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Resolve matches location against the table. Query strings and fragments are ignored and a
// trailing slash is tolerated. Redirecting routes are evaluated against state but not followed.
func (r *Router) Resolve(location string, state models.Session) (Resolution, error) {
	path := normalize(location)

	c := r.echo.NewContext(nil, nil)
	r.echo.Router().Find(http.MethodGet, path, c)
	if err := c.Handler()(c); err != nil {
		return Resolution{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	route, ok := c.Get(routeKey).(Route)
	if !ok || !exact(route.Pattern, path, c.ParamValues()) {
		return Resolution{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	res := Resolution{Path: path, Pattern: route.Pattern, Name: route.Name}
	if route.Redirect != nil {
		res.Redirect = route.Redirect(state)
		return res, nil
	}

	res.Page = route.Page
	if route.Props {
		res.Params = params(c.ParamNames(), c.ParamValues())
	}
	return res, nil
}

// Follow resolves location and keeps following redirects until a page is reached.
func (r *Router) Follow(location string, state models.Session) (Resolution, error) {
	for i := 0; i <= maxRedirects; i++ {
		res, err := r.Resolve(location, state)
		if err != nil {
			return Resolution{}, err
		}
		if res.Redirect == "" {
			return res, nil
		}
		location = res.Redirect
	}
	return Resolution{}, fmt.Errorf("%w: %s", ErrRedirectLoop, location)
}

func normalize(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	if len(location) > 1 {
		location = strings.TrimRight(location, "/")
		if location == "" {
			location = "/"
		}
	}
	return location
}

// exact rejects matches where echo let a trailing param swallow further path segments.
func exact(pattern, path string, values []string) bool {
	if segments(pattern) != segments(path) {
		return false
	}
	for _, v := range values {
		if strings.Contains(v, "/") {
			return false
		}
	}
	return true
}

func segments(path string) int {
	return strings.Count(strings.Trim(path, "/"), "/")
}

func params(names, values []string) map[string]string {
	out := make(map[string]string, len(names))
	for i, name := range names {
		if i >= len(values) {
			break
		}
		value, err := url.PathUnescape(values[i])
		if err != nil {
			value = values[i]
		}
		out[name] = value
	}
	return out
}
