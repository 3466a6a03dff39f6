package ui

import (
	"net/url"
	"strings"

	"github.com/five82/booktrack/internal/books"
)

// RouteKind identifies which screen a route mounts.
type RouteKind int

const (
	RouteList RouteKind = iota
	RouteDetail
	RouteAdd
	RouteNotFound
)

// Route is a parsed client path.
type Route struct {
	Kind RouteKind
	// ID is set for RouteDetail. It is empty for "/book".
	ID books.ID
}

// ParseRoute maps a path to a route. Unknown paths map to RouteNotFound.
//
//	/            list
//	/book/:id    detail
//	/book        detail with no id
//	/addnew      add form
func ParseRoute(path string) Route {
	p := strings.TrimSpace(path)
	if p == "" {
		return Route{Kind: RouteList}
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}

	switch {
	case p == "/" || p == "":
		return Route{Kind: RouteList}
	case p == "/addnew":
		return Route{Kind: RouteAdd}
	case p == "/book":
		return Route{Kind: RouteDetail}
	case strings.HasPrefix(p, "/book/"):
		raw := strings.TrimPrefix(p, "/book/")
		if strings.Contains(raw, "/") {
			return Route{Kind: RouteNotFound}
		}
		id, err := url.PathUnescape(raw)
		if err != nil {
			id = raw
		}
		return Route{Kind: RouteDetail, ID: books.ID(id)}
	default:
		return Route{Kind: RouteNotFound}
	}
}

// Path renders the route back to a client path.
func (r Route) Path() string {
	switch r.Kind {
	case RouteDetail:
		if r.ID == "" {
			return "/book"
		}
		return "/book/" + url.PathEscape(string(r.ID))
	case RouteAdd:
		return "/addnew"
	default:
		return "/"
	}
}
