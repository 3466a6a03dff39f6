package ui

import (
	"testing"

	"github.com/five82/booktrack/internal/books"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"", Route{Kind: RouteList}},
		{"/", Route{Kind: RouteList}},
		{"/addnew", Route{Kind: RouteAdd}},
		{"/addnew/", Route{Kind: RouteAdd}},
		{"addnew", Route{Kind: RouteAdd}},
		{"/book", Route{Kind: RouteDetail}},
		{"/book/1", Route{Kind: RouteDetail, ID: "1"}},
		{"/book/abc-123/", Route{Kind: RouteDetail, ID: "abc-123"}},
		{"/book/a%20b", Route{Kind: RouteDetail, ID: "a b"}},
		{"/book/1/edit", Route{Kind: RouteNotFound}},
		{"/books", Route{Kind: RouteNotFound}},
	}

	for _, tt := range tests {
		if got := ParseRoute(tt.path); got != tt.want {
			t.Errorf("ParseRoute(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}

func TestRoutePath_RoundTrips(t *testing.T) {
	for _, path := range []string{"/", "/addnew", "/book", "/book/42"} {
		if got := ParseRoute(path).Path(); got != path {
			t.Errorf("ParseRoute(%q).Path() = %q", path, got)
		}
	}
	if got := (Route{Kind: RouteDetail, ID: books.ID("a b")}).Path(); got != "/book/a%20b" {
		t.Errorf("Path() = %q, want escaped id", got)
	}
}
