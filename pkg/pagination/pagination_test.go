package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextFor(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
	}{
		{"", DefaultLimit, 0},
		{"limit=5&offset=10", 5, 10},
		{"limit=500", MaxLimit, 0},
		{"limit=-1&offset=-3", DefaultLimit, 0},
		{"limit=abc", DefaultLimit, 0},
	}

	for _, tt := range tests {
		p := FromContext(contextFor(tt.query))
		if p.Limit != tt.limit || p.Offset != tt.offset {
			t.Errorf("%q: expected limit=%d offset=%d, got %+v", tt.query, tt.limit, tt.offset, p)
		}
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	if !NewResponse(nil, 50, 20, 0).HasMore {
		t.Error("expected has_more with 30 results remaining")
	}
	if NewResponse(nil, 20, 20, 0).HasMore {
		t.Error("expected no more results")
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := Page(items, Params{Limit: 2, Offset: 1}); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("unexpected middle page: %v", got)
	}
	if got := Page(items, Params{Limit: 10, Offset: 3}); len(got) != 2 || got[1] != 5 {
		t.Errorf("unexpected tail page: %v", got)
	}
	if got := Page(items, Params{Limit: 10, Offset: 9}); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil page, got %v", got)
	}
}

func TestPaginate(t *testing.T) {
	resp := Paginate([]string{"a", "b", "c"}, Params{Limit: 2, Offset: 0})
	if resp.Total != 3 || !resp.HasMore {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if data, ok := resp.Data.([]string); !ok || len(data) != 2 {
		t.Errorf("unexpected data: %v", resp.Data)
	}
}
