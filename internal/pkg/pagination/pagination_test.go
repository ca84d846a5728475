package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paramsFor(t *testing.T, query string) *Params {
	t.Helper()

	var got *Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/?"+query, nil)); err != nil {
		t.Fatalf("request error: %v", err)
	}
	return got
}

func TestGetParams_Clamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query              string
		page, limit, offset int
	}{
		{"", 1, defaultLimit, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=0&limit=0", 1, defaultLimit, 0},
		{"page=-2&limit=-5", 1, defaultLimit, 0},
		{"limit=9999", 1, maxLimit, 0},
		{"page=abc&limit=xyz", 1, defaultLimit, 0},
	}

	for _, tt := range tests {
		p := paramsFor(t, tt.query)
		if p.Page != tt.page || p.Limit != tt.limit || p.Offset != tt.offset {
			t.Errorf("%q: got page=%d limit=%d offset=%d, want %d/%d/%d",
				tt.query, p.Page, p.Limit, p.Offset, tt.page, tt.limit, tt.offset)
		}
	}
}

func TestNewResponse_Meta(t *testing.T) {
	t.Parallel()

	resp := NewResponse([]int{1, 2}, &Params{Page: 2, Limit: 2, Offset: 2}, 5)

	m := resp.Meta
	if m.TotalPages != 3 {
		t.Fatalf("got %d total pages, want 3", m.TotalPages)
	}
	if !m.HasNext || !m.HasPrev {
		t.Fatalf("page 2 of 3 must have both neighbours, got next=%v prev=%v", m.HasNext, m.HasPrev)
	}

	last := NewResponse(nil, &Params{Page: 3, Limit: 2}, 5)
	if last.Meta.HasNext || !last.Meta.HasPrev {
		t.Fatalf("last page must only have a previous neighbour")
	}
}
