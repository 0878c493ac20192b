package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/yourorg/miagenda/internal/agenda"
)

func parseTaskOptions(t *testing.T, target string) agenda.TaskListOptions {
	t.Helper()
	app := fiber.New()
	var got agenda.TaskListOptions
	app.Get("/", func(c *fiber.Ctx) error {
		got = taskListOptions(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	return got
}

func parseEventOptions(t *testing.T, target string) agenda.EventListOptions {
	t.Helper()
	app := fiber.New()
	var got agenda.EventListOptions
	app.Get("/", func(c *fiber.Ctx) error {
		got = eventListOptions(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	return got
}

func TestTaskListOptionsDefaults(t *testing.T) {
	opts := parseTaskOptions(t, "/")
	if opts.Completed != nil {
		t.Errorf("Expected nil Completed without param, got %v", *opts.Completed)
	}
	if opts.Limit != nil {
		t.Errorf("Expected nil Limit without param, got %v", *opts.Limit)
	}
	if opts.SortBy != "orden" || opts.SortOrder != "asc" {
		t.Errorf("Unexpected sort defaults: %s %s", opts.SortBy, opts.SortOrder)
	}
	if opts.Offset != 0 {
		t.Errorf("Expected offset 0, got %d", opts.Offset)
	}
}

func TestTaskListOptionsCompletedPresence(t *testing.T) {
	// El parámetro cuenta por presencia: solo "true" filtra completadas,
	// cualquier otro valor (incluido vacío) filtra pendientes
	cases := []struct {
		target string
		want   bool
	}{
		{"/?completed=true", true},
		{"/?completed=false", false},
		{"/?completed=", false},
		{"/?completed=1", false},
	}
	for _, tc := range cases {
		opts := parseTaskOptions(t, tc.target)
		if opts.Completed == nil {
			t.Errorf("%s: expected non-nil Completed", tc.target)
			continue
		}
		if *opts.Completed != tc.want {
			t.Errorf("%s: expected Completed=%v, got %v", tc.target, tc.want, *opts.Completed)
		}
	}
}

func TestTaskListOptionsLimitCoercion(t *testing.T) {
	opts := parseTaskOptions(t, "/?limit=5&offset=10")
	if opts.Limit == nil || *opts.Limit != 5 {
		t.Errorf("Expected limit 5, got %v", opts.Limit)
	}
	if opts.Offset != 10 {
		t.Errorf("Expected offset 10, got %d", opts.Offset)
	}

	// limit no numérico o vacío se coacciona a 0 (página vacía), no se ignora
	for _, target := range []string{"/?limit=abc", "/?limit="} {
		opts = parseTaskOptions(t, target)
		if opts.Limit == nil {
			t.Errorf("%s: expected non-nil Limit", target)
			continue
		}
		if *opts.Limit != 0 {
			t.Errorf("%s: expected limit 0, got %d", target, *opts.Limit)
		}
	}
}

func TestEventListOptions(t *testing.T) {
	opts := parseEventOptions(t, "/?search=reunión&sortBy=fecha_inicio&sortOrder=desc&limit=5&offset=5")
	if opts.Search != "reunión" {
		t.Errorf("Unexpected search: %s", opts.Search)
	}
	if opts.SortBy != "fecha_inicio" || opts.SortOrder != "desc" {
		t.Errorf("Unexpected sort: %s %s", opts.SortBy, opts.SortOrder)
	}
	if opts.Limit == nil || *opts.Limit != 5 || opts.Offset != 5 {
		t.Errorf("Unexpected pagination: %v %d", opts.Limit, opts.Offset)
	}

	opts = parseEventOptions(t, "/?limit=xyz")
	if opts.Limit == nil || *opts.Limit != 0 {
		t.Errorf("Expected coerced limit 0, got %v", opts.Limit)
	}

	opts = parseEventOptions(t, "/")
	if opts.Limit != nil {
		t.Errorf("Expected nil Limit without param, got %v", *opts.Limit)
	}
}
