package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/relief-vouchers/relief_vouchers/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	calls := 0
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))
	app.Post("/redeem", func(c *fiber.Ctx) error {
		calls++
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"transaction_id": "TX1001", "call": calls})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, cleanup
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/redeem", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	first := httptest.NewRequest(fiber.MethodPost, "/redeem", strings.NewReader("{}"))
	first.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	first.Header.Set(idempotencyKeyHeader, "redeem-42")

	resp, err := app.Test(first)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status %d got %d", fiber.StatusOK, resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	second := httptest.NewRequest(fiber.MethodPost, "/redeem", strings.NewReader("{}"))
	second.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	second.Header.Set(idempotencyKeyHeader, "redeem-42")

	resp2, err := app.Test(second)
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	replayed, err := io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatalf("read replayed body: %v", err)
	}
	resp2.Body.Close()

	// The replay must be byte-identical: the handler never ran a second time.
	if string(replayed) != string(payload) {
		t.Fatalf("expected replayed payload %s got %s", string(payload), string(replayed))
	}
}

func TestIdempotencyDistinctKeysExecuteSeparately(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	bodies := make([]string, 0, 2)
	for _, key := range []string{"k1", "k2"} {
		req := httptest.NewRequest(fiber.MethodPost, "/redeem", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, key)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %s: %v", key, err)
		}
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body %s: %v", key, err)
		}
		resp.Body.Close()
		bodies = append(bodies, string(payload))
	}

	if bodies[0] == bodies[1] {
		t.Fatalf("distinct keys should hit the handler separately, both returned %s", bodies[0])
	}
}
