package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func TestRegisterRateLimit(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Post("/register", RegisterRateLimit(cache, 2), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	send := func() int {
		req := httptest.NewRequest(fiber.MethodPost, "/register", strings.NewReader(`{"email":"john@example.com"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		return resp.StatusCode
	}

	if code := send(); code != fiber.StatusCreated {
		t.Fatalf("first attempt: %d", code)
	}
	if code := send(); code != fiber.StatusCreated {
		t.Fatalf("second attempt: %d", code)
	}
	if code := send(); code != fiber.StatusTooManyRequests {
		t.Fatalf("third attempt should be limited, got %d", code)
	}
}

func TestRegisterRateLimitWithoutCache(t *testing.T) {
	app := fiber.New()
	app.Post("/register", RegisterRateLimit(nil, 1), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/register", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("attempt %d without cache: %d", i, resp.StatusCode)
		}
	}
}
