package helper

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FormGetter adapts c.FormValue for the form constructors in the dto packages.
func FormGetter(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.FormValue(key) }
}

// MapGetter reads form values out of a decoded JSON body.
func MapGetter(m map[string]any) func(string) string {
	return func(key string) string {
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			if t == float64(int64(t)) {
				return fmt.Sprintf("%d", int64(t))
			}
			return fmt.Sprint(t)
		default:
			return fmt.Sprint(t)
		}
	}
}

// OptionalFormFile returns nil when the part is absent.
func OptionalFormFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

// ParseDateQuery reads ?key=YYYY-MM-DD. With endOfDay the result is the start
// of the following day, for use as an exclusive upper bound.
func ParseDateQuery(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key+" date, expected YYYY-MM-DD")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
