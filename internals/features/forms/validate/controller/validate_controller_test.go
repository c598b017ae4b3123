package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, form, body string) (int, map[string][]string) {
	t.Helper()
	app := fiber.New()
	app.Post("/api/public/validate/:form", Validate)
	req := httptest.NewRequest("POST", "/api/public/validate/"+form, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var env struct {
		Errors map[string][]string `json:"errors"`
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env.Errors
}

func TestOnlyPresentFieldsAreChecked(t *testing.T) {
	code, errs := post(t, "applicant", `{"mobile":"12345"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "mobile")

	code, _ = post(t, "applicant", `{"mobile":"9876543210","state":"Kerala"}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestEmptyRequiredFieldReported(t *testing.T) {
	code, errs := post(t, "applicant", `{"full_name":""}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Name is required"}, errs["full_name"])
}

func TestExperienceParseError(t *testing.T) {
	code, errs := post(t, "applicant", `{"experience":"two"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Experience must be a whole number"}, errs["experience"])

	code, _ = post(t, "applicant", `{"experience":3}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestJobAndApplicationForms(t *testing.T) {
	code, errs := post(t, "job", `{"whatsapp":"555"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Invalid WhatsApp number"}, errs["whatsapp"])

	code, errs = post(t, "job_application", `{"full_name":"R4vi"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Name can only contain letters and spaces"}, errs["full_name"])
}

func TestUnknownFormAndBadBody(t *testing.T) {
	code, _ := post(t, "newsletter", `{}`)
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = post(t, "job", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
