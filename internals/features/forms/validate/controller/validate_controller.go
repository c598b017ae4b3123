package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	jobappdto "suryaghar_backend/internals/features/jobs/job_applications/dto"
	jobdto "suryaghar_backend/internals/features/jobs/jobs/dto"
	applicantdto "suryaghar_backend/internals/features/recruitment/applicants/dto"
	helper "suryaghar_backend/internals/helpers"
	"suryaghar_backend/internals/helpers/validation"
)

type checker func(get func(string) string, present map[string]bool) validation.Errors

// Forms maps the :form route parameter to its rules.
var Forms = map[string]checker{
	"applicant": func(get func(string) string, present map[string]bool) validation.Errors {
		form, parseErrs := applicantdto.ApplicantFormFrom(get)
		errs := validation.CheckPresent(form, applicantdto.ApplicantMessages, present)
		for field, msgs := range parseErrs {
			if !present[field] {
				continue
			}
			if errs == nil {
				errs = validation.Errors{}
			}
			// a parse failure replaces the generic "required" for that field
			errs[field] = msgs
		}
		return errs
	},
	"job": func(get func(string) string, present map[string]bool) validation.Errors {
		return validation.CheckPresent(jobdto.JobFormFrom(get), jobdto.JobMessages, present)
	},
	"job_application": func(get func(string) string, present map[string]bool) validation.Errors {
		return validation.CheckPresent(jobappdto.ApplyFormFrom(get), jobappdto.ApplyMessages, present)
	},
}

// ✅ POST /api/public/validate/:form
// Checks only the fields present in the body, so the forms can validate one
// field at a time as the visitor leaves it.
func Validate(c *fiber.Ctx) error {
	check, ok := Forms[strings.ToLower(c.Params("form"))]
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown form")
	}
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	present := make(map[string]bool, len(body))
	for k := range body {
		present[k] = true
	}
	if errs := check(helper.MapGetter(body), present); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"valid": true})
}
