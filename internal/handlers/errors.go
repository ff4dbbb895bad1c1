// Package handlers exposes the HTTP surface: merchant onboarding
// wizard, support and bank review portals, and the admin dashboard.
package handlers

import (
	stderrors "errors"

	"veridesk/internal/errors"
	"veridesk/internal/repositories"
	"veridesk/internal/services/document"
	"veridesk/internal/services/onboarding"
	"veridesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps service errors onto HTTP responses. Typed
// errors keep their taxonomy code in the body so the front-ends can
// branch without string matching.
func respondDomainError(c *fiber.Ctx, err error) error {
	var vErr *onboarding.ValidationError
	if stderrors.As(err, &vErr) {
		return utils.ValidationFailed(c, vErr.Fields)
	}

	var tErr *onboarding.TransitionError
	if stderrors.As(err, &tErr) {
		return utils.Respond(c, fiber.StatusConflict, fiber.Map{
			"error":          tErr.Error(),
			"code":           errors.ErrInvalidStatusTransition.Code,
			"current_status": tErr.Current,
		})
	}

	var dErr *errors.DomainError
	if stderrors.As(err, &dErr) {
		status := fiber.StatusBadRequest
		switch dErr {
		case errors.ErrOCRUnavailable, errors.ErrExternalServiceFailure:
			status = fiber.StatusBadGateway
		case errors.ErrConcurrentUpdate:
			status = fiber.StatusConflict
		}
		return utils.Respond(c, status, fiber.Map{
			"error": dErr.Message,
			"code":  dErr.Code,
		})
	}

	switch {
	case stderrors.Is(err, document.ErrUnsupportedType):
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{
			"error": errors.ErrUnsupportedDocumentType.Message,
			"code":  errors.ErrUnsupportedDocumentType.Code,
		})
	case stderrors.Is(err, repositories.ErrProfileNotFound),
		stderrors.Is(err, repositories.ErrDocumentNotFound),
		stderrors.Is(err, repositories.ErrKYCNotFound):
		return utils.NotFound(c, err.Error())
	}

	return utils.InternalError(c, "internal error")
}
