package handlers

import (
	"fmt"
	"time"

	"veridesk/internal/models"
	"veridesk/internal/services/export"
	"veridesk/internal/services/onboarding"
	"veridesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office dashboard. Admins can drive any
// transition, including the manual approval override.
type AdminHandler struct {
	onboardingService onboarding.Service
}

func NewAdminHandler(onboardingService onboarding.Service) *AdminHandler {
	return &AdminHandler{
		onboardingService: onboardingService,
	}
}

// ListMerchants returns a paginated merchant list, optionally filtered
// by onboarding status
func (h *AdminHandler) ListMerchants(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 20)
	status := c.Query("status")

	profiles, total, err := h.onboardingService.ListByStatus(c.Context(), status, p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "failed to fetch merchants")
	}
	p.SetTotal(total)

	views := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		views = append(views, profileView(&profiles[i]))
	}

	return utils.Success(c, utils.NewPaginatedResponse(views, p))
}

// GetMerchant returns one merchant profile
func (h *AdminHandler) GetMerchant(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	profile, err := h.onboardingService.GetByID(c.Context(), merchantID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// GetAuditTrail returns the merchant's full status history
func (h *AdminHandler) GetAuditTrail(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	audits, err := h.onboardingService.AuditTrail(c.Context(), merchantID)
	if err != nil {
		return utils.InternalError(c, "failed to fetch audit trail")
	}

	return utils.Success(c, fiber.Map{"history": auditViews(audits)})
}

// GetStats returns merchant counts per onboarding status
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	counts, err := h.onboardingService.Stats(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to compute stats")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return utils.Success(c, fiber.Map{
		"total":     total,
		"by_status": counts,
	})
}

// ManualApprove lets an admin override the bank step. A reason is
// mandatory and the audit row is flagged as an override.
func (h *AdminHandler) ManualApprove(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	profile, err := h.onboardingService.ManualApprove(c.Context(), merchantID, actorFromClaims(claims), input.Reason)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// DeleteMerchant removes a draft or rejected application
func (h *AdminHandler) DeleteMerchant(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	if err := h.onboardingService.Delete(c.Context(), merchantID, actorFromClaims(claims)); err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, fiber.Map{"message": "merchant deleted"})
}

// ExportMerchants streams the merchant list as an XLSX workbook
func (h *AdminHandler) ExportMerchants(c *fiber.Ctx) error {
	status := c.Query("status")

	profiles, _, err := h.onboardingService.ListByStatus(c.Context(), status, 10000, 0)
	if err != nil {
		return utils.InternalError(c, "failed to fetch merchants")
	}

	data, err := export.MerchantListXLSX(profiles)
	if err != nil {
		return utils.InternalError(c, "failed to build export")
	}

	fileName := fmt.Sprintf("merchants-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(data)
}
