package handlers

import (
	"strconv"

	"veridesk/internal/models"
	"veridesk/internal/repositories"
	"veridesk/internal/services/kyc"
	"veridesk/internal/services/onboarding"
	"veridesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler serves the support and bank reviewer portals. Support
// reviewers check submitted applications and push them to the bank;
// bank reviewers give the final verdict.
type ReviewHandler struct {
	onboardingService onboarding.Service
	kycService        kyc.Service
	documents         repositories.DocumentRepository
}

func NewReviewHandler(
	onboardingService onboarding.Service,
	kycService kyc.Service,
	documents repositories.DocumentRepository,
) *ReviewHandler {
	return &ReviewHandler{
		onboardingService: onboardingService,
		kycService:        kycService,
		documents:         documents,
	}
}

func merchantIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// ListSupportQueue returns applications awaiting support review
func (h *ReviewHandler) ListSupportQueue(c *fiber.Ctx) error {
	return h.listQueue(c, []string{onboarding.StatusSubmitted, onboarding.StatusValidating})
}

// ListBankQueue returns applications awaiting the bank's verdict
func (h *ReviewHandler) ListBankQueue(c *fiber.Ctx) error {
	return h.listQueue(c, []string{onboarding.StatusPendingBankApproval})
}

func (h *ReviewHandler) listQueue(c *fiber.Ctx, statuses []string) error {
	p := utils.GetPagination(c, 1, 20)

	profiles, total, err := h.onboardingService.ListByStatuses(c.Context(), statuses, p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "failed to fetch applications")
	}
	p.SetTotal(total)

	views := make([]fiber.Map, 0, len(profiles))
	for i := range profiles {
		views = append(views, profileView(&profiles[i]))
	}

	return utils.Success(c, utils.NewPaginatedResponse(views, p))
}

// GetApplication returns the full review detail for one merchant:
// profile, extracted documents with their issues, KYC progress and
// the status history.
func (h *ReviewHandler) GetApplication(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	profile, err := h.onboardingService.GetByID(c.Context(), merchantID)
	if err != nil {
		return respondDomainError(c, err)
	}

	docs, err := h.documents.GetByMerchantID(merchantID)
	if err != nil {
		return utils.InternalError(c, "failed to fetch documents")
	}
	docViews := make([]fiber.Map, 0, len(docs))
	for i := range docs {
		docViews = append(docViews, documentView(&docs[i]))
	}

	kycStatus, err := h.kycService.Status(c.Context(), merchantID)
	if err != nil {
		return respondDomainError(c, err)
	}
	kycResp := fiber.Map{"complete": kycStatus.Complete}
	if kycStatus.Record != nil {
		kycResp["record"] = kycView(kycStatus.Record)
	}

	audits, err := h.onboardingService.AuditTrail(c.Context(), merchantID)
	if err != nil {
		return utils.InternalError(c, "failed to fetch audit trail")
	}

	return utils.Success(c, fiber.Map{
		"profile":   profileView(profile),
		"documents": docViews,
		"kyc":       kycResp,
		"history":   auditViews(audits),
	})
}

// ValidateApplication marks a submitted application as validated and
// ready for bank submission
func (h *ReviewHandler) ValidateApplication(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.Validate(c.Context(), merchantID, actorFromClaims(claims))
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// ForwardToBank submits a validated application to the partner bank
func (h *ReviewHandler) ForwardToBank(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.SubmitToBank(c.Context(), merchantID, actorFromClaims(claims))
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// ApproveApplication records the bank's approval
func (h *ReviewHandler) ApproveApplication(c *fiber.Ctx) error {
	merchantID, err := merchantIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid merchant id")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.Approve(c.Context(), merchantID, actorFromClaims(claims))
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// RejectApplication records a rejection with its mandatory reason
func (h *ReviewHandler) RejectApplication(c *fiber.Ctx) error {
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

	profile, err := h.onboardingService.Reject(c.Context(), merchantID, actorFromClaims(claims), input.Reason)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

func auditViews(audits []models.StatusAudit) []fiber.Map {
	views := make([]fiber.Map, 0, len(audits))
	for _, a := range audits {
		views = append(views, fiber.Map{
			"previous_status": a.PreviousStatus,
			"new_status":      a.NewStatus,
			"actor":           a.Actor,
			"actor_role":      a.ActorRole,
			"notes":           a.Notes,
			"override":        a.Override,
			"at":              a.CreatedAt,
		})
	}
	return views
}
