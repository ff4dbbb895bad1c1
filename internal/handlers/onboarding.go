package handlers

import (
	"io"
	"log"
	"path/filepath"

	"veridesk/internal/models"
	"veridesk/internal/repositories"
	"veridesk/internal/services/document"
	"veridesk/internal/services/kyc"
	"veridesk/internal/services/onboarding"
	"veridesk/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxUploadSize bounds document uploads (10 MiB)
const maxUploadSize = 10 << 20

// OnboardingHandler serves the merchant onboarding wizard.
type OnboardingHandler struct {
	onboardingService onboarding.Service
	pipeline          *document.Pipeline
	kycService        kyc.Service
	documents         repositories.DocumentRepository
	notifications     repositories.NotificationRepository
	uploadDir         string
}

func NewOnboardingHandler(
	onboardingService onboarding.Service,
	pipeline *document.Pipeline,
	kycService kyc.Service,
	documents repositories.DocumentRepository,
	notifications repositories.NotificationRepository,
	uploadDir string,
) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
		pipeline:          pipeline,
		kycService:        kycService,
		documents:         documents,
		notifications:     notifications,
		uploadDir:         uploadDir,
	}
}

// GetProfile returns the merchant's own profile
func (h *OnboardingHandler) GetProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// SaveProfile creates or updates the merchant's draft profile
func (h *OnboardingHandler) SaveProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input models.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	profile, err := h.onboardingService.SaveProfile(c.Context(), claims.UserID, &input)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(profile))
}

// Submit moves the merchant's draft into review
func (h *OnboardingHandler) Submit(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	updated, err := h.onboardingService.Submit(c.Context(), profile.ID, actorFromClaims(claims))
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, profileView(updated))
}

// UploadDocument accepts a document image, runs the extraction
// pipeline and returns the reviewed result. The response carries only
// masked identifiers.
func (h *OnboardingHandler) UploadDocument(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return utils.BadRequest(c, "document file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return utils.BadRequest(c, "document exceeds the 10MB upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.InternalError(c, "failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.InternalError(c, "failed to read upload")
	}

	storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	storedPath := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveFile(fileHeader, storedPath); err != nil {
		log.Printf("Failed to store upload for merchant %d: %v", profile.ID, err)
		return utils.InternalError(c, "failed to store upload")
	}

	doc, err := h.pipeline.Process(c.Context(), profile.ID, document.Upload{
		FileName:     fileHeader.Filename,
		FilePath:     storedPath,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Data:         data,
		DeclaredType: c.FormValue("document_type"),
	})
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Created(c, documentView(doc))
}

// ListDocuments returns the merchant's uploaded documents
func (h *OnboardingHandler) ListDocuments(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	docs, err := h.documents.GetByMerchantID(profile.ID)
	if err != nil {
		return utils.InternalError(c, "failed to fetch documents")
	}

	views := make([]fiber.Map, 0, len(docs))
	for i := range docs {
		views = append(views, documentView(&docs[i]))
	}

	return utils.Success(c, fiber.Map{"documents": views})
}

// CompleteVideoKYC records a finished video KYC session
func (h *OnboardingHandler) CompleteVideoKYC(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return utils.BadRequest(c, "Invalid request body")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	record, err := h.kycService.CompleteVideoKYC(c.Context(), profile.ID, input.Notes)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, kycView(record))
}

// CaptureLocation stores the merchant's geolocation fix
func (h *OnboardingHandler) CaptureLocation(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Latitude == 0 && input.Longitude == 0 {
		return utils.BadRequest(c, "latitude and longitude are required")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	record, err := h.kycService.CaptureLocation(c.Context(), profile.ID, input.Latitude, input.Longitude)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, kycView(record))
}

// UploadSelfie attaches a selfie capture to the merchant's KYC record
func (h *OnboardingHandler) UploadSelfie(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	fileHeader, err := c.FormFile("selfie")
	if err != nil {
		return utils.BadRequest(c, "selfie file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return utils.BadRequest(c, "selfie exceeds the 10MB upload limit")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	storedPath := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveFile(fileHeader, storedPath); err != nil {
		log.Printf("Failed to store selfie for merchant %d: %v", profile.ID, err)
		return utils.InternalError(c, "failed to store selfie")
	}

	record, err := h.kycService.AttachSelfie(c.Context(), profile.ID, storedPath)
	if err != nil {
		return respondDomainError(c, err)
	}

	return utils.Success(c, kycView(record))
}

// KYCStatus returns the merchant's KYC progress
func (h *OnboardingHandler) KYCStatus(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.onboardingService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return respondDomainError(c, err)
	}

	status, err := h.kycService.Status(c.Context(), profile.ID)
	if err != nil {
		return respondDomainError(c, err)
	}

	resp := fiber.Map{"complete": status.Complete}
	if status.Record != nil {
		resp["record"] = kycView(status.Record)
	}
	return utils.Success(c, resp)
}

// ListNotifications returns the merchant's notification inbox
func (h *OnboardingHandler) ListNotifications(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	p := utils.GetPagination(c, 1, 20)
	items, err := h.notifications.GetByUserID(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "failed to fetch notifications")
	}

	return utils.Success(c, fiber.Map{"notifications": items})
}

func actorFromClaims(claims *models.UserClaims) onboarding.Actor {
	return onboarding.Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// profileView renders a profile for API consumers, including the
// derived coarse stage alongside the canonical status.
func profileView(p *models.MerchantProfile) fiber.Map {
	return fiber.Map{
		"id":                  p.ID,
		"legal_name":          p.LegalName,
		"trade_name":          p.TradeName,
		"business_type":       p.BusinessType,
		"category_code":       p.CategoryCode,
		"gstin":               p.GSTIN,
		"address":             p.Address,
		"city":                p.City,
		"state":               p.State,
		"pincode":             p.Pincode,
		"contact_email":       p.ContactEmail,
		"contact_phone":       p.ContactPhone,
		"onboarding_status":   p.OnboardingStatus,
		"stage":               onboarding.Stage(p.OnboardingStatus),
		"rejection_reason":    p.RejectionReason,
		"bank_application_id": p.BankApplicationID,
		"submitted_at":        p.SubmittedAt,
		"approved_at":         p.ApprovedAt,
	}
}

func documentView(d *models.MerchantDocument) fiber.Map {
	return fiber.Map{
		"id":               d.ID,
		"document_type":    d.DocumentType,
		"file_name":        d.FileName,
		"engine":           d.Engine,
		"holder_name":    d.HolderName,
		"id_number":      d.IDNumber,
		"date_of_birth":  d.DateOfBirth,
		"gender":         d.Gender,
		"ocr_confidence": d.OCRConfidence,
		"confidence":     d.Confidence,
		"needs_review":   d.NeedsReview,
		"review_code":    d.ReviewCode,
		"issues":         d.Issues,
		"uploaded_at":    d.CreatedAt,
	}
}

func kycView(r *models.KYCRecord) fiber.Map {
	return fiber.Map{
		"status":              r.Status,
		"video_kyc_completed": r.VideoKYCCompleted,
		"video_kyc_at":        r.VideoKYCAt,
		"location_captured":   r.LocationCaptured,
		"selfie_attached":     r.SelfieFilePath != "",
	}
}
