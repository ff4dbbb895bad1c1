package onboarding

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"veridesk/internal/errors"
	"veridesk/internal/models"
	"veridesk/internal/repositories"
	"veridesk/internal/services/bank"
	"veridesk/internal/services/notification"
	"veridesk/internal/validation"
)

// ProfileCache serves profile reads and is invalidated after every
// transition.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID uint) (*models.MerchantProfile, error)
	CacheProfile(ctx context.Context, profile *models.MerchantProfile) error
	InvalidateProfile(ctx context.Context, userID uint) error
}

// Service drives a merchant profile through the onboarding pipeline.
type Service interface {
	GetProfile(ctx context.Context, userID uint) (*models.MerchantProfile, error)
	GetByID(ctx context.Context, merchantID uint) (*models.MerchantProfile, error)
	SaveProfile(ctx context.Context, userID uint, input *models.ProfileInput) (*models.MerchantProfile, error)

	Submit(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error)
	Validate(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error)
	SubmitToBank(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error)
	Approve(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error)
	ManualApprove(ctx context.Context, merchantID uint, actor Actor, reason string) (*models.MerchantProfile, error)
	Reject(ctx context.Context, merchantID uint, actor Actor, reason string) (*models.MerchantProfile, error)
	Delete(ctx context.Context, merchantID uint, actor Actor) error

	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.MerchantProfile, int64, error)
	ListByStatuses(ctx context.Context, statuses []string, limit, offset int) ([]models.MerchantProfile, int64, error)
	AuditTrail(ctx context.Context, merchantID uint) ([]models.StatusAudit, error)
	Stats(ctx context.Context) (map[string]int64, error)
}

type service struct {
	profiles  repositories.ProfileRepository
	documents repositories.DocumentRepository
	audits    repositories.AuditRepository
	bank      bank.Service
	notifier  notification.Service
	cache     ProfileCache
	locks     *keyedMutex
}

// NewService creates the onboarding service
func NewService(
	profiles repositories.ProfileRepository,
	documents repositories.DocumentRepository,
	audits repositories.AuditRepository,
	bankService bank.Service,
	notifier notification.Service,
	cache ProfileCache,
) Service {
	if profiles == nil {
		panic("profile repository is required")
	}
	if documents == nil {
		panic("document repository is required")
	}
	if audits == nil {
		panic("audit repository is required")
	}
	if notifier == nil {
		notifier = notification.NoopService{}
	}

	return &service{
		profiles:  profiles,
		documents: documents,
		audits:    audits,
		bank:      bankService,
		notifier:  notifier,
		cache:     cache,
		locks:     newKeyedMutex(),
	}
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*models.MerchantProfile, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetProfile(ctx, userID); err == nil {
			return cached, nil
		}
	}

	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheProfile(ctx, profile); err != nil {
			log.Printf("Failed to cache profile for user %d: %v", userID, err)
		}
	}
	return profile, nil
}

func (s *service) GetByID(ctx context.Context, merchantID uint) (*models.MerchantProfile, error) {
	return s.profiles.GetByID(merchantID)
}

// SaveProfile creates or updates the merchant's business profile.
// Edits are only allowed while the profile is still a draft.
func (s *service) SaveProfile(ctx context.Context, userID uint, input *models.ProfileInput) (*models.MerchantProfile, error) {
	v := validation.New()
	v.Profile(input)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	profile, err := s.profiles.GetByUserID(userID)
	if err != nil {
		if err != repositories.ErrProfileNotFound {
			return nil, err
		}
		profile = &models.MerchantProfile{
			UserID:           userID,
			OnboardingStatus: StatusDraft,
			Version:          1,
		}
		applyInput(profile, input)
		if err := s.profiles.Create(profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		s.invalidate(ctx, profile)
		return profile, nil
	}

	if profile.OnboardingStatus != StatusDraft {
		return nil, &TransitionError{Action: "edit", Current: profile.OnboardingStatus}
	}

	applyInput(profile, input)
	if err := s.profiles.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.invalidate(ctx, profile)
	return profile, nil
}

// Submit moves a draft into review. The profile must pass full
// field validation and carry at least RequiredDocumentCount documents.
func (s *service) Submit(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error) {
	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingStatus != StatusDraft {
		return nil, &TransitionError{Action: "submit", Current: profile.OnboardingStatus}
	}

	v := validation.New()
	v.Profile(profileInput(profile))
	v.SettlementAccount(profileInput(profile))

	docs, err := s.documents.GetByMerchantID(merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	if len(docs) < RequiredDocumentCount {
		v.AddError("documents", fmt.Sprintf("at least %d documents are required, %d uploaded", RequiredDocumentCount, len(docs)))
	}

	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	now := time.Now()
	return s.transition(ctx, profile, StatusSubmitted, actor, transitionOpts{
		notes:   "profile submitted for review",
		subject: "Application submitted",
		body:    "Your onboarding application has been submitted and is awaiting review.",
		updates: map[string]interface{}{"submitted_at": &now},
	})
}

// Validate marks a submitted profile as under support validation.
func (s *service) Validate(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error) {
	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingStatus != StatusSubmitted {
		return nil, &TransitionError{Action: "validate", Current: profile.OnboardingStatus}
	}

	return s.transition(ctx, profile, StatusValidating, actor, transitionOpts{
		notes:   "documents under validation",
		subject: "Application under review",
		body:    "Our team is validating your documents.",
	})
}

// SubmitToBank forwards a validated profile to the partner bank. The
// status only changes after the bank accepts the application; a failed
// call leaves the profile in validating so the action can be retried.
func (s *service) SubmitToBank(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error) {
	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingStatus != StatusValidating {
		return nil, &TransitionError{Action: "submit to bank", Current: profile.OnboardingStatus}
	}
	if s.bank == nil {
		return nil, errors.ErrExternalServiceFailure
	}

	application, err := s.bank.SubmitApplication(ctx, profile)
	if err != nil {
		log.Printf("Bank submission failed for merchant %d: %v", merchantID, err)
		return nil, errors.ErrExternalServiceFailure
	}

	return s.transition(ctx, profile, StatusPendingBankApproval, actor, transitionOpts{
		notes:   "application " + application.ApplicationID + " filed with bank",
		subject: "Application sent to bank",
		body:    "Your application was forwarded to the bank. Estimated processing time: " + application.EstimatedProcessingTime + ".",
		updates: map[string]interface{}{
			"bank_application_id": application.ApplicationID,
			"bank_response": models.JSON{
				"applicationId":           application.ApplicationID,
				"message":                 application.Message,
				"estimatedProcessingTime": application.EstimatedProcessingTime,
			},
		},
	})
}

// Approve records the bank's positive decision.
func (s *service) Approve(ctx context.Context, merchantID uint, actor Actor) (*models.MerchantProfile, error) {
	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingStatus != StatusPendingBankApproval {
		return nil, &TransitionError{Action: "approve", Current: profile.OnboardingStatus}
	}

	now := time.Now()
	return s.transition(ctx, profile, StatusApproved, actor, transitionOpts{
		notes:   "approved by bank review",
		subject: "Application approved",
		body:    "Congratulations, your merchant account has been approved.",
		updates: map[string]interface{}{"approved_at": &now},
	})
}

// ManualApprove bypasses the normal gating from any non-terminal
// state. It requires a reason and is flagged as an override in the
// audit trail so the bypass is never mistaken for a bank decision.
func (s *service) ManualApprove(ctx context.Context, merchantID uint, actor Actor, reason string) (*models.MerchantProfile, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Fields: map[string]string{"reason": "must not be empty"}}
	}

	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if terminal(profile.OnboardingStatus) {
		return nil, &TransitionError{Action: "manually approve", Current: profile.OnboardingStatus}
	}

	now := time.Now()
	return s.transition(ctx, profile, StatusApproved, actor, transitionOpts{
		notes:    "manual override: " + reason,
		override: true,
		subject:  "Application approved",
		body:     "Congratulations, your merchant account has been approved.",
		updates:  map[string]interface{}{"approved_at": &now},
	})
}

// Reject closes the application from any non-terminal state. The
// reason is mandatory and rejection is terminal.
func (s *service) Reject(ctx context.Context, merchantID uint, actor Actor, reason string) (*models.MerchantProfile, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Fields: map[string]string{"reason": "must not be empty"}}
	}

	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if terminal(profile.OnboardingStatus) {
		return nil, &TransitionError{Action: "reject", Current: profile.OnboardingStatus}
	}

	return s.transition(ctx, profile, StatusRejected, actor, transitionOpts{
		notes:   reason,
		subject: "Application rejected",
		body:    "Your application was rejected: " + reason,
		updates: map[string]interface{}{"rejection_reason": reason},
	})
}

// Delete removes the profile and its documents. Only drafts and
// rejected applications may be deleted; in-flight and approved records
// must keep their paper trail.
func (s *service) Delete(ctx context.Context, merchantID uint, actor Actor) error {
	unlock := s.locks.lock(merchantID)
	defer unlock()

	profile, err := s.profiles.GetByID(merchantID)
	if err != nil {
		return err
	}
	if profile.OnboardingStatus != StatusDraft && profile.OnboardingStatus != StatusRejected {
		return &TransitionError{Action: "delete", Current: profile.OnboardingStatus}
	}

	if err := s.profiles.Delete(merchantID); err != nil {
		return err
	}

	s.audit(profile, "deleted", actor, "profile deleted", false)
	s.invalidate(ctx, profile)
	return nil
}

func (s *service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.MerchantProfile, int64, error) {
	return s.profiles.ListByStatus(status, limit, offset)
}

func (s *service) ListByStatuses(ctx context.Context, statuses []string, limit, offset int) ([]models.MerchantProfile, int64, error) {
	return s.profiles.ListByStatuses(statuses, limit, offset)
}

func (s *service) AuditTrail(ctx context.Context, merchantID uint) ([]models.StatusAudit, error) {
	return s.audits.GetByMerchantID(merchantID)
}

func (s *service) Stats(ctx context.Context) (map[string]int64, error) {
	return s.profiles.CountByStatus()
}

type transitionOpts struct {
	notes    string
	override bool
	subject  string
	body     string
	updates  map[string]interface{}
}

// transition commits a status change through a versioned update,
// records the audit row and notifies the merchant. The caller holds
// the per-merchant lock and has already checked the guard.
func (s *service) transition(ctx context.Context, profile *models.MerchantProfile, newStatus string, actor Actor, opts transitionOpts) (*models.MerchantProfile, error) {
	updates := map[string]interface{}{"onboarding_status": newStatus}
	for k, v := range opts.updates {
		updates[k] = v
	}

	if err := s.profiles.UpdateStatus(profile.ID, profile.Version, updates); err != nil {
		if err == repositories.ErrVersionConflict {
			return nil, errors.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.audit(profile, newStatus, actor, opts.notes, opts.override)
	s.invalidate(ctx, profile)

	if err := s.notifier.NotifyStatusChange(ctx, notification.StatusChangePayload{
		UserID:     profile.UserID,
		MerchantID: profile.ID,
		Subject:    opts.subject,
		Body:       opts.body,
	}); err != nil {
		log.Printf("Failed to notify merchant %d: %v", profile.ID, err)
	}

	updated, err := s.profiles.GetByID(profile.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// audit appends the trail entry; an audit write failure is logged, not
// surfaced, since the transition itself already committed.
func (s *service) audit(profile *models.MerchantProfile, newStatus string, actor Actor, notes string, override bool) {
	entry := &models.StatusAudit{
		MerchantID:     profile.ID,
		PreviousStatus: profile.OnboardingStatus,
		NewStatus:      newStatus,
		Actor:          actor.Email,
		ActorRole:      actor.Role,
		Notes:          notes,
		Override:       override,
	}
	if err := s.audits.Create(entry); err != nil {
		log.Printf("Failed to write audit entry for merchant %d: %v", profile.ID, err)
	}
}

func (s *service) invalidate(ctx context.Context, profile *models.MerchantProfile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProfile(ctx, profile.UserID); err != nil {
		log.Printf("Failed to invalidate profile cache for user %d: %v", profile.UserID, err)
	}
}

func applyInput(profile *models.MerchantProfile, in *models.ProfileInput) {
	profile.LegalName = in.LegalName
	profile.TradeName = in.TradeName
	profile.BusinessType = in.BusinessType
	profile.CategoryCode = in.CategoryCode
	profile.GSTIN = in.GSTIN
	profile.Address = in.Address
	profile.City = in.City
	profile.State = in.State
	profile.Pincode = in.Pincode
	profile.ContactEmail = in.ContactEmail
	profile.ContactPhone = in.ContactPhone
	profile.AccountNumber = in.AccountNumber
	profile.IFSC = in.IFSC
	profile.AccountHolder = in.AccountHolder
}

func profileInput(profile *models.MerchantProfile) *models.ProfileInput {
	return &models.ProfileInput{
		LegalName:     profile.LegalName,
		TradeName:     profile.TradeName,
		BusinessType:  profile.BusinessType,
		CategoryCode:  profile.CategoryCode,
		GSTIN:         profile.GSTIN,
		Address:       profile.Address,
		City:          profile.City,
		State:         profile.State,
		Pincode:       profile.Pincode,
		ContactEmail:  profile.ContactEmail,
		ContactPhone:  profile.ContactPhone,
		AccountNumber: profile.AccountNumber,
		IFSC:          profile.IFSC,
		AccountHolder: profile.AccountHolder,
	}
}
