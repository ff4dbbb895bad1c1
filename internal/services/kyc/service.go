// Package kyc tracks the in-person verification steps a merchant
// completes alongside document upload: a video call and a captured
// business location. KYC is complete only when both are done; there is
// no partial credit.
package kyc

import (
	"context"
	"fmt"
	"time"

	"veridesk/internal/models"
	"veridesk/internal/repositories"
)

// Status is the KYC view returned to the portals.
type Status struct {
	Record   *models.KYCRecord `json:"record"`
	Complete bool              `json:"complete"`
}

// Service manages per-merchant KYC records.
type Service interface {
	CompleteVideoKYC(ctx context.Context, merchantID uint, notes string) (*models.KYCRecord, error)
	CaptureLocation(ctx context.Context, merchantID uint, lat, lng float64) (*models.KYCRecord, error)
	AttachSelfie(ctx context.Context, merchantID uint, filePath string) (*models.KYCRecord, error)
	Status(ctx context.Context, merchantID uint) (*Status, error)
}

type service struct {
	records repositories.KYCRepository
}

// NewService creates the KYC service
func NewService(records repositories.KYCRepository) Service {
	if records == nil {
		panic("kyc repository is required")
	}
	return &service{records: records}
}

func (s *service) CompleteVideoKYC(ctx context.Context, merchantID uint, notes string) (*models.KYCRecord, error) {
	record, err := s.getOrCreate(merchantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.VideoKYCCompleted = true
	record.VideoKYCAt = &now
	if notes != "" {
		record.AgentNotes = notes
	}
	s.refreshStatus(record)

	if err := s.records.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update kyc record: %w", err)
	}
	return record, nil
}

func (s *service) CaptureLocation(ctx context.Context, merchantID uint, lat, lng float64) (*models.KYCRecord, error) {
	record, err := s.getOrCreate(merchantID)
	if err != nil {
		return nil, err
	}

	record.LocationCaptured = true
	record.Latitude = lat
	record.Longitude = lng
	s.refreshStatus(record)

	if err := s.records.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update kyc record: %w", err)
	}
	return record, nil
}

func (s *service) AttachSelfie(ctx context.Context, merchantID uint, filePath string) (*models.KYCRecord, error) {
	record, err := s.getOrCreate(merchantID)
	if err != nil {
		return nil, err
	}

	record.SelfieFilePath = filePath

	if err := s.records.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update kyc record: %w", err)
	}
	return record, nil
}

func (s *service) Status(ctx context.Context, merchantID uint) (*Status, error) {
	record, err := s.records.GetByMerchantID(merchantID)
	if err != nil {
		if err == repositories.ErrKYCNotFound {
			return &Status{Record: &models.KYCRecord{MerchantID: merchantID, Status: "pending"}}, nil
		}
		return nil, err
	}

	return &Status{
		Record:   record,
		Complete: complete(record),
	}, nil
}

func (s *service) getOrCreate(merchantID uint) (*models.KYCRecord, error) {
	record, err := s.records.GetByMerchantID(merchantID)
	if err == nil {
		return record, nil
	}
	if err != repositories.ErrKYCNotFound {
		return nil, err
	}

	record = &models.KYCRecord{MerchantID: merchantID, Status: "pending"}
	if err := s.records.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create kyc record: %w", err)
	}
	return record, nil
}

func (s *service) refreshStatus(record *models.KYCRecord) {
	if complete(record) {
		record.Status = "completed"
	} else {
		record.Status = "in_progress"
	}
}

// complete is the conjunction of the two verification steps.
func complete(record *models.KYCRecord) bool {
	return record.VideoKYCCompleted && record.LocationCaptured
}
