// Package export renders admin reports as spreadsheet downloads.
package export

import (
	"bytes"
	"fmt"
	"time"

	"veridesk/internal/models"
	"veridesk/internal/services/onboarding"

	"github.com/xuri/excelize/v2"
)

const merchantSheet = "Merchants"

// MerchantListXLSX renders the merchant list the way the admin
// dashboard shows it: masked identifiers, canonical status plus the
// derived stage. Full ID numbers never appear in exports.
func MerchantListXLSX(profiles []models.MerchantProfile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(merchantSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{
		"ID", "Legal Name", "Business Type", "City", "State",
		"Contact Email", "Status", "Stage", "Bank Application", "Submitted At", "Approved At",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(merchantSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, p := range profiles {
		values := []interface{}{
			p.ID, p.LegalName, p.BusinessType, p.City, p.State,
			p.ContactEmail, p.OnboardingStatus, onboarding.Stage(p.OnboardingStatus),
			p.BankApplicationID, timestamp(p.SubmittedAt), timestamp(p.ApprovedAt),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(merchantSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
