package export

import (
	"bytes"
	"testing"
	"time"

	"veridesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMerchantListXLSX(t *testing.T) {
	submitted := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	profiles := []models.MerchantProfile{
		{
			ID:               7,
			LegalName:        "Sharma Traders Pvt Ltd",
			BusinessType:     "private_limited",
			City:             "Pune",
			State:            "Maharashtra",
			ContactEmail:     "accounts@sharmatraders.in",
			OnboardingStatus: "validating",
			SubmittedAt:      &submitted,
		},
		{
			ID:               9,
			LegalName:        "Kvach Kirana",
			BusinessType:     "sole_proprietorship",
			OnboardingStatus: "draft",
		},
	}

	data, err := MerchantListXLSX(profiles)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(merchantSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Legal Name", rows[0][1])
	assert.Equal(t, "Stage", rows[0][7])

	assert.Equal(t, "Sharma Traders Pvt Ltd", rows[1][1])
	assert.Equal(t, "validating", rows[1][6])
	assert.Equal(t, "in_progress", rows[1][7])
	assert.Equal(t, "2025-03-14 10:30", rows[1][9])

	assert.Equal(t, "draft", rows[2][6])
	assert.Equal(t, "pending", rows[2][7])
}

func TestMerchantListXLSXEmpty(t *testing.T) {
	data, err := MerchantListXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(merchantSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
