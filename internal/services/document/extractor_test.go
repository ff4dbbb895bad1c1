package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ExtractFields_PAN(t *testing.T) {
	svc := NewService(DefaultPenalties)

	tests := []struct {
		name           string
		rawText        string
		wantConfidence float64
		wantFields     map[string]string
		wantIssues     int
	}{
		{
			name:           "clean pan card scores full confidence",
			rawText:        "INCOME TAX DEPARTMENT GOVT. OF INDIA\nABCDE1234F\nName RAHUL KUMAR",
			wantConfidence: 100,
			wantFields: map[string]string{
				FieldPANNumber: "ABCDE1234F",
				FieldName:      "Rahul Kumar",
			},
		},
		{
			name:           "missing pan number",
			rawText:        "INCOME TAX DEPARTMENT\nName RAHUL KUMAR",
			wantConfidence: 70,
			wantFields:     map[string]string{FieldName: "Rahul Kumar"},
			wantIssues:     1,
		},
		{
			name:           "malformed pan number",
			rawText:        "INCOME TAX DEPARTMENT\nABCDE12345\nName RAHUL KUMAR",
			wantConfidence: 80,
			wantFields:     map[string]string{FieldName: "Rahul Kumar"},
			wantIssues:     1,
		},
		{
			name:           "missing header",
			rawText:        "ABCDE1234F\nName RAHUL KUMAR",
			wantConfidence: 90,
			wantFields: map[string]string{
				FieldPANNumber: "ABCDE1234F",
				FieldName:      "Rahul Kumar",
			},
			wantIssues: 1,
		},
		{
			name:           "nothing recognizable",
			rawText:        "zz",
			wantConfidence: 45,
			wantFields:     map[string]string{},
			wantIssues:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := svc.ExtractFields(tt.rawText, TypePANCard)

			require.NoError(t, err)
			assert.Equal(t, tt.wantConfidence, ex.Confidence)
			assert.Equal(t, tt.wantFields, ex.Fields)
			assert.Len(t, ex.Issues, tt.wantIssues)
		})
	}
}

func TestService_ExtractFields_Aadhaar(t *testing.T) {
	svc := NewService(DefaultPenalties)

	t.Run("clean aadhaar card", func(t *testing.T) {
		ex, err := svc.ExtractFields(
			"GOVERNMENT OF INDIA\nName: Priya Sharma\nDOB: 12/04/1991\nFemale\n2345 1234 5678", TypeAadhaarCard)

		require.NoError(t, err)
		assert.Equal(t, float64(100), ex.Confidence)
		assert.Equal(t, "****-****-5678", ex.Fields[FieldAadhaarMasked])
		assert.Equal(t, "Priya Sharma", ex.Fields[FieldName])
		assert.Equal(t, "12/04/1991", ex.Fields[FieldDateOfBirth])
		assert.Equal(t, "female", ex.Fields[FieldGender])
		assert.Equal(t, "234512345678", ex.FullID)
	})

	t.Run("ungrouped number without header scores 90", func(t *testing.T) {
		ex, err := svc.ExtractFields("Name: Rahul Kumar\n234512345678", TypeAadhaarCard)

		require.NoError(t, err)
		assert.Equal(t, float64(90), ex.Confidence)
		assert.Equal(t, "****-****-5678", ex.Fields[FieldAadhaarMasked])
		assert.Contains(t, ex.Issues[0], "header")
	})

	t.Run("dash grouped number is normalized", func(t *testing.T) {
		ex, err := svc.ExtractFields(
			"GOVERNMENT OF INDIA\nName: Priya Sharma\n2345-1234-5678", TypeAadhaarCard)

		require.NoError(t, err)
		assert.Equal(t, "234512345678", ex.FullID)
		assert.Equal(t, "****-****-5678", ex.Fields[FieldAadhaarMasked])
	})

	t.Run("number starting below 2 is malformed", func(t *testing.T) {
		ex, err := svc.ExtractFields(
			"GOVERNMENT OF INDIA\nName: Priya Sharma\n1234 5678 9012", TypeAadhaarCard)

		require.NoError(t, err)
		assert.Equal(t, float64(80), ex.Confidence)
		assert.NotContains(t, ex.Fields, FieldAadhaarMasked)
	})

	t.Run("full number never appears in fields", func(t *testing.T) {
		ex, err := svc.ExtractFields(
			"GOVERNMENT OF INDIA\nName: Priya Sharma\n2345 1234 5678", TypeAadhaarCard)

		require.NoError(t, err)
		for field, value := range ex.Fields {
			assert.NotContains(t, value, "234512345678", "field %s leaks the full number", field)
			assert.NotContains(t, value, "2345 1234 5678", "field %s leaks the full number", field)
		}
	})

	t.Run("demographics are best effort", func(t *testing.T) {
		ex, err := svc.ExtractFields(
			"GOVERNMENT OF INDIA\nName: Priya Sharma\n2345 1234 5678", TypeAadhaarCard)

		require.NoError(t, err)
		assert.Equal(t, float64(100), ex.Confidence)
		assert.NotContains(t, ex.Fields, FieldDateOfBirth)
		assert.NotContains(t, ex.Fields, FieldGender)
	})
}

func TestService_ExtractFields_UnsupportedType(t *testing.T) {
	svc := NewService(DefaultPenalties)

	_, err := svc.ExtractFields("anything", TypeBusinessProof)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.ExtractFields("anything", "voter_id")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestService_Extractable(t *testing.T) {
	svc := NewService(DefaultPenalties)

	assert.True(t, svc.Extractable(TypePANCard))
	assert.True(t, svc.Extractable(TypeAadhaarCard))
	assert.False(t, svc.Extractable(TypeBankStatement))
	assert.False(t, svc.Extractable(TypeBusinessProof))
}

func TestExtraction_ConfidenceFloorsAtZero(t *testing.T) {
	// Heavier penalties than the defaults exercise the floor.
	svc := NewService(Penalties{MissingID: 60, MalformedID: 40, MissingHeader: 30, ImplausibleName: 20})

	ex, err := svc.ExtractFields("zz", TypePANCard)

	require.NoError(t, err)
	assert.Equal(t, float64(0), ex.Confidence)
}

func TestMaskAadhaar(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{"plain digits", "234512345678", "****-****-5678"},
		{"space grouped", "2345 1234 5678", "****-****-5678"},
		{"dash grouped", "2345-1234-5678", "****-****-5678"},
		{"too short", "123", "****-****-****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskAadhaar(tt.number))
		})
	}
}
