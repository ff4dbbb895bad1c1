package document

// Known document types. Declaration order is the classifier scan order.
const (
	TypePANCard       = "pan_card"
	TypeAadhaarCard   = "aadhaar_card"
	TypeBusinessProof = "business_proof"
	TypeBankStatement = "bank_statement"
)

// KnownType reports whether uploaders may declare the type.
func KnownType(documentType string) bool {
	switch documentType {
	case TypePANCard, TypeAadhaarCard, TypeBusinessProof, TypeBankStatement:
		return true
	}
	return false
}

// Field names used in extraction results
const (
	FieldPANNumber     = "panNumber"
	FieldAadhaarMasked = "aadhaarNumberMasked"
	FieldName          = "extractedName"
	FieldDateOfBirth   = "dateOfBirth"
	FieldGender        = "gender"
)

// Extraction is the structured output for one document.
type Extraction struct {
	Fields     map[string]string `json:"fields"`
	Confidence float64           `json:"confidence"`
	Issues     []string          `json:"issues"`

	// FullID carries the unmasked ID number for verification calls.
	// It is transient and must never be persisted or logged.
	FullID string `json:"-"`
}

// Penalties weight the validation checks applied after extraction.
// The values are policy, not physical law; they are kept configurable
// so review thresholds can be tuned without code changes.
type Penalties struct {
	MissingID       float64
	MalformedID     float64
	MissingHeader   float64
	ImplausibleName float64
}

// DefaultPenalties match the review thresholds the portals were tuned
// against.
var DefaultPenalties = Penalties{
	MissingID:       30,
	MalformedID:     20,
	MissingHeader:   10,
	ImplausibleName: 15,
}

// Service defines the document analysis interface
type Service interface {
	Classify(rawText string) (string, bool)
	ExtractFields(rawText, documentType string) (*Extraction, error)
	Extractable(documentType string) bool
}
