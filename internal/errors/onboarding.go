package errors

var (
	ErrOCRUnavailable = &DomainError{
		Code:    "OCR_UNAVAILABLE",
		Message: "no OCR engine could read the document",
	}
	ErrLowConfidenceExtraction = &DomainError{
		Code:    "LOW_CONFIDENCE_EXTRACTION",
		Message: "extracted fields did not meet the confidence threshold",
	}
	ErrDocumentTypeMismatch = &DomainError{
		Code:    "DOCUMENT_TYPE_MISMATCH",
		Message: "document content does not match the declared type",
	}
	ErrUnsupportedDocumentType = &DomainError{
		Code:    "UNSUPPORTED_DOCUMENT_TYPE",
		Message: "document type is not supported",
	}
	ErrInvalidStatusTransition = &DomainError{
		Code:    "INVALID_STATUS_TRANSITION",
		Message: "onboarding status transition is not allowed",
	}
	ErrExternalServiceFailure = &DomainError{
		Code:    "EXTERNAL_SERVICE_FAILURE",
		Message: "an upstream service failed to respond",
	}
	ErrConcurrentUpdate = &DomainError{
		Code:    "CONCURRENT_UPDATE",
		Message: "profile was modified by another request",
	}
)
