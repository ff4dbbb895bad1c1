package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"veridesk/internal/errors"
	"veridesk/internal/models"
	"veridesk/internal/repositories"
	"veridesk/internal/services/ocr"
)

// ReviewFloor is the combined confidence below which a document is
// flagged for human review instead of flowing onward automatically.
const ReviewFloor = 60.0

// TypeUnclassified is recorded when neither the uploader nor the
// classifier could name the document type.
const TypeUnclassified = "unclassified"

// Upload describes one document image handed to the pipeline.
type Upload struct {
	FileName     string
	FilePath     string
	ContentType  string
	SizeBytes    int64
	Data         []byte
	DeclaredType string // empty means classify from the transcript
}

// Pipeline runs OCR, classification and field extraction for an upload
// and persists the reviewed result. Only masked ID numbers reach the
// document record; the raw transcript is discarded after extraction.
type Pipeline struct {
	ocr         ocr.Service
	analyzer    Service
	documents   repositories.DocumentRepository
	reviewFloor float64
}

// NewPipeline creates the document processing pipeline
func NewPipeline(ocrService ocr.Service, analyzer Service, documents repositories.DocumentRepository) *Pipeline {
	if ocrService == nil {
		panic("ocr service is required")
	}
	if analyzer == nil {
		panic("analyzer is required")
	}
	if documents == nil {
		panic("document repository is required")
	}

	return &Pipeline{
		ocr:         ocrService,
		analyzer:    analyzer,
		documents:   documents,
		reviewFloor: ReviewFloor,
	}
}

// Process runs the full pipeline for one upload. Uploads are
// independent of each other, so concurrent calls for different files
// are safe.
func (p *Pipeline) Process(ctx context.Context, merchantID uint, upload Upload) (*models.MerchantDocument, error) {
	if upload.DeclaredType != "" && !KnownType(upload.DeclaredType) {
		return nil, errors.ErrUnsupportedDocumentType
	}

	ocrResult, err := p.ocr.Extract(ctx, upload.Data, upload.DeclaredType)
	if err != nil {
		if err == ocr.ErrUnavailable {
			return nil, errors.ErrOCRUnavailable
		}
		return nil, fmt.Errorf("ocr failed: %w", err)
	}

	hash := sha256.Sum256(upload.Data)

	doc := &models.MerchantDocument{
		MerchantID:    merchantID,
		DocumentType:  upload.DeclaredType,
		FilePath:      upload.FilePath,
		FileName:      upload.FileName,
		ContentType:   upload.ContentType,
		SizeBytes:     upload.SizeBytes,
		ContentHash:   hex.EncodeToString(hash[:]),
		Engine:        ocrResult.Engine,
		RawTextLength: len(ocrResult.Text),
		OCRConfidence: ocrResult.Confidence,
		Confidence:    ocrResult.Confidence,
		Issues:        []string{},
	}

	if doc.DocumentType == "" {
		if detected, ok := p.analyzer.Classify(ocrResult.Text); ok {
			doc.DocumentType = detected
		} else {
			doc.DocumentType = TypeUnclassified
			doc.NeedsReview = true
			doc.Issues = append(doc.Issues, "document type could not be determined")
		}
	}

	if p.analyzer.Extractable(doc.DocumentType) {
		extraction, err := p.analyzer.ExtractFields(ocrResult.Text, doc.DocumentType)
		if err != nil {
			return nil, err
		}
		if len(extraction.Fields) == 0 && extraction.FullID == "" {
			return nil, errors.ErrDocumentTypeMismatch
		}

		doc.HolderName = extraction.Fields[FieldName]
		doc.DateOfBirth = extraction.Fields[FieldDateOfBirth]
		doc.Gender = extraction.Fields[FieldGender]
		switch doc.DocumentType {
		case TypePANCard:
			doc.IDNumber = extraction.Fields[FieldPANNumber]
		case TypeAadhaarCard:
			doc.IDNumber = extraction.Fields[FieldAadhaarMasked]
		}
		doc.Issues = append(doc.Issues, extraction.Issues...)

		// A document is only as trustworthy as its weakest signal.
		doc.Confidence = minConfidence(extraction.Confidence, ocrResult.Confidence)
	}

	if doc.Confidence < p.reviewFloor {
		doc.NeedsReview = true
		doc.ReviewCode = errors.ErrLowConfidenceExtraction.Code
		doc.Issues = append(doc.Issues, "confidence below review threshold, human review required")
	}

	if err := p.documents.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return doc, nil
}

func minConfidence(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
