package document

import (
	"context"
	"testing"

	apperrors "veridesk/internal/errors"
	"veridesk/internal/models"
	"veridesk/internal/services/ocr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOCR struct {
	mock.Mock
}

func (m *MockOCR) Extract(ctx context.Context, image []byte, hintType string) (*ocr.Result, error) {
	args := m.Called(ctx, image, hintType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ocr.Result), args.Error(1)
}

func (m *MockOCR) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Create(doc *models.MerchantDocument) error {
	args := m.Called(doc)
	return args.Error(0)
}

func (m *MockDocumentStore) GetByID(id uint) (*models.MerchantDocument, error) {
	args := m.Called(id)
	return args.Get(0).(*models.MerchantDocument), args.Error(1)
}

func (m *MockDocumentStore) GetByMerchantID(merchantID uint) ([]models.MerchantDocument, error) {
	args := m.Called(merchantID)
	return args.Get(0).([]models.MerchantDocument), args.Error(1)
}

func (m *MockDocumentStore) GetByMerchantAndType(merchantID uint, docType string) (*models.MerchantDocument, error) {
	args := m.Called(merchantID, docType)
	return args.Get(0).(*models.MerchantDocument), args.Error(1)
}

func (m *MockDocumentStore) Update(doc *models.MerchantDocument) error {
	args := m.Called(doc)
	return args.Error(0)
}

func (m *MockDocumentStore) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

const panTranscript = "INCOME TAX DEPARTMENT\nGOVT. OF INDIA\nPermanent Account Number\nABCDE1234F\nName\nRAHUL KUMAR"

func TestPipelineProcess(t *testing.T) {
	image := []byte("fake-image-bytes")

	t.Run("pan upload keeps the weakest confidence", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "pan_card").Return(&ocr.Result{
			Text:       panTranscript,
			Confidence: 80,
			Engine:     ocr.EngineVision,
		}, nil)
		store.On("Create", mock.Anything).Return(nil)

		doc, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName:     "pan.jpg",
			Data:         image,
			DeclaredType: TypePANCard,
		})

		assert.NoError(t, err)
		assert.Equal(t, "ABCDE1234F", doc.IDNumber)
		assert.Equal(t, "Rahul Kumar", doc.HolderName)
		// extraction scored 100, OCR 80; the combined score is the min
		assert.Equal(t, 80.0, doc.Confidence)
		assert.Equal(t, 80.0, doc.OCRConfidence)
		assert.False(t, doc.NeedsReview)
		assert.Empty(t, doc.ReviewCode)
	})

	t.Run("classifies when no type is declared", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "").Return(&ocr.Result{
			Text:       panTranscript,
			Confidence: 90,
			Engine:     ocr.EngineVision,
		}, nil)
		store.On("Create", mock.MatchedBy(func(d *models.MerchantDocument) bool {
			return d.DocumentType == TypePANCard
		})).Return(nil)

		doc, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName: "scan.jpg",
			Data:     image,
		})

		assert.NoError(t, err)
		assert.Equal(t, TypePANCard, doc.DocumentType)
		store.AssertExpectations(t)
	})

	t.Run("unclassifiable upload is stored for review, not guessed", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "").Return(&ocr.Result{
			Text:       "an unremarkable piece of paper",
			Confidence: 88,
			Engine:     ocr.EngineTesseract,
		}, nil)
		store.On("Create", mock.Anything).Return(nil)

		doc, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName: "scan.jpg",
			Data:     image,
		})

		assert.NoError(t, err)
		assert.Equal(t, TypeUnclassified, doc.DocumentType)
		assert.True(t, doc.NeedsReview)
	})

	t.Run("declared type with no matching fields is a mismatch", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "pan_card").Return(&ocr.Result{
			Text:       "STATEMENT OF ACCOUNT\nOPENING BALANCE 1,200.00",
			Confidence: 95,
			Engine:     ocr.EngineVision,
		}, nil)

		_, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName:     "statement.pdf",
			Data:         image,
			DeclaredType: TypePANCard,
		})

		assert.ErrorIs(t, err, apperrors.ErrDocumentTypeMismatch)
		store.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("low combined confidence flags review", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "pan_card").Return(&ocr.Result{
			Text:       panTranscript,
			Confidence: 40,
			Engine:     ocr.EngineTesseract,
		}, nil)
		store.On("Create", mock.Anything).Return(nil)

		doc, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName:     "blurry.jpg",
			Data:         image,
			DeclaredType: TypePANCard,
		})

		assert.NoError(t, err)
		assert.True(t, doc.NeedsReview)
		assert.Equal(t, 40.0, doc.Confidence)
		// the review flag carries its taxonomy code so clients never
		// have to string-match the issue text
		assert.Equal(t, apperrors.ErrLowConfidenceExtraction.Code, doc.ReviewCode)
	})

	t.Run("unknown declared type is rejected before OCR", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		_, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName:     "passport.jpg",
			Data:         image,
			DeclaredType: "passport",
		})

		assert.ErrorIs(t, err, apperrors.ErrUnsupportedDocumentType)
		ocrSvc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("ocr unavailable surfaces the taxonomy error", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "pan_card").Return(nil, ocr.ErrUnavailable)

		_, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName:     "pan.jpg",
			Data:         image,
			DeclaredType: TypePANCard,
		})

		assert.ErrorIs(t, err, apperrors.ErrOCRUnavailable)
	})

	t.Run("aadhaar transcript never persists the full number", func(t *testing.T) {
		ocrSvc := new(MockOCR)
		store := new(MockDocumentStore)

		ocrSvc.On("Extract", mock.Anything, image, "aadhaar_card").Return(&ocr.Result{
			Text:       "GOVERNMENT OF INDIA\nUnique Identification Authority\nRahul Kumar\nDOB: 15/08/1990\nMale\n2345 1234 5678",
			Confidence: 92,
			Engine:     ocr.EngineVision,
		}, nil)
		store.On("Create", mock.MatchedBy(func(d *models.MerchantDocument) bool {
			return d.IDNumber == "****-****-5678"
		})).Return(nil)

		doc, err := NewPipeline(ocrSvc, NewService(DefaultPenalties), store).Process(context.Background(), 7, Upload{
			FileName:     "aadhaar.jpg",
			Data:         image,
			DeclaredType: TypeAadhaarCard,
		})

		assert.NoError(t, err)
		assert.Equal(t, "****-****-5678", doc.IDNumber)
		assert.NotContains(t, doc.IDNumber, "234512345678")
		store.AssertExpectations(t)
	})
}
