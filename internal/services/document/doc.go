/*
Package document classifies OCR transcripts and extracts structured
fields from Indian identity documents.

Classification counts detector pattern hits per known type; a type is
chosen once two of its patterns match, scanning types in declared
order. Extraction applies an ordered regex table per document type,
validates the result and derives a confidence score by subtracting
fixed penalties from 100.

	svc := document.NewService(document.DefaultPenalties)

	docType, ok := svc.Classify(rawText)
	extraction, err := svc.ExtractFields(rawText, docType)

Aadhaar numbers are masked before they leave this package; only the
masked form may be persisted, logged or displayed.
*/
package document
