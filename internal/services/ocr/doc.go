/*
Package ocr provides text recognition for uploaded identity documents.

The adapter tries a remote detection engine first and falls back to a
local Tesseract engine when the remote call fails or is not configured:

	svc := ocr.NewService(primary, fallback)

	result, err := svc.Extract(ctx, imageBytes, "aadhaar_card")

Both engines normalize their output into a Result carrying the full
transcript and a 0-100 confidence score. The remote engine averages the
per-token confidences reported by the detector; the local engine
estimates confidence from text quality since Tesseract does not report
an aggregate score.

The remote call is attempted exactly once per extraction. Retrying is
left to the uploader so a slow detection endpoint cannot stack up
duplicate spend.

The local engine holds a shared Tesseract client that is initialized on
first use and must be released with Close at shutdown.
*/
package ocr
