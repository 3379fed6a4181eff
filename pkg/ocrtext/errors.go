package ocrtext

import "errors"

// ErrNoText is returned when neither the embedded text layer nor OCR yields
// readable text for a document.
var ErrNoText = errors.New("no readable text in document")
