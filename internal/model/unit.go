package model

import (
	"strings"
	"time"
)

// UnitState is the position of an ingestion unit in the pipeline.
type UnitState string

const (
	StateReceived   UnitState = "received"
	StateOCRd       UnitState = "ocrd"
	StateTranslated UnitState = "translated"
	StateExtracted  UnitState = "extracted"
	StateStored     UnitState = "stored"
	StateFailed     UnitState = "failed"
)

// TextKeySuffix is appended to the label of pasted-text units.
const TextKeySuffix = ".txt"

// Unit is one notice to ingest. Exactly one of Image or Text is set,
// unless Rejected holds the reason the input could not be loaded.
type Unit struct {
	Key      string
	Image    []byte
	MIMEType string
	Text     string
	Rejected error
}

// IsText reports whether the unit skips OCR.
func (u Unit) IsText() bool {
	return len(u.Image) == 0
}

// TextKey derives the corpus key for a pasted-text unit.
func TextKey(label string) string {
	label = strings.TrimSpace(label)
	if strings.HasSuffix(label, TextKeySuffix) {
		return label
	}
	return label + TextKeySuffix
}

// UnitResult is the terminal outcome of one unit.
type UnitResult struct {
	Key      string
	State    UnitState
	FailedAt UnitState // last state reached before failing
	Err      error
	Notice   *PublicNotice
	Duration time.Duration
}

// GetError satisfies worker.Result.
func (r *UnitResult) GetError() error {
	return r.Err
}

// Succeeded reports whether the unit reached the corpus.
func (r *UnitResult) Succeeded() bool {
	return r.State == StateStored
}
