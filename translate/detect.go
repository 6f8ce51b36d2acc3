package translate

import (
	"errors"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrIndeterminate is returned by a Detector when the language of a text
// cannot be determined. Callers treat it as "language unknown" and
// proceed with translation.
var ErrIndeterminate = errors.New("translate: language could not be determined")

// Detector reports the language of a text as a lowercase ISO 639-1 code.
type Detector interface {
	Detect(text string) (string, error)
}

// LinguaDetector detects languages with the lingua-go statistical models.
// Building the detector is expensive; construct once and share.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector creates a detector over all languages lingua supports,
// with lazily loaded models to keep startup cheap.
func NewLinguaDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &LinguaDetector{detector: detector}
}

// Detect returns the ISO 639-1 code of the most likely language of text,
// or ErrIndeterminate when lingua has no confident answer.
func (d *LinguaDetector) Detect(text string) (string, error) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrIndeterminate
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
