package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppiankov/landwatch/internal/cache"
	"github.com/ppiankov/landwatch/internal/llm"
	"github.com/ppiankov/landwatch/internal/model"
	"go.uber.org/zap"
)

// SupportedImageTypes are the scan formats accepted for OCR.
var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// DetectImageType sniffs the MIME type of a scan. Returns an error for
// anything other than JPEG or PNG.
func DetectImageType(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !SupportedImageTypes[mime] {
		return "", fmt.Errorf("unsupported image type %s (expected jpg, jpeg or png)", mime)
	}
	return mime, nil
}

// OCR turns a scanned notice into raw text through a vision-capable provider.
type OCR struct {
	provider llm.Provider
	cache    cache.Cache
	logger   *zap.Logger
}

// NewOCR creates a text extraction adapter. provider may be nil, in which
// case every call reports the capability as unavailable. c may be nil.
func NewOCR(provider llm.Provider, c cache.Cache, logger *zap.Logger) *OCR {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OCR{provider: provider, cache: c, logger: logger}
}

// Extract returns the text of the scan. On any failure it returns
// OCRFailed together with an error wrapping ErrCapabilityFailure or
// ErrCapabilityUnavailable. No retries.
func (o *OCR) Extract(ctx context.Context, image []byte, mimeType string) (string, error) {
	if o.provider == nil {
		return OCRFailed, fmt.Errorf("ocr: %w", model.ErrCapabilityUnavailable)
	}

	if mimeType == "" {
		detected, err := DetectImageType(image)
		if err != nil {
			return OCRFailed, fmt.Errorf("ocr: %w: %v", model.ErrCapabilityFailure, err)
		}
		mimeType = detected
	}

	key := cache.CacheKey(cache.NamespaceOCR, image)
	if o.cache != nil {
		if hit, ok := o.cache.Get(key); ok {
			o.logger.Debug("extract.ocr.cache_hit", zap.Int("bytes", len(image)))
			return string(hit), nil
		}
	}

	resp, err := o.provider.Generate(ctx, llm.GenerateRequest{
		Prompt: ocrPrompt,
		Images: []llm.Image{{MIMEType: mimeType, Data: image}},
	})
	if err != nil {
		o.logger.Warn("extract.ocr.failed", zap.Error(err))
		return OCRFailed, fmt.Errorf("ocr: %w: %v", model.ErrCapabilityFailure, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" || text == OCRFailed {
		o.logger.Warn("extract.ocr.empty")
		return OCRFailed, fmt.Errorf("ocr: %w: empty text", model.ErrCapabilityFailure)
	}

	if o.cache != nil {
		if err := o.cache.Set(key, []byte(text), 0); err != nil {
			o.logger.Debug("extract.ocr.cache_set_failed", zap.Error(err))
		}
	}

	o.logger.Debug("extract.ocr.ok", zap.Int("chars", len(text)), zap.Int("tokens", resp.TokensUsed))
	return text, nil
}
