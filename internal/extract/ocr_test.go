package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/landwatch/internal/cache"
	"github.com/ppiankov/landwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

func TestDetectImageType(t *testing.T) {
	mime, err := DetectImageType(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = DetectImageType(jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	_, err = DetectImageType([]byte("GIF89a......"))
	assert.Error(t, err)

	_, err = DetectImageType([]byte("plain text notice"))
	assert.Error(t, err)
}

func TestOCRExtract(t *testing.T) {
	p := &stubProvider{reply: "  PUBLIC NOTICE\nNotice is hereby given...  \n"}
	o := NewOCR(p, nil, nil)

	text, err := o.Extract(context.Background(), jpegHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "PUBLIC NOTICE\nNotice is hereby given...", text)

	require.Equal(t, 1, p.calls())
	req := p.reqs[0]
	require.Len(t, req.Images, 1)
	assert.Equal(t, "image/jpeg", req.Images[0].MIMEType)
	assert.Equal(t, ocrPrompt, req.Prompt)
}

func TestOCRExtractNoProvider(t *testing.T) {
	text, err := NewOCR(nil, nil, nil).Extract(context.Background(), pngHeader, "image/png")
	assert.Equal(t, OCRFailed, text)
	assert.ErrorIs(t, err, model.ErrCapabilityUnavailable)
}

func TestOCRExtractFailures(t *testing.T) {
	tests := []struct {
		name  string
		p     *stubProvider
		image []byte
	}{
		{"provider error", &stubProvider{err: errors.New("503")}, pngHeader},
		{"empty text", &stubProvider{reply: "   "}, pngHeader},
		{"sentinel", &stubProvider{reply: OCRFailed}, pngHeader},
		{"unsupported image", &stubProvider{reply: "text"}, []byte("GIF89a......")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewOCR(tt.p, nil, nil).Extract(context.Background(), tt.image, "")
			assert.Equal(t, OCRFailed, text)
			assert.ErrorIs(t, err, model.ErrCapabilityFailure)
		})
	}
}

func TestOCRExtractCached(t *testing.T) {
	p := &stubProvider{reply: "notice text"}
	o := NewOCR(p, cache.NewMemoryCache(time.Minute, time.Minute), nil)

	for range 3 {
		text, err := o.Extract(context.Background(), pngHeader, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "notice text", text)
	}
	assert.Equal(t, 1, p.calls())
}

func TestOCRFailureNotCached(t *testing.T) {
	p := &stubProvider{err: errors.New("timeout")}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	o := NewOCR(p, c, nil)

	_, err := o.Extract(context.Background(), pngHeader, "image/png")
	require.Error(t, err)

	p.err = nil
	p.reply = "second try"
	text, err := o.Extract(context.Background(), pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "second try", text)
}
