package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/landwatch/internal/extract"
	"github.com/ppiankov/landwatch/internal/model"
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// ImageUnit builds a unit for a scan. The key is the file's base name.
func ImageUnit(name string, data []byte) (model.Unit, error) {
	key := filepath.Base(name)
	if !imageExtensions[strings.ToLower(filepath.Ext(key))] {
		return model.Unit{}, fmt.Errorf("%s: unsupported file type (expected jpg, jpeg or png)", key)
	}
	mime, err := extract.DetectImageType(data)
	if err != nil {
		return model.Unit{}, fmt.Errorf("%s: %w", key, err)
	}
	return model.Unit{Key: key, Image: data, MIMEType: mime}, nil
}

// LoadImageUnit reads a scan from disk.
func LoadImageUnit(path string) (model.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Unit{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ImageUnit(path, data)
}

// RejectedUnit keeps an unloadable input in the batch so that it fails
// on its own at received instead of aborting the run.
func RejectedUnit(path string, err error) model.Unit {
	return model.Unit{Key: filepath.Base(path), Rejected: err}
}

// TextUnit builds a unit for pasted notice text keyed by label.
func TextUnit(label, text string) (model.Unit, error) {
	if strings.TrimSpace(label) == "" {
		return model.Unit{}, fmt.Errorf("text notice needs a label")
	}
	if strings.TrimSpace(text) == "" {
		return model.Unit{}, fmt.Errorf("%s: notice text is empty", label)
	}
	return model.Unit{Key: model.TextKey(label), Text: text}, nil
}
