package extract

import (
	"context"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/ppiankov/landwatch/internal/cache"
	"github.com/ppiankov/landwatch/internal/llm"
	"go.uber.org/zap"
)

// Language is an ISO 639-1 code from the candidate set.
type Language string

const (
	English      Language = "en"
	Hindi        Language = "hi"
	Marathi      Language = "mr"
	Undetermined Language = ""
)

var candidates = whatlanggo.Options{
	Whitelist: map[whatlanggo.Lang]bool{
		whatlanggo.Eng: true,
		whatlanggo.Hin: true,
		whatlanggo.Mar: true,
	},
}

// DetectLanguage identifies text as English, Hindi or Marathi. Detection
// is deterministic for a given input. Text with no detectable script is
// Undetermined.
func DetectLanguage(text string) Language {
	if strings.TrimSpace(text) == "" {
		return Undetermined
	}
	info := whatlanggo.DetectWithOptions(text, candidates)
	switch info.Lang {
	case whatlanggo.Eng:
		return English
	case whatlanggo.Hin:
		return Hindi
	case whatlanggo.Mar:
		return Marathi
	default:
		return Undetermined
	}
}

// LanguageNormalizer brings notice text into English. It never fails:
// when translation is impossible the input is returned unchanged.
type LanguageNormalizer struct {
	provider llm.Provider
	cache    cache.Cache
	logger   *zap.Logger
}

// NewLanguageNormalizer creates a normalizer. provider and c may be nil.
func NewLanguageNormalizer(provider llm.Provider, c cache.Cache, logger *zap.Logger) *LanguageNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LanguageNormalizer{provider: provider, cache: c, logger: logger}
}

// Normalize returns English text and the language detected in the input.
// English or undetermined input comes back untouched with no provider call.
func (n *LanguageNormalizer) Normalize(ctx context.Context, text string) (string, Language) {
	lang := DetectLanguage(text)
	if lang == English || lang == Undetermined {
		return text, lang
	}

	if n.provider == nil {
		n.logger.Warn("extract.translate.unavailable", zap.String("lang", string(lang)))
		return text, lang
	}

	key := cache.CacheKey(cache.NamespaceTranslate, []byte(text))
	if n.cache != nil {
		if hit, ok := n.cache.Get(key); ok {
			return string(hit), lang
		}
	}

	resp, err := n.provider.Generate(ctx, llm.GenerateRequest{Prompt: translationPrompt(text)})
	if err != nil {
		n.logger.Warn("extract.translate.failed", zap.String("lang", string(lang)), zap.Error(err))
		return text, lang
	}

	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		n.logger.Warn("extract.translate.empty", zap.String("lang", string(lang)))
		return text, lang
	}

	if n.cache != nil {
		if err := n.cache.Set(key, []byte(translated), 0); err != nil {
			n.logger.Debug("extract.translate.cache_set_failed", zap.Error(err))
		}
	}

	n.logger.Debug("extract.translate.ok", zap.String("lang", string(lang)), zap.Int("chars", len(translated)))
	return translated, lang
}
