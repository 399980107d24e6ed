package i18n

import (
	"embed"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// Config holds i18n configuration
type Config struct {
	DefaultLanguage string
	SupportedLangs  []string
}

// DefaultConfig covers every locale shipped with the binary.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage: "en",
		SupportedLangs:  []string{"en", "ru"},
	}
}

// I18n manages internationalization
type I18n struct {
	bundle          *i18n.Bundle
	defaultLanguage string
	supportedLangs  map[string]bool
}

// New creates an i18n instance from the embedded locale files.
func New(cfg Config) (*I18n, error) {
	return NewFromEmbed(cfg, locales, "locales")
}

// NewFromEmbed creates i18n from embedded files
func NewFromEmbed(cfg Config, fs embed.FS, dir string) (*I18n, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, lang := range cfg.SupportedLangs {
		filename := path.Join(dir, fmt.Sprintf("%s.yaml", lang))
		data, err := fs.ReadFile(filename)
		if err != nil {
			continue
		}
		if _, err := bundle.ParseMessageFileBytes(data, filename); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}

	supportedLangs := make(map[string]bool)
	for _, lang := range cfg.SupportedLangs {
		supportedLangs[lang] = true
	}

	return &I18n{
		bundle:          bundle,
		defaultLanguage: cfg.DefaultLanguage,
		supportedLangs:  supportedLangs,
	}, nil
}

// Localizer creates a localizer for a specific language
func (i *I18n) Localizer(lang string) *i18n.Localizer {
	if !i.supportedLangs[lang] {
		lang = i.defaultLanguage
	}
	return i18n.NewLocalizer(i.bundle, lang, i.defaultLanguage)
}

// T translates a message
func (i *I18n) T(lang, messageID string, templateData map[string]interface{}) string {
	localizer := i.Localizer(lang)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		return messageID
	}

	return msg
}

// GetSupportedLanguages returns list of supported languages
func (i *I18n) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(i.supportedLangs))
	for lang := range i.supportedLangs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsSupported checks if language is supported
func (i *I18n) IsSupported(lang string) bool {
	return i.supportedLangs[lang]
}

// Printer writes localized lines for one language.
type Printer struct {
	i18n *I18n
	lang string
	w    io.Writer
}

// Printer returns a Printer writing to w in lang.
func (i *I18n) Printer(lang string, w io.Writer) *Printer {
	return &Printer{i18n: i, lang: lang, w: w}
}

// Say prints the translated message followed by a newline.
func (p *Printer) Say(messageID string, templateData map[string]interface{}) {
	fmt.Fprintln(p.w, p.i18n.T(p.lang, messageID, templateData))
}

// Line prints s verbatim.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.w, s)
}
