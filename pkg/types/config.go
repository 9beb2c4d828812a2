package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FetchConfig holds HTTP settings for the web-page fetcher.
type FetchConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with page requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// AcceptLanguage is the Accept-Language header sent with page requests.
	AcceptLanguage string `json:"accept_language" yaml:"accept_language" mapstructure:"accept_language"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// OutputDir is where converted Markdown files are written. Empty means stdout.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Frontmatter prepends a YAML header to written Markdown files.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`

	// Delimiter overrides the CSV field separator (single character).
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty" mapstructure:"delimiter"`

	// EnableDelegate routes docx/pptx through the markitdown container.
	EnableDelegate bool `json:"enable_delegate" yaml:"enable_delegate" mapstructure:"enable_delegate"`

	// MarkitdownImage is the container image used by the delegate.
	MarkitdownImage string `json:"markitdown_image" yaml:"markitdown_image" mapstructure:"markitdown_image"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled records every successful CLI conversion.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// OrganizeConfig holds defaults for prompt construction.
type OrganizeConfig struct {
	// TargetLanguage is the default translate-organize direction ("ko" or "en").
	TargetLanguage Language `json:"target_language" yaml:"target_language" mapstructure:"target_language"`

	// Temperature is forwarded to the generation client.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
}

// Config groups all stage configurations.
type Config struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Convert  ConvertConfig  `json:"convert" yaml:"convert" mapstructure:"convert"`
	History  HistoryConfig  `json:"history" yaml:"history" mapstructure:"history"`
	Organize OrganizeConfig `json:"organize" yaml:"organize" mapstructure:"organize"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Fetch: FetchConfig{
			Timeout:        30 * time.Second,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
			AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
			MaxRetries:     3,
		},
		Convert: ConvertConfig{
			MarkitdownImage: "markitdown:latest",
		},
		History: HistoryConfig{
			Path: "docmark.db",
		},
		Organize: OrganizeConfig{
			TargetLanguage: LangKorean,
			Temperature:    0.3,
		},
	}
}

// Validate checks field ranges across all stages.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Fetch),
		validation.Field(&c.Convert),
		validation.Field(&c.History),
		validation.Field(&c.Organize),
	)
}

// Validate checks the fetch settings.
func (c FetchConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(10)),
	)
}

// Validate checks the conversion settings.
func (c ConvertConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Delimiter, validation.RuneLength(0, 1)),
		validation.Field(&c.MarkitdownImage, validation.When(c.EnableDelegate, validation.Required)),
	)
}

// Validate checks the history settings.
func (c HistoryConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Path, validation.When(c.Enabled, validation.Required)),
	)
}

// Validate checks the organize defaults.
func (c OrganizeConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TargetLanguage, validation.In(LangKorean, LangEnglish)),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
	)
}
