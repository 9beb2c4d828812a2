// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OrganizationMode selects the template used to re-prompt a generation
// service with converted Markdown.
type OrganizationMode string

const (
	ModeRestructure       OrganizationMode = "restructure"
	ModeSummarize         OrganizationMode = "summarize"
	ModeExtractKeyPoints  OrganizationMode = "extract-key-points"
	ModeTranslateOrganize OrganizationMode = "translate-organize"
	ModeCleanFormat       OrganizationMode = "clean-format"
	ModeLessonPlan        OrganizationMode = "lesson-plan"
	ModeObservationRecord OrganizationMode = "observation-record"
	ModeMeetingMinutes    OrganizationMode = "meeting-minutes"
	ModeOfficialDocument  OrganizationMode = "official-document"
)

// Language is a coarse classification of a document's dominant language.
type Language string

const (
	LangKorean  Language = "ko"
	LangEnglish Language = "en"
	LangMixed   Language = "mixed"
)

// OrganizeOptions configures prompt construction for one organization request.
type OrganizeOptions struct {
	// Mode is the organization template.
	Mode OrganizationMode `json:"mode" yaml:"mode"`

	// TargetLanguage is the output direction for translate-organize:
	// "en" produces English, anything else produces Korean.
	TargetLanguage Language `json:"target_language,omitempty" yaml:"target_language,omitempty"`

	// Temperature is passed through to the generation client (default 0.3).
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// PromptPair is the (system, user) instruction pair fed to a generation service.
type PromptPair struct {
	System string `json:"system" yaml:"system"`
	User   string `json:"user" yaml:"user"`
}
