// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import "github.com/pdiddy/docmark/pkg/types"

type modeLabel struct {
	name        string
	description string
}

var labels = map[types.Language]map[types.OrganizationMode]modeLabel{
	types.LangKorean: {
		types.ModeRestructure:       {"재구성", "논리적 흐름을 개선하고 단락을 재구성합니다"},
		types.ModeSummarize:         {"요약", "핵심 내용을 간결하게 요약합니다"},
		types.ModeExtractKeyPoints:  {"핵심 포인트 추출", "중요한 정보를 불릿 포인트로 추출합니다"},
		types.ModeTranslateOrganize: {"번역 및 구조화", "번역하면서 내용을 구조화합니다"},
		types.ModeCleanFormat:       {"정리 및 형식화", "중복 제거 및 형식을 개선합니다"},
		types.ModeLessonPlan:        {"수업 계획안", "수업 목표, 단계, 활동을 포함한 체계적인 수업 계획안을 작성합니다"},
		types.ModeObservationRecord: {"수업 관찰 기록", "수업 관찰 내용을 교수학습 개선에 활용할 수 있도록 체계적으로 정리합니다"},
		types.ModeMeetingMinutes:    {"회의록", "회의 안건, 논의사항, 결정사항을 명확히 정리한 회의록을 작성합니다"},
		types.ModeOfficialDocument:  {"공문서", "발신/수신, 제목, 내용을 포함한 표준 공문서 형식으로 변환합니다"},
	},
	types.LangEnglish: {
		types.ModeRestructure:       {"Restructure", "Improve logical flow and reorganize paragraphs"},
		types.ModeSummarize:         {"Summarize", "Create a concise summary of key content"},
		types.ModeExtractKeyPoints:  {"Extract Key Points", "Extract important information as bullet points"},
		types.ModeTranslateOrganize: {"Translate & Organize", "Translate while structuring content"},
		types.ModeCleanFormat:       {"Clean & Format", "Remove redundancies and improve formatting"},
		types.ModeLessonPlan:        {"Lesson Plan", "Create a structured lesson plan with objectives, stages, and activities"},
		types.ModeObservationRecord: {"Observation Record", "Organize observation notes for teaching improvement"},
		types.ModeMeetingMinutes:    {"Meeting Minutes", "Structure meeting agenda, discussions, and decisions"},
		types.ModeOfficialDocument:  {"Official Document", "Convert to standard official document format"},
	},
}

func label(mode types.OrganizationMode, lang types.Language) modeLabel {
	table, ok := labels[lang]
	if !ok {
		table = labels[types.LangEnglish]
	}
	return table[mode]
}

// ModeName returns the display name of mode in lang. Languages other than
// Korean fall back to English; unknown modes return "".
func ModeName(mode types.OrganizationMode, lang types.Language) string {
	return label(mode, lang).name
}

// ModeDescription returns a one-line description of mode in lang.
func ModeDescription(mode types.OrganizationMode, lang types.Language) string {
	return label(mode, lang).description
}

// KoreanOnly reports whether mode has no English phrasing, so its prompts are
// Korean regardless of the input language.
func KoreanOnly(mode types.OrganizationMode) bool {
	t, ok := templates[mode]
	return ok && t.english == nil
}
