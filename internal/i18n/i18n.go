// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the fixed UI strings in English and Korean.
//
// Strings are looked up by Key through a golang.org/x/text message
// catalog. Unknown languages fall back to English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a localized string.
type Key string

const (
	Title       Key = "title"
	Placeholder Key = "input.placeholder"
	Processing  Key = "status.processing"
	ServerError Key = "error.unreachable"
	References  Key = "references"
	Send        Key = "send"
	EmptyHint   Key = "empty.hint"

	StatusConnected   Key = "health.connected"
	StatusUnreachable Key = "health.unreachable"
	StatusChecking    Key = "health.checking"

	CopyDone   Key = "copy.done"
	CopyEmpty  Key = "copy.empty"
	CopyFailed Key = "copy.failed"

	RoleUser      Key = "role.user"
	RoleAssistant Key = "role.assistant"
	RoleSystem    Key = "role.system"

	HelpSubmit Key = "help.submit"
	HelpFocus  Key = "help.focus"
	HelpScroll Key = "help.scroll"
	HelpCopy   Key = "help.copy"
	HelpQuit   Key = "help.quit"

	ReplGoodbye Key = "repl.goodbye"
)

var (
	english = language.English
	korean  = language.Korean
)

var messages = map[language.Tag]map[Key]string{
	english: {
		Title:       "ArXiv AI Research Assistant",
		Placeholder: "Enter an AI research area you're curious about...",
		Processing:  "Analyzing papers...",
		ServerError: "Cannot reach the server. Check the CORS settings and whether the backend is running.",
		References:  "References",
		Send:        "Send",
		EmptyHint:   "Ask about a research topic to get an answer with cited arXiv papers.",

		StatusConnected:   "connected",
		StatusUnreachable: "unreachable",
		StatusChecking:    "checking",

		CopyDone:   "Answer copied to clipboard",
		CopyEmpty:  "No answer to copy yet",
		CopyFailed: "Clipboard unavailable: %v",

		RoleUser:      "You",
		RoleAssistant: "Assistant",
		RoleSystem:    "System",

		HelpSubmit: "send",
		HelpFocus:  "focus",
		HelpScroll: "scroll",
		HelpCopy:   "copy answer",
		HelpQuit:   "quit",

		ReplGoodbye: "Goodbye!",
	},
	korean: {
		Title:       "ArXiv AI Research Assistant",
		Placeholder: "궁금한 AI 연구 분야를 입력하세요...",
		Processing:  "논문을 분석하고 있습니다...",
		ServerError: "서버와 연결할 수 없습니다. CORS 설정이나 백엔드 실행 상태를 확인하세요.",
		References:  "References",
		Send:        "전송",
		EmptyHint:   "연구 주제를 질문하면 arXiv 논문을 인용한 답변을 받을 수 있습니다.",

		StatusConnected:   "연결됨",
		StatusUnreachable: "연결 안 됨",
		StatusChecking:    "확인 중",

		CopyDone:   "답변을 클립보드에 복사했습니다",
		CopyEmpty:  "복사할 답변이 없습니다",
		CopyFailed: "클립보드를 사용할 수 없습니다: %v",

		RoleUser:      "나",
		RoleAssistant: "어시스턴트",
		RoleSystem:    "시스템",

		HelpSubmit: "전송",
		HelpFocus:  "포커스",
		HelpScroll: "스크롤",
		HelpCopy:   "답변 복사",
		HelpQuit:   "종료",

		ReplGoodbye: "안녕히 가세요!",
	},
}

var (
	cat     catalog.Catalog
	matcher language.Matcher
)

func init() {
	b := catalog.NewBuilder(catalog.Fallback(english))
	for tag, table := range messages {
		for key, text := range table {
			if err := b.SetString(tag, string(key), text); err != nil {
				panic("i18n: " + err.Error())
			}
		}
	}
	cat = b
	matcher = language.NewMatcher([]language.Tag{english, korean})
}

// Supported returns the language tags with a full string table.
func Supported() []language.Tag {
	return []language.Tag{english, korean}
}

// Printer renders localized strings for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for lang, e.g. "ko" or "ko-KR".
// Anything unrecognized selects English.
func New(lang string) *Printer {
	_, idx := language.MatchStrings(matcher, lang)
	tag := Supported()[idx]
	return &Printer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Tag returns the selected language.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// T returns the string for key, formatting args into it if given.
func (p *Printer) T(key Key, args ...interface{}) string {
	return p.p.Sprintf(string(key), args...)
}
