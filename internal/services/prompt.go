package services

import (
	"strings"

	"github.com/noorstudy/noorstudy-backend/internal/content"
)

const promptSystem = "You structure raw educational material into JSON for an authoring tool. Return ONLY JSON, no commentary."

// promptTemplate is one fixed extraction prompt. Shape describes the JSON the
// model must return; instructions is the task preamble the pasted text (or
// image) is appended to.
type promptTemplate struct {
	instructions string
	shape        string
}

// promptTemplates holds the six fixed prompts, keyed by content type. Adding
// a content type is an entry here, not a new code path.
var promptTemplates = map[string]promptTemplate{
	content.TypeLessons: {
		instructions: "Format the lesson text below into an ordered list of content blocks. Use title/subtitle blocks for headings and paragraph blocks for body text. Keep the original wording.",
		shape: `{
  "blocks": [
    {"type": "title|subtitle|paragraph", "text": "string"}
  ]
}`,
	},
	content.TypeDates: {
		instructions: "Extract every dated event from the text below, in chronological order.",
		shape: `{
  "blocks": [
    {"type": "date_entry", "text": "event", "extra_1": "date"}
  ]
}`,
	},
	content.TypeTerms: {
		instructions: "Extract every term and its definition from the text below.",
		shape: `[
  {"term": "string", "definition": "string"}
]`,
	},
	content.TypeCharacters: {
		instructions: "Extract every historical figure mentioned in the text below, with a one-line profile.",
		shape: `{
  "blocks": [
    {"type": "char_entry", "text": "name", "extra_1": "profile"}
  ]
}`,
	},
	content.TypePhilosophy: {
		instructions: "Structure the essay material below as an argumentative essay: one problem, exactly two opposing positions with their theories and philosophers, a synthesis and a conclusion.",
		shape: `{
  "type": "philosophy_structured",
  "problem": "string",
  "positions": [
    {"title": "string", "critique": "string", "theories": [{"philosophers": [{"name": "string", "idea": "string", "quote": "string", "example": "string"}]}]},
    {"title": "string", "critique": "string", "theories": []}
  ],
  "synthesisType": "transcending|predominance|reconciliation",
  "synthesis": "string",
  "conclusion": "string"
}`,
	},
	content.TypeLaws: {
		instructions: "The image is a photographed page of mathematical laws. Extract every law or formula visible, one block each, with its name and statement. Do not invent laws that are not visible.",
		shape: `{
  "blocks": [
    {"type": "paragraph", "text": "law name", "extra_1": "formula or statement"}
  ]
}`,
	},
}

// buildPrompt assembles the user prompt for a content type; ok is false when
// the content type has no template.
func buildPrompt(contentType, pastedText string) (string, bool) {
	tpl, ok := promptTemplates[contentType]
	if !ok {
		return "", false
	}

	var b strings.Builder
	b.WriteString(tpl.instructions)
	b.WriteString("\n\nJSON shape:\n")
	b.WriteString(tpl.shape)
	if strings.TrimSpace(pastedText) != "" {
		b.WriteString("\n\nText:\n")
		b.WriteString(pastedText)
	}
	return b.String(), true
}
