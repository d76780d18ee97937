package content

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
)

// Field synonym tables, evaluated in order at the normalization boundary.
// New source-field spellings are additions here, not new code paths.
var (
	textFieldSynonyms   = []string{"text", "term", "word", "titre"}
	extra1FieldSynonyms = []string{"extra_1", "definition", "meaning", "translation", "traduction"}
)

var fenceMarker = regexp.MustCompile("```[a-zA-Z]*")

// Normalize turns raw generative-text output into a canonical document for
// the given content type. reserved holds block ids already in use; fresh ids
// never collide with it or with each other. On any failure the returned
// document is zero and the caller's draft must stay untouched.
func Normalize(raw string, contentType string, reserved map[string]struct{}) (Document, error) {
	if strings.TrimSpace(raw) == "" {
		return Document{}, apperr.ErrEmptyAIResponse
	}

	payload, err := extractPayload(raw)
	if err != nil {
		return Document{}, err
	}

	if contentType == TypePhilosophy {
		var probe struct {
			Type string `json:"type"`
		}
		if jErr := json.Unmarshal(payload, &probe); jErr == nil && probe.Type == docTypePhilosophy {
			var doc PhilosophyDocument
			if jErr := json.Unmarshal(payload, &doc); jErr != nil {
				return Document{}, fmt.Errorf("%w: %v", apperr.ErrInvalidAIResponse, jErr)
			}
			return Document{Philosophy: &doc}, nil
		}
	}

	elements, err := candidateBlocks(payload)
	if err != nil {
		return Document{}, err
	}

	batch := make(map[string]struct{}, len(elements))
	blocks := make([]Block, 0, len(elements))
	for _, elem := range elements {
		var fields map[string]json.RawMessage
		if jErr := json.Unmarshal(elem, &fields); jErr != nil {
			return Document{}, fmt.Errorf("%w: %v", apperr.ErrInvalidAIResponse, jErr)
		}
		b := canonicalBlock(fields, contentType)
		b.ID = freshID(reserved, batch)
		batch[b.ID] = struct{}{}
		blocks = append(blocks, b)
	}

	return Document{Standard: &StandardDocument{Blocks: blocks}}, nil
}

// extractPayload strips code-fence markers and slices out the JSON payload:
// earliest of '['/'{' to the latest of ']'/'}'. The wide slice tolerates
// prose before and after the payload, at the cost of being fooled by stray
// brackets inside that prose.
func extractPayload(raw string) (json.RawMessage, error) {
	s := fenceMarker.ReplaceAllString(raw, "")

	start := -1
	for _, marker := range []string{"[", "{"} {
		if i := strings.Index(s, marker); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}
	end := -1
	for _, marker := range []string{"]", "}"} {
		if i := strings.LastIndex(s, marker); i > end {
			end = i
		}
	}
	if start < 0 || end < start {
		return nil, apperr.ErrEmptyAIResponse
	}

	slice := strings.TrimSpace(s[start : end+1])
	if slice == "" {
		return nil, apperr.ErrEmptyAIResponse
	}
	if !json.Valid([]byte(slice)) {
		return nil, apperr.ErrInvalidAIResponse
	}
	return json.RawMessage(slice), nil
}

// candidateBlocks resolves the block list out of the payload: the payload
// itself when it is an array, otherwise its "blocks" field.
func candidateBlocks(payload json.RawMessage) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "[") {
		var elements []json.RawMessage
		if err := json.Unmarshal(payload, &elements); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidAIResponse, err)
		}
		return elements, nil
	}

	var obj struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidAIResponse, err)
	}
	if obj.Blocks == nil {
		return nil, fmt.Errorf("%w: no block list in payload", apperr.ErrInvalidAIResponse)
	}
	return obj.Blocks, nil
}

// canonicalBlock maps one heterogeneous source element onto the canonical
// block schema. Only id, text, extra_1 and type are overwritten; every other
// source field rides along untouched.
func canonicalBlock(fields map[string]json.RawMessage, contentType string) Block {
	b := Block{Color: ColorBlack}

	for _, key := range textFieldSynonyms {
		if s, ok := takeString(fields, key); ok {
			b.Text = s
			break
		}
	}
	for _, key := range extra1FieldSynonyms {
		if s, ok := takeString(fields, key); ok {
			b.Extra1 = s
			break
		}
	}

	if s, ok := takeString(fields, "type"); ok && s != "" {
		b.Type = BlockType(s)
	} else if contentType == TypeTerms {
		b.Type = BlockTermEntry
	} else {
		b.Type = BlockParagraph
	}

	if s, ok := takeString(fields, "color"); ok && s != "" {
		b.Color = Color(s)
	}
	// drop any stale source id; a fresh one is assigned by the caller
	delete(fields, "id")

	if len(fields) > 0 {
		b.Extra = fields
	}
	return b
}

func freshID(reserved, batch map[string]struct{}) string {
	for {
		id := NewBlockID()
		if _, taken := reserved[id]; taken {
			continue
		}
		if _, taken := batch[id]; taken {
			continue
		}
		return id
	}
}

// ReservedIDs collects the block ids already present in a document, for use
// as the reserved set when re-normalizing.
func ReservedIDs(d Document) map[string]struct{} {
	out := make(map[string]struct{})
	if d.Standard != nil {
		for _, b := range d.Standard.Blocks {
			if b.ID != "" {
				out[b.ID] = struct{}{}
			}
		}
	}
	return out
}
