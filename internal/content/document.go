package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	docTypeStandard   = "standard"
	docTypePhilosophy = "philosophy_structured"
)

// StandardDocument is the flat ordered block list variant. bareArray records
// whether the source was the legacy top-level JSON array shape; editing keeps
// the flag, serialization always emits the canonical object form.
type StandardDocument struct {
	VideoURL  string
	Blocks    []Block
	bareArray bool
}

func (d *StandardDocument) LegacyBareArray() bool { return d.bareArray }

func (d *StandardDocument) MarshalJSON() ([]byte, error) {
	blocks := d.Blocks
	if blocks == nil {
		blocks = []Block{}
	}
	out := struct {
		Type     string  `json:"type"`
		VideoURL string  `json:"videoUrl,omitempty"`
		Blocks   []Block `json:"blocks"`
	}{Type: docTypeStandard, VideoURL: d.VideoURL, Blocks: blocks}
	return json.Marshal(out)
}

func (d *StandardDocument) UnmarshalJSON(data []byte) error {
	var in struct {
		VideoURL string  `json:"videoUrl"`
		Blocks   []Block `json:"blocks"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.VideoURL = in.VideoURL
	d.Blocks = in.Blocks
	d.bareArray = false
	return nil
}

type SynthesisType string

const (
	SynthesisTranscending   SynthesisType = "transcending"
	SynthesisPredominance   SynthesisType = "predominance"
	SynthesisReconciliation SynthesisType = "reconciliation"
)

type Philosopher struct {
	Name    string `json:"name"`
	Idea    string `json:"idea"`
	Quote   string `json:"quote,omitempty"`
	Example string `json:"example,omitempty"`
}

type Theory struct {
	Philosophers []Philosopher `json:"philosophers"`
}

type Position struct {
	Title    string   `json:"title"`
	Critique string   `json:"critique,omitempty"`
	Theories []Theory `json:"theories"`
}

// PhilosophyDocument is the structured argumentative essay variant. A valid
// document carries exactly two positions for its whole lifetime.
type PhilosophyDocument struct {
	Type          string        `json:"type"`
	VideoURL      string        `json:"videoUrl,omitempty"`
	Problem       string        `json:"problem"`
	Positions     []Position    `json:"positions"`
	SynthesisType SynthesisType `json:"synthesisType"`
	Synthesis     string        `json:"synthesis"`
	Conclusion    string        `json:"conclusion"`
}

func NewPhilosophyDocument() *PhilosophyDocument {
	return &PhilosophyDocument{
		Type:      docTypePhilosophy,
		Positions: []Position{{Theories: []Theory{}}, {Theories: []Theory{}}},
	}
}

// Document is the tagged union held by the editor: exactly one of the two
// variants is set. The zero Document is "no content".
type Document struct {
	Standard   *StandardDocument
	Philosophy *PhilosophyDocument
}

func (d Document) IsStandard() bool   { return d.Standard != nil }
func (d Document) IsPhilosophy() bool { return d.Philosophy != nil }
func (d Document) IsZero() bool       { return d.Standard == nil && d.Philosophy == nil }

// EmptyDocument is the neutral draft surfaced when stored content is absent
// or unreadable, so the editor stays usable.
func EmptyDocument() Document {
	return Document{Standard: &StandardDocument{Blocks: []Block{}}}
}

// ParseContent reads a persisted content string. It accepts the canonical
// object form, the legacy bare-array form, and the philosophy form. Anything
// unparsable yields an empty neutral document and ok=false rather than an
// error, per the read contract.
func ParseContent(raw string) (Document, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyDocument(), false
	}

	data := []byte(trimmed)
	if bytes.HasPrefix(data, []byte("[")) {
		var blocks []Block
		if err := json.Unmarshal(data, &blocks); err != nil {
			return EmptyDocument(), false
		}
		return Document{Standard: &StandardDocument{Blocks: blocks, bareArray: true}}, true
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return EmptyDocument(), false
	}

	if probe.Type == docTypePhilosophy {
		var doc PhilosophyDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return EmptyDocument(), false
		}
		return Document{Philosophy: &doc}, true
	}

	var doc StandardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return EmptyDocument(), false
	}
	return Document{Standard: &doc}, true
}

// MarshalContent serializes a document into its canonical wire form. The
// legacy bare-array shape is folded into the object form on every save.
func MarshalContent(d Document) (string, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case d.Philosophy != nil:
		doc := *d.Philosophy
		doc.Type = docTypePhilosophy
		data, err = json.Marshal(&doc)
	case d.Standard != nil:
		data, err = json.Marshal(d.Standard)
	default:
		data, err = json.Marshal(&StandardDocument{})
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
