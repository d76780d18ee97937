package content

import (
	"encoding/json"

	"github.com/google/uuid"
)

type BlockType string

const (
	BlockTitle     BlockType = "title"
	BlockSubtitle  BlockType = "subtitle"
	BlockParagraph BlockType = "paragraph"
	BlockTermEntry BlockType = "term_entry"
	BlockDateEntry BlockType = "date_entry"
	BlockCharEntry BlockType = "char_entry"
)

type Color string

const (
	ColorBlack  Color = "black"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorIndigo Color = "indigo"
)

// Block is one typed content unit of a standard document. Extra carries any
// source fields the canonical schema does not own, so unknown fields survive
// a read/normalize/write cycle.
type Block struct {
	ID     string
	Type   BlockType
	Text   string
	Extra1 string
	Color  Color
	Extra  map[string]json.RawMessage
}

// NewBlockID returns a fresh block identifier.
func NewBlockID() string {
	return uuid.NewString()
}

func (b Block) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(b.Extra)+5)
	for k, v := range b.Extra {
		m[k] = v
	}
	color := b.Color
	if color == "" {
		color = ColorBlack
	}
	var err error
	if m["id"], err = json.Marshal(b.ID); err != nil {
		return nil, err
	}
	if m["type"], err = json.Marshal(b.Type); err != nil {
		return nil, err
	}
	if m["text"], err = json.Marshal(b.Text); err != nil {
		return nil, err
	}
	if m["color"], err = json.Marshal(color); err != nil {
		return nil, err
	}
	if b.Extra1 != "" {
		if m["extra_1"], err = json.Marshal(b.Extra1); err != nil {
			return nil, err
		}
	} else {
		delete(m, "extra_1")
	}
	return json.Marshal(m)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*b = blockFromFields(m)
	return nil
}

// blockFromFields consumes the canonical keys out of m and keeps the rest as
// passthrough. Non-string values under canonical keys are left in place.
func blockFromFields(m map[string]json.RawMessage) Block {
	b := Block{Color: ColorBlack, Extra: m}
	if s, ok := takeString(m, "id"); ok {
		b.ID = s
	}
	if s, ok := takeString(m, "type"); ok {
		b.Type = BlockType(s)
	}
	if s, ok := takeString(m, "text"); ok {
		b.Text = s
	}
	if s, ok := takeString(m, "extra_1"); ok {
		b.Extra1 = s
	}
	if s, ok := takeString(m, "color"); ok && s != "" {
		b.Color = Color(s)
	}
	if len(b.Extra) == 0 {
		b.Extra = nil
	}
	return b
}

func takeString(m map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	delete(m, key)
	return s, true
}
