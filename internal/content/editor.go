package content

import "encoding/json"

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// newBlockPlaceholder is the text a freshly added block starts with.
const newBlockPlaceholder = "..."

// UpdateBlock replaces one field of the block with the given id. Unknown ids
// are a silent no-op; unknown fields land in the passthrough map. Ids are
// never reassigned and array order never changes.
func (d *StandardDocument) UpdateBlock(id, field, value string) {
	for i := range d.Blocks {
		if d.Blocks[i].ID != id {
			continue
		}
		b := &d.Blocks[i]
		switch field {
		case "text":
			b.Text = value
		case "extra_1":
			b.Extra1 = value
		case "type":
			b.Type = BlockType(value)
		case "color":
			b.Color = Color(value)
		default:
			raw, err := json.Marshal(value)
			if err != nil {
				return
			}
			if b.Extra == nil {
				b.Extra = make(map[string]json.RawMessage, 1)
			}
			b.Extra[field] = raw
		}
		return
	}
}

// AddBlock appends a fresh paragraph block and returns it. Blocks are always
// appended at the end, never inserted relative to a selection.
func (d *StandardDocument) AddBlock() Block {
	b := Block{
		ID:    NewBlockID(),
		Type:  BlockParagraph,
		Text:  newBlockPlaceholder,
		Color: ColorBlack,
	}
	d.Blocks = append(d.Blocks, b)
	return b
}

// RemoveBlock deletes the block with the given id, keeping the relative order
// of the survivors. Absent ids are a no-op.
func (d *StandardDocument) RemoveBlock(id string) {
	for i := range d.Blocks {
		if d.Blocks[i].ID == id {
			d.Blocks = append(d.Blocks[:i], d.Blocks[i+1:]...)
			return
		}
	}
}

// MoveBlock swaps the block at index with its immediate neighbor. Out-of-range
// indices and boundary moves are no-ops.
func (d *StandardDocument) MoveBlock(index int, direction MoveDirection) {
	if index < 0 || index >= len(d.Blocks) {
		return
	}
	target := index
	switch direction {
	case MoveUp:
		target = index - 1
	case MoveDown:
		target = index + 1
	default:
		return
	}
	if target < 0 || target >= len(d.Blocks) {
		return
	}
	d.Blocks[index], d.Blocks[target] = d.Blocks[target], d.Blocks[index]
}

// UpdateField sets one scalar field of the essay. Unknown fields are a no-op.
func (p *PhilosophyDocument) UpdateField(field, value string) {
	switch field {
	case "problem":
		p.Problem = value
	case "synthesis":
		p.Synthesis = value
	case "conclusion":
		p.Conclusion = value
	case "synthesisType":
		p.SynthesisType = SynthesisType(value)
	case "videoUrl":
		p.VideoURL = value
	}
}

// UpdatePosition sets one field of the position at the given index.
func (p *PhilosophyDocument) UpdatePosition(positionIndex int, field, value string) {
	if positionIndex < 0 || positionIndex >= len(p.Positions) {
		return
	}
	pos := &p.Positions[positionIndex]
	switch field {
	case "title":
		pos.Title = value
	case "critique":
		pos.Critique = value
	}
}

func (p *PhilosophyDocument) theory(positionIndex, theoryIndex int) *Theory {
	if positionIndex < 0 || positionIndex >= len(p.Positions) {
		return nil
	}
	pos := &p.Positions[positionIndex]
	if theoryIndex < 0 || theoryIndex >= len(pos.Theories) {
		return nil
	}
	return &pos.Theories[theoryIndex]
}

// UpdatePhilosopher sets one field of a philosopher addressed by its full
// path. Philosophers have no identity outside their containing theory, so
// everything is index-scoped.
func (p *PhilosophyDocument) UpdatePhilosopher(positionIndex, theoryIndex, philosopherIndex int, field, value string) {
	th := p.theory(positionIndex, theoryIndex)
	if th == nil || philosopherIndex < 0 || philosopherIndex >= len(th.Philosophers) {
		return
	}
	ph := &th.Philosophers[philosopherIndex]
	switch field {
	case "name":
		ph.Name = value
	case "idea":
		ph.Idea = value
	case "quote":
		ph.Quote = value
	case "example":
		ph.Example = value
	}
}

// AddPhilosopher appends an empty philosopher to the addressed theory.
// Always an append, never an insert.
func (p *PhilosophyDocument) AddPhilosopher(positionIndex, theoryIndex int) {
	th := p.theory(positionIndex, theoryIndex)
	if th == nil {
		return
	}
	th.Philosophers = append(th.Philosophers, Philosopher{})
}

// RemovePhilosopher deletes the philosopher at the addressed path.
func (p *PhilosophyDocument) RemovePhilosopher(positionIndex, theoryIndex, philosopherIndex int) {
	th := p.theory(positionIndex, theoryIndex)
	if th == nil || philosopherIndex < 0 || philosopherIndex >= len(th.Philosophers) {
		return
	}
	th.Philosophers = append(th.Philosophers[:philosopherIndex], th.Philosophers[philosopherIndex+1:]...)
}
