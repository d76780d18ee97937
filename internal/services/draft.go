package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/noorstudy/noorstudy-backend/internal/content"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

// DraftService owns the in-memory working drafts, one per (author, section).
// A draft belongs to the editor until it is saved as a lesson; generation
// replaces it wholesale, editor operations refine it in place.
type DraftService interface {
	Get(authorID uuid.UUID, key content.SectionKey) content.Document
	Set(authorID uuid.UUID, key content.SectionKey, doc content.Document)

	// Generate runs the generative pipeline and replaces the draft on
	// success. While one generation is in flight for a draft, further ones
	// are rejected with ErrBusy. On failure the previous draft is untouched.
	Generate(ctx context.Context, authorID uuid.UUID, key content.SectionKey, pastedText string) (content.Document, error)
	GenerateFromImage(ctx context.Context, authorID uuid.UUID, key content.SectionKey, imageBytes []byte, imageMime string) (content.Document, error)

	AddBlock(authorID uuid.UUID, key content.SectionKey) (content.Document, error)
	UpdateBlock(authorID uuid.UUID, key content.SectionKey, blockID, field, value string) (content.Document, error)
	RemoveBlock(authorID uuid.UUID, key content.SectionKey, blockID string) (content.Document, error)
	MoveBlock(authorID uuid.UUID, key content.SectionKey, index int, direction content.MoveDirection) (content.Document, error)

	UpdateEssayField(authorID uuid.UUID, key content.SectionKey, field, value string) (content.Document, error)
	UpdatePosition(authorID uuid.UUID, key content.SectionKey, positionIndex int, field, value string) (content.Document, error)
	UpdatePhilosopher(authorID uuid.UUID, key content.SectionKey, positionIndex, theoryIndex, philosopherIndex int, field, value string) (content.Document, error)
	AddPhilosopher(authorID uuid.UUID, key content.SectionKey, positionIndex, theoryIndex int) (content.Document, error)
	RemovePhilosopher(authorID uuid.UUID, key content.SectionKey, positionIndex, theoryIndex, philosopherIndex int) (content.Document, error)
}

type draftSession struct {
	mu  sync.Mutex
	doc content.Document
	// generating is the per-draft busy flag: a loading guard, not a lock on
	// the draft itself.
	generating atomic.Bool
}

type draftService struct {
	log *logger.Logger
	gen GenerationService

	mu       sync.Mutex
	sessions map[string]*draftSession
}

func NewDraftService(log *logger.Logger, gen GenerationService) DraftService {
	return &draftService{
		log:      log.With("service", "DraftService"),
		gen:      gen,
		sessions: make(map[string]*draftSession),
	}
}

func (s *draftService) session(authorID uuid.UUID, key content.SectionKey) *draftSession {
	id := authorID.String() + "|" + key.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &draftSession{doc: emptyDraftFor(key)}
		s.sessions[id] = sess
	}
	return sess
}

func emptyDraftFor(key content.SectionKey) content.Document {
	if key.ContentType == content.TypePhilosophy {
		return content.Document{Philosophy: content.NewPhilosophyDocument()}
	}
	return content.EmptyDocument()
}

func (s *draftService) Get(authorID uuid.UUID, key content.SectionKey) content.Document {
	sess := s.session(authorID, key)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc
}

func (s *draftService) Set(authorID uuid.UUID, key content.SectionKey, doc content.Document) {
	sess := s.session(authorID, key)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if doc.IsZero() {
		doc = emptyDraftFor(key)
	}
	sess.doc = doc
}

func (s *draftService) Generate(ctx context.Context, authorID uuid.UUID, key content.SectionKey, pastedText string) (content.Document, error) {
	return s.generate(ctx, authorID, key, func(reserved map[string]struct{}) (content.Document, error) {
		return s.gen.GenerateFromText(ctx, key, pastedText, reserved)
	})
}

func (s *draftService) GenerateFromImage(ctx context.Context, authorID uuid.UUID, key content.SectionKey, imageBytes []byte, imageMime string) (content.Document, error) {
	return s.generate(ctx, authorID, key, func(reserved map[string]struct{}) (content.Document, error) {
		return s.gen.GenerateFromImage(ctx, key, imageBytes, imageMime, reserved)
	})
}

func (s *draftService) generate(_ context.Context, authorID uuid.UUID, key content.SectionKey, run func(reserved map[string]struct{}) (content.Document, error)) (content.Document, error) {
	sess := s.session(authorID, key)

	if !sess.generating.CompareAndSwap(false, true) {
		return content.Document{}, fmt.Errorf("%w: generation pending for this draft", apperr.ErrBusy)
	}
	defer sess.generating.Store(false)

	sess.mu.Lock()
	reserved := content.ReservedIDs(sess.doc)
	sess.mu.Unlock()

	doc, err := run(reserved)
	if err != nil {
		// previous draft stays untouched
		return content.Document{}, err
	}

	sess.mu.Lock()
	sess.doc = doc
	sess.mu.Unlock()
	return doc, nil
}

// withStandard applies op to the draft when it is the block-list variant;
// philosophy drafts are left unchanged, mirroring the block operations'
// block-list-only contract.
func (s *draftService) withStandard(authorID uuid.UUID, key content.SectionKey, op func(*content.StandardDocument)) (content.Document, error) {
	sess := s.session(authorID, key)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.doc.Standard != nil {
		op(sess.doc.Standard)
	}
	return sess.doc, nil
}

func (s *draftService) withPhilosophy(authorID uuid.UUID, key content.SectionKey, op func(*content.PhilosophyDocument)) (content.Document, error) {
	sess := s.session(authorID, key)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.doc.Philosophy != nil {
		op(sess.doc.Philosophy)
	}
	return sess.doc, nil
}

func (s *draftService) AddBlock(authorID uuid.UUID, key content.SectionKey) (content.Document, error) {
	return s.withStandard(authorID, key, func(d *content.StandardDocument) {
		d.AddBlock()
	})
}

func (s *draftService) UpdateBlock(authorID uuid.UUID, key content.SectionKey, blockID, field, value string) (content.Document, error) {
	return s.withStandard(authorID, key, func(d *content.StandardDocument) {
		d.UpdateBlock(blockID, field, value)
	})
}

func (s *draftService) RemoveBlock(authorID uuid.UUID, key content.SectionKey, blockID string) (content.Document, error) {
	return s.withStandard(authorID, key, func(d *content.StandardDocument) {
		d.RemoveBlock(blockID)
	})
}

func (s *draftService) MoveBlock(authorID uuid.UUID, key content.SectionKey, index int, direction content.MoveDirection) (content.Document, error) {
	return s.withStandard(authorID, key, func(d *content.StandardDocument) {
		d.MoveBlock(index, direction)
	})
}

func (s *draftService) UpdateEssayField(authorID uuid.UUID, key content.SectionKey, field, value string) (content.Document, error) {
	return s.withPhilosophy(authorID, key, func(p *content.PhilosophyDocument) {
		p.UpdateField(field, value)
	})
}

func (s *draftService) UpdatePosition(authorID uuid.UUID, key content.SectionKey, positionIndex int, field, value string) (content.Document, error) {
	return s.withPhilosophy(authorID, key, func(p *content.PhilosophyDocument) {
		p.UpdatePosition(positionIndex, field, value)
	})
}

func (s *draftService) UpdatePhilosopher(authorID uuid.UUID, key content.SectionKey, positionIndex, theoryIndex, philosopherIndex int, field, value string) (content.Document, error) {
	return s.withPhilosophy(authorID, key, func(p *content.PhilosophyDocument) {
		p.UpdatePhilosopher(positionIndex, theoryIndex, philosopherIndex, field, value)
	})
}

func (s *draftService) AddPhilosopher(authorID uuid.UUID, key content.SectionKey, positionIndex, theoryIndex int) (content.Document, error) {
	return s.withPhilosophy(authorID, key, func(p *content.PhilosophyDocument) {
		p.AddPhilosopher(positionIndex, theoryIndex)
	})
}

func (s *draftService) RemovePhilosopher(authorID uuid.UUID, key content.SectionKey, positionIndex, theoryIndex, philosopherIndex int) (content.Document, error) {
	return s.withPhilosophy(authorID, key, func(p *content.PhilosophyDocument) {
		p.RemovePhilosopher(positionIndex, theoryIndex, philosopherIndex)
	})
}
