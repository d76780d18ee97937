package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/noorstudy/noorstudy-backend/internal/clients/openai"
	"github.com/noorstudy/noorstudy-backend/internal/content"
	"github.com/noorstudy/noorstudy-backend/internal/pkg/apperr"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

// GenerationService runs the generative pipeline: fixed prompt by content
// type, one completion call, then normalization into a canonical document.
// It never partially applies: the returned document is whole or the error is.
type GenerationService interface {
	GenerateFromText(ctx context.Context, key content.SectionKey, pastedText string, reserved map[string]struct{}) (content.Document, error)
	// GenerateFromImage is the photographed-page variant used by the laws
	// content type. From the completion response onward the path is identical
	// to GenerateFromText.
	GenerateFromImage(ctx context.Context, key content.SectionKey, imageBytes []byte, imageMime string, reserved map[string]struct{}) (content.Document, error)
}

type generationService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewGenerationService(log *logger.Logger, ai openai.Client) GenerationService {
	return &generationService{
		log: log.With("service", "GenerationService"),
		ai:  ai,
	}
}

func (s *generationService) GenerateFromText(ctx context.Context, key content.SectionKey, pastedText string, reserved map[string]struct{}) (content.Document, error) {
	if strings.TrimSpace(pastedText) == "" {
		return content.Document{}, fmt.Errorf("%w: pasted text required", apperr.ErrValidation)
	}
	prompt, ok := buildPrompt(key.ContentType, pastedText)
	if !ok {
		return content.Document{}, fmt.Errorf("%w: no prompt for content type %q", apperr.ErrValidation, key.ContentType)
	}

	raw, err := s.ai.GenerateText(ctx, promptSystem, prompt)
	if err != nil {
		s.log.Warn("completion call failed", "section", key.String(), "error", err)
		return content.Document{}, fmt.Errorf("completion: %w", err)
	}

	doc, err := content.Normalize(raw, key.ContentType, reserved)
	if err != nil {
		s.log.Warn("normalization failed", "section", key.String(), "error", err)
		return content.Document{}, err
	}
	return doc, nil
}

func (s *generationService) GenerateFromImage(ctx context.Context, key content.SectionKey, imageBytes []byte, imageMime string, reserved map[string]struct{}) (content.Document, error) {
	if len(imageBytes) == 0 {
		return content.Document{}, fmt.Errorf("%w: image required", apperr.ErrValidation)
	}
	if imageMime == "" {
		imageMime = "image/jpeg"
	}
	prompt, ok := buildPrompt(key.ContentType, "")
	if !ok {
		return content.Document{}, fmt.Errorf("%w: no prompt for content type %q", apperr.ErrValidation, key.ContentType)
	}

	raw, err := s.ai.GenerateTextWithImages(ctx, promptSystem, prompt, []openai.ImageInput{
		{ImageURL: openai.DataURL(imageMime, imageBytes), Detail: "high"},
	})
	if err != nil {
		s.log.Warn("image completion call failed", "section", key.String(), "error", err)
		return content.Document{}, fmt.Errorf("completion: %w", err)
	}

	doc, err := content.Normalize(raw, key.ContentType, reserved)
	if err != nil {
		s.log.Warn("normalization failed", "section", key.String(), "error", err)
		return content.Document{}, err
	}
	return doc, nil
}
