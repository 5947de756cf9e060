package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/logger"
	"github.com/custodia-labs/curata/internal/normalisers/response"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService sends prompts to the model and appends the parsed posts
// to the unpublished collection.
type IngestService struct {
	lifecycle   driving.LifecycleService
	prompts     driving.PromptService
	llm         driven.LLMService
	promptStore driven.PromptStore
	promptLog   driven.PromptLog
	history     driven.SubmissionStore
	maxTokens   int
	now         func() time.Time
}

// NewIngestService creates a new ingest service.
// The llm is optional: when nil, Submit fails with domain.ErrLLMUnavailable
// but Import keeps working. The history store is optional.
func NewIngestService(
	lifecycle driving.LifecycleService,
	prompts driving.PromptService,
	llm driven.LLMService,
	promptStore driven.PromptStore,
	promptLog driven.PromptLog,
	history driven.SubmissionStore,
	maxTokens int,
) *IngestService {
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}
	return &IngestService{
		lifecycle:   lifecycle,
		prompts:     prompts,
		llm:         llm,
		promptStore: promptStore,
		promptLog:   promptLog,
		history:     history,
		maxTokens:   maxTokens,
		now:         time.Now,
	}
}

// Submit builds the named catalogue prompt and ingests the model's reply.
func (s *IngestService) Submit(ctx context.Context, promptName string) (*driving.IngestResult, error) {
	if s.prompts == nil {
		return nil, fmt.Errorf("%w: prompt catalogue not configured", domain.ErrInvalidInput)
	}
	text, err := s.prompts.BuildPrompt(ctx, promptName)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, promptName, text)
}

// SubmitText sends free prompt text to the model and ingests the reply.
func (s *IngestService) SubmitText(ctx context.Context, prompt string) (*driving.IngestResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is empty", domain.ErrInvalidInput)
	}
	return s.submit(ctx, "", prompt)
}

// Import ingests response text obtained out of band.
func (s *IngestService) Import(ctx context.Context, raw string) (*driving.IngestResult, error) {
	sub := domain.Submission{
		ID:        uuid.New().String(),
		Response:  raw,
		CreatedAt: s.now(),
	}
	result, err := s.ingest(ctx, raw)
	s.record(ctx, &sub, result, err)
	if result != nil {
		result.SubmissionID = sub.ID
	}
	return result, err
}

func (s *IngestService) submit(ctx context.Context, promptName, text string) (*driving.IngestResult, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	sub := domain.Submission{
		ID:         uuid.New().String(),
		PromptName: promptName,
		Prompt:     text,
		CreatedAt:  s.now(),
	}

	if s.promptLog != nil {
		if err := s.promptLog.Append(ctx, text); err != nil {
			logger.Error("append prompt log: %v", err)
		}
	}

	system, err := s.systemPrompt()
	if err != nil {
		return nil, err
	}

	logger.Section("Generate")
	logger.Debug("model: %s, max tokens: %d", s.llm.ModelName(), s.maxTokens)
	raw, err := s.llm.Complete(ctx, system, text, driven.CompleteOptions{MaxTokens: s.maxTokens})
	if err != nil {
		logger.Error("model request failed: %v", err)
		s.record(ctx, &sub, nil, err)
		return nil, err
	}
	logger.Debug("model response: %s", raw)

	sub.Response = raw
	result, err := s.ingest(ctx, raw)
	s.record(ctx, &sub, result, err)
	if result != nil {
		result.SubmissionID = sub.ID
		result.Prompt = text
	}
	return result, err
}

// ingest sanitises and parses raw, then appends every accepted post.
// A malformed batch appends nothing. Persistence failures do not stop the
// remaining posts from being appended in memory.
func (s *IngestService) ingest(ctx context.Context, raw string) (*driving.IngestResult, error) {
	parsed, err := response.Parse(response.Sanitize(raw))
	if err != nil {
		var malformed *domain.MalformedResponseError
		if errors.As(err, &malformed) {
			malformed.Raw = raw
		}
		logger.Warn("discarding malformed response: %v", err)
		return nil, err
	}

	for _, rej := range parsed.Rejections {
		logger.Warn("skipped response entry %d: %s", rej.Index, rej.Reason)
	}

	var persistErr error
	for _, post := range parsed.Posts {
		if err := s.lifecycle.Create(ctx, post); err != nil {
			if !errors.Is(err, domain.ErrPersistence) {
				return nil, err
			}
			persistErr = err
		}
	}
	logger.Info("ingested %d posts, rejected %d entries", len(parsed.Posts), len(parsed.Rejections))

	return &driving.IngestResult{
		Raw:        raw,
		Posts:      parsed.Posts,
		Rejections: parsed.Rejections,
	}, persistErr
}

func (s *IngestService) systemPrompt() (string, error) {
	if s.promptStore == nil {
		return "", errors.New("prompt store not configured")
	}
	system, err := s.promptStore.Load(driven.PromptGenerateSystem)
	if err != nil {
		return "", fmt.Errorf("load system prompt: %w", err)
	}
	return system, nil
}

// record saves the submission to history. Failures are logged, not returned.
func (s *IngestService) record(ctx context.Context, sub *domain.Submission, result *driving.IngestResult, err error) {
	if s.history == nil {
		return
	}
	if result != nil {
		sub.Accepted = len(result.Posts)
		sub.Rejections = result.Rejections
	}
	if err != nil {
		sub.Error = err.Error()
	}
	if saveErr := s.history.Save(ctx, *sub); saveErr != nil {
		logger.Error("record submission %s: %v", sub.ID, saveErr)
	}
}
