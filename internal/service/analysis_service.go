//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"citypulse/backend/internal/langdetect"
	"citypulse/backend/internal/model"
	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/sentiment"
	"citypulse/backend/pkg/logger"
)

const (
	// maxConcurrentReanalysis bounds parallel re-scoring so a large backlog
	// cannot flood the translation provider.
	maxConcurrentReanalysis = 4
	// pendingBatchSize caps how many pending comments one retry pass picks up.
	pendingBatchSize = 50
)

var ErrAnalysisRunning = errors.New("analysis already running")

type AnalysisService interface {
	// ReanalyzeAll re-detects, re-translates and re-scores every stored
	// comment in the background, returning the id of the tracking task.
	ReanalyzeAll(ctx context.Context) (string, error)
	// ReanalyzePending retries translation for comments stored before a
	// provider was configured. It runs synchronously and returns how many
	// comments were brought up to date.
	ReanalyzePending(ctx context.Context) (int, error)
}

type analysisService struct {
	comments   repository.CommentRepository
	translator TranslationService
	scorer     sentiment.Scorer
	tasks      TaskService
	mu         sync.Mutex
	isRunning  bool
}

func NewAnalysisService(comments repository.CommentRepository, translator TranslationService, scorer sentiment.Scorer, tasks TaskService) AnalysisService {
	return &analysisService{
		comments:   comments,
		translator: translator,
		scorer:     scorer,
		tasks:      tasks,
	}
}

func (s *analysisService) ReanalyzeAll(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return "", ErrAnalysisRunning
	}
	s.isRunning = true
	s.mu.Unlock()

	comments, err := s.comments.List(ctx, repository.CommentListFilter{})
	if err != nil {
		s.setRunning(false)
		return "", fmt.Errorf("list comments: %w", err)
	}

	id, taskCtx := s.tasks.Start(len(comments))
	logger.Info("reanalysis started", "module", "service", "action", "reanalyze", "resource", "comment", "result", "ok", "count", len(comments))

	go s.run(taskCtx, comments)

	return id, nil
}

func (s *analysisService) run(ctx context.Context, comments []model.Comment) {
	defer s.setRunning(false)

	sem := semaphore.NewWeighted(maxConcurrentReanalysis)

	var (
		mu     sync.Mutex
		result TaskResult
		done   int
		wg     sync.WaitGroup
	)

	for _, comment := range comments {
		if ctx.Err() != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		wg.Add(1)
		go func(comment model.Comment) {
			defer wg.Done()
			defer sem.Release(1)

			outcome, err := s.reanalyze(ctx, comment)

			mu.Lock()
			defer mu.Unlock()
			done++
			s.tasks.Update(done, snippet(comment.Text))
			if err != nil {
				if ctx.Err() == nil {
					result.Failed++
					logger.Warn("comment reanalysis failed", "module", "service", "action", "reanalyze", "resource", "comment", "result", "failed", "id", comment.ID, "error", err)
				}
				return
			}
			result.Processed++
			if outcome.translated {
				result.Translated++
			}
			if outcome.relabeled {
				result.Relabeled++
			}
		}(comment)
	}

	wg.Wait()

	if ctx.Err() != nil {
		logger.Info("reanalysis cancelled", "module", "service", "action", "reanalyze", "resource", "comment", "result", "cancelled", "processed", result.Processed)
		return
	}

	s.tasks.Complete(result)
	logger.Info("reanalysis completed", "module", "service", "action", "reanalyze", "resource", "comment", "result", "ok", "processed", result.Processed, "translated", result.Translated, "relabeled", result.Relabeled, "failed", result.Failed)
}

func (s *analysisService) ReanalyzePending(ctx context.Context) (int, error) {
	if s.translator == nil || !s.translator.Configured(ctx) {
		return 0, nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return 0, ErrAnalysisRunning
	}
	s.isRunning = true
	s.mu.Unlock()
	defer s.setRunning(false)

	pending, err := s.comments.ListPending(ctx, pendingBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending comments: %w", err)
	}

	processed := 0
	for _, comment := range pending {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if _, err := s.reanalyze(ctx, comment); err != nil {
			logger.Warn("pending comment retry failed", "module", "service", "action", "reanalyze", "resource", "comment", "result", "failed", "id", comment.ID, "error", err)
			continue
		}
		processed++
	}

	if processed > 0 {
		logger.Info("pending comments reanalyzed", "module", "service", "action", "reanalyze", "resource", "comment", "result", "ok", "count", processed)
	}
	return processed, nil
}

type reanalyzeOutcome struct {
	translated bool
	relabeled  bool
}

func (s *analysisService) reanalyze(ctx context.Context, comment model.Comment) (reanalyzeOutcome, error) {
	var outcome reanalyzeOutcome

	lang, _ := langdetect.Detect(comment.Text)

	translatedText := comment.TranslatedText
	pending := false
	scoreText := comment.Text

	if langdetect.NeedsTranslation(lang) {
		switch {
		case translatedText != nil && *translatedText != "":
			scoreText = *translatedText
		case s.translator != nil && s.translator.Configured(ctx):
			translated, err := s.translator.Translate(ctx, comment.Text)
			if err != nil {
				return outcome, fmt.Errorf("translate comment %d: %w", comment.ID, err)
			}
			translatedText = &translated
			scoreText = translated
			outcome.translated = true
		default:
			pending = true
		}
	} else {
		// Re-detection says the text is already English; drop any stale
		// translation so scores come from the original.
		translatedText = nil
	}

	scores := s.scorer.Score(scoreText)
	label := sentiment.Classify(scores.Compound)
	outcome.relabeled = label != comment.Label

	update := repository.AnalysisUpdate{
		TranslatedText:     translatedText,
		Language:           lang,
		ScoreNegative:      scores.Negative,
		ScoreNeutral:       scores.Neutral,
		ScorePositive:      scores.Positive,
		ScoreCompound:      scores.Compound,
		Label:              label,
		TranslationPending: pending,
	}
	if err := s.comments.UpdateAnalysis(ctx, comment.ID, update); err != nil {
		return outcome, fmt.Errorf("update comment %d: %w", comment.ID, err)
	}
	return outcome, nil
}

func (s *analysisService) setRunning(v bool) {
	s.mu.Lock()
	s.isRunning = v
	s.mu.Unlock()
}

// snippet truncates text for progress display.
func snippet(text string) string {
	const max = 60
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
