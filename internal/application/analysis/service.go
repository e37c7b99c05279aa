package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/anjarmara/skinsight/internal/application"
	"github.com/anjarmara/skinsight/internal/domain/ai"
	domain "github.com/anjarmara/skinsight/internal/domain/analysis"
	"github.com/anjarmara/skinsight/internal/domain/users"
)

// ErrEmptyIngredients rejects blank ingredient text before any model call.
var ErrEmptyIngredients = errors.New("ingredients text cannot be empty")

// LabelStore archives uploaded label photos. Archival is best-effort; the
// analysis must not depend on it.
type LabelStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the analysis use-cases: text analysis, image analysis
// and history. Safe for concurrent use.
type Service struct {
	Analyses  domain.Repository
	Users     users.Repository
	Analyzer  ai.TextAnalyzer
	Extractor ai.VisionExtractor
	Labels    LabelStore // optional
	Clock     application.Clock
}

// Analyze resolves the user, runs the text analysis (which always yields a
// result, possibly the fallback) and persists one record. The stored
// ingredient list is the verbatim comma split of the input, not the
// normalized list used for prompting.
func (s *Service) Analyze(ctx context.Context, username, ingredientsText, productName string) (*domain.Analysis, error) {
	return s.analyze(ctx, username, ingredientsText, productName, "")
}

// AnalyzeImage extracts the ingredient list from a label photo first, then
// runs the same pipeline as Analyze. Extraction failures propagate; nothing
// is persisted in that case.
func (s *Service) AnalyzeImage(ctx context.Context, username string, image []byte, contentType, productName string) (*domain.Analysis, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ai.ErrExtractionFailed)
	}

	ingredientsText, err := s.Extractor.ExtractIngredients(ctx, image, contentType)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if s.Labels != nil {
		key := fmt.Sprintf("%s/%s%s", username, uuid.New().String(), extFromContentType(contentType))
		url, err := s.Labels.Put(ctx, key, image, contentType)
		if err != nil {
			log.Printf("label archive failed for user=%s: %v", username, err)
		} else {
			imageURL = url
		}
	}

	return s.analyze(ctx, username, ingredientsText, productName, imageURL)
}

func (s *Service) analyze(ctx context.Context, username, ingredientsText, productName, imageURL string) (*domain.Analysis, error) {
	if strings.TrimSpace(ingredientsText) == "" {
		return nil, ErrEmptyIngredients
	}

	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// Raw list for storage: verbatim comma split, no trimming or dedupe.
	rawIngredients := strings.Split(ingredientsText, ",")

	result := s.Analyzer.AnalyzeIngredients(ctx, ingredientsText)
	safetyScore := result.SafetyScore()

	ingredientsJSON, err := json.Marshal(rawIngredients)
	if err != nil {
		return nil, fmt.Errorf("serialize ingredients: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("serialize analysis: %w", err)
	}

	a := &domain.Analysis{
		ID:          domain.AnalysisID(uuid.New().String()),
		UserID:      string(user.ID),
		Username:    user.Username,
		Ingredients: string(ingredientsJSON),
		Result:      string(resultJSON),
		SafetyScore: safetyScore,
		ProductName: productName,
		ImageURL:    imageURL,
		CreatedAt:   s.Clock.Now(),
	}
	if err := s.Analyses.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// History returns the user's analyses newest first.
func (s *Service) History(ctx context.Context, username string) ([]*domain.Analysis, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Analyses.ListByUser(ctx, string(user.ID))
}

func extFromContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
