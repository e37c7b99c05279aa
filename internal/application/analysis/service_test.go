package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjarmara/skinsight/internal/domain/ai"
	domain "github.com/anjarmara/skinsight/internal/domain/analysis"
	"github.com/anjarmara/skinsight/internal/domain/users"
)

type fakeUserRepo struct {
	byName map[string]*users.User
}

func (f *fakeUserRepo) Save(_ context.Context, u *users.User) error {
	f.byName[u.Username] = u
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*users.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

type fakeAnalysisRepo struct {
	saved   []*domain.Analysis
	saveErr error
}

func (f *fakeAnalysisRepo) Save(_ context.Context, a *domain.Analysis) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeAnalysisRepo) ListByUser(_ context.Context, userID string) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for _, a := range f.saved {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// failingAnalyzer simulates an unreachable model: the client contract says
// it degrades to the fallback result instead of erroring.
type failingAnalyzer struct{}

func (failingAnalyzer) AnalyzeIngredients(_ context.Context, ingredientsText string) domain.Result {
	return domain.Fallback(ingredientsText)
}

type fixedAnalyzer struct {
	result domain.Result
}

func (a fixedAnalyzer) AnalyzeIngredients(context.Context, string) domain.Result {
	return a.result
}

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) ExtractIngredients(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(analyzer ai.TextAnalyzer, extractor ai.VisionExtractor) (*Service, *fakeAnalysisRepo) {
	repo := &fakeAnalysisRepo{}
	svc := &Service{
		Analyses: repo,
		Users: &fakeUserRepo{byName: map[string]*users.User{
			"alice": {ID: "u-1", Username: "alice"},
		}},
		Analyzer:  analyzer,
		Extractor: extractor,
		Clock:     fixedClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	return svc, repo
}

func TestAnalyzeWithModelFailure(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, nil)

	a, err := svc.Analyze(context.Background(), "alice", "Water, WATER, Alcohol", "Cleanser")
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	assert.InDelta(t, 0.5, a.SafetyScore, 1e-9)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "u-1", a.UserID)
	assert.Equal(t, "Cleanser", a.ProductName)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, svc.Clock.Now(), a.CreatedAt)

	// Stored raw list is the verbatim comma split, untouched by prompt
	// normalization.
	var raw []string
	require.NoError(t, json.Unmarshal([]byte(a.Ingredients), &raw))
	assert.Equal(t, []string{"Water", " WATER", " Alcohol"}, raw)

	var result domain.Result
	require.NoError(t, json.Unmarshal([]byte(a.Result), &result))
	require.Len(t, result.Ingredients, 3)
	for _, v := range result.Ingredients {
		assert.Equal(t, domain.ClassificationNeutral, v.Classification)
	}
	assert.Equal(t, 5, result.OverallRating)
}

func TestAnalyzeScoreDerivation(t *testing.T) {
	for _, tt := range []struct {
		rating int
		score  float64
	}{
		{rating: 7, score: 0.7},
		{rating: 10, score: 1.0},
		{rating: 1, score: 0.1},
	} {
		svc, _ := newTestService(fixedAnalyzer{result: domain.Result{OverallRating: tt.rating}}, nil)
		a, err := svc.Analyze(context.Background(), "alice", "water", "")
		require.NoError(t, err)
		assert.InDelta(t, tt.score, a.SafetyScore, 1e-9)
	}
}

func TestAnalyzeUnknownUser(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, nil)

	_, err := svc.Analyze(context.Background(), "mallory", "water", "")
	assert.ErrorIs(t, err, users.ErrNotFound)
	assert.Empty(t, repo.saved)
}

func TestAnalyzeEmptyIngredients(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, nil)

	_, err := svc.Analyze(context.Background(), "alice", "   ", "")
	assert.ErrorIs(t, err, ErrEmptyIngredients)
	assert.Empty(t, repo.saved)
}

func TestAnalyzeNotIdempotent(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, nil)

	a1, err := svc.Analyze(context.Background(), "alice", "water", "")
	require.NoError(t, err)
	a2, err := svc.Analyze(context.Background(), "alice", "water", "")
	require.NoError(t, err)

	assert.NotEqual(t, a1.ID, a2.ID)
	assert.Len(t, repo.saved, 2)
}

func TestAnalyzeImage(t *testing.T) {
	svc, repo := newTestService(
		fixedAnalyzer{result: domain.Result{OverallRating: 8, Summary: "fine"}},
		fakeExtractor{text: "water, niacinamide"},
	)

	a, err := svc.AnalyzeImage(context.Background(), "alice", []byte{0xFF, 0xD8}, "image/jpeg", "Serum")
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	var raw []string
	require.NoError(t, json.Unmarshal([]byte(a.Ingredients), &raw))
	assert.Equal(t, []string{"water", " niacinamide"}, raw)
	assert.InDelta(t, 0.8, a.SafetyScore, 1e-9)
}

func TestAnalyzeImageExtractionFailure(t *testing.T) {
	extractErr := fmt.Errorf("%w: content is not a JSON array", ai.ErrExtractionFailed)
	svc, repo := newTestService(failingAnalyzer{}, fakeExtractor{err: extractErr})

	_, err := svc.AnalyzeImage(context.Background(), "alice", []byte{0x01}, "image/png", "")
	assert.ErrorIs(t, err, ai.ErrExtractionFailed)
	// No record persisted when extraction fails.
	assert.Empty(t, repo.saved)
}

func TestAnalyzeImageEmptyBytes(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, fakeExtractor{text: "water"})

	_, err := svc.AnalyzeImage(context.Background(), "alice", nil, "image/png", "")
	assert.ErrorIs(t, err, ai.ErrExtractionFailed)
	assert.Empty(t, repo.saved)
}

func TestAnalyzeImageEmptyExtraction(t *testing.T) {
	// A valid-but-empty array from the vision model yields blank text,
	// rejected before the text analysis runs.
	svc, repo := newTestService(failingAnalyzer{}, fakeExtractor{text: ""})

	_, err := svc.AnalyzeImage(context.Background(), "alice", []byte{0x01}, "image/png", "")
	assert.ErrorIs(t, err, ErrEmptyIngredients)
	assert.Empty(t, repo.saved)
}

func TestHistoryOrdering(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, nil)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		repo.saved = append(repo.saved, &domain.Analysis{
			ID:        domain.AnalysisID(name),
			UserID:    "u-1",
			Username:  "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	list, err := svc.History(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.AnalysisID("third"), list[0].ID)
	assert.Equal(t, domain.AnalysisID("second"), list[1].ID)
	assert.Equal(t, domain.AnalysisID("first"), list[2].ID)
}

func TestHistoryUnknownUser(t *testing.T) {
	svc, _ := newTestService(failingAnalyzer{}, nil)

	_, err := svc.History(context.Background(), "mallory")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestAnalyzeSaveFailure(t *testing.T) {
	svc, repo := newTestService(failingAnalyzer{}, nil)
	repo.saveErr = errors.New("db down")

	_, err := svc.Analyze(context.Background(), "alice", "water", "")
	assert.Error(t, err)
}
