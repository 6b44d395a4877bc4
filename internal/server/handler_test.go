package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/models"
)

type fakeAnalyzer struct {
	result *models.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(request.Text) == "" {
		return nil, analysis.ErrInvalidInput
	}
	return f.result, nil
}

func testResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Sentiment: models.SentimentResult{Label: models.SentimentPositive, Score: 0.97},
		Summary:   "The text radiates happiness.",
		Emotions: []models.RankedEmotion{
			{Label: "joy", Score: 0.7, Explanation: "The writer is happy.", Emoji: "😄"},
			{Label: "excitement", Score: 0.3, Explanation: "There is energy here.", Emoji: "🎉"},
		},
	}
}

func newTestHandler(analyzer Analyzer) http.Handler {
	healthy := &atomic.Bool{}
	healthy.Store(true)
	return NewHandler(analyzer, nil, healthy).Routes()
}

func TestHandleAnalyze_Success(t *testing.T) {
	req := require.New(t)

	handler := newTestHandler(&fakeAnalyzer{result: testResult()})

	request := httptest.NewRequest(http.MethodPost, "/analyze",
		strings.NewReader(`{"text": "I am so happy today, everything feels wonderful!"}`))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	req.Equal(http.StatusOK, recorder.Code)
	req.Equal("*", recorder.Header().Get("Access-Control-Allow-Origin"))

	var payload models.AnalysisResult
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
	req.Equal(models.SentimentPositive, payload.Sentiment.Label)
	req.Len(payload.Emotions, 2)
	req.Equal("joy", payload.Emotions[0].Label)
	req.Equal("😄", payload.Emotions[0].Emoji)
	req.NotEmpty(payload.Summary)
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		description string
		body        string
		analyzerErr error
		wantStatus  int
	}{
		{
			"Should return 400 for an unparseable body",
			`{"text": `,
			nil,
			http.StatusBadRequest,
		},
		{
			"Should return 400 for whitespace-only text",
			`{"text": "   "}`,
			nil,
			http.StatusBadRequest,
		},
		{
			"Should return 503 when a classifier is unavailable",
			`{"text": "some text"}`,
			analysis.ErrModelUnavailable,
			http.StatusServiceUnavailable,
		},
		{
			"Should return 500 for unclassified failures",
			`{"text": "some text"}`,
			errors.New("boom"),
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)

			handler := newTestHandler(&fakeAnalyzer{result: testResult(), err: tt.analyzerErr})

			request := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			req.Equal(tt.wantStatus, recorder.Code)

			var payload map[string]string
			req.NoError(json.Unmarshal(recorder.Body.Bytes(), &payload))
			req.NotEmpty(payload["error"], "error payload must carry a message")
		})
	}
}

func TestHandleAnalyze_Preflight(t *testing.T) {
	req := require.New(t)

	handler := newTestHandler(&fakeAnalyzer{result: testResult()})

	request := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	req.Equal(http.StatusNoContent, recorder.Code)
	req.Equal("*", recorder.Header().Get("Access-Control-Allow-Origin"))
	req.Contains(recorder.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestHandleAnalyze_MethodNotAllowed(t *testing.T) {
	req := require.New(t)

	handler := newTestHandler(&fakeAnalyzer{result: testResult()})

	request := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	req.Equal(http.StatusMethodNotAllowed, recorder.Code)
}

func TestHandleHealthz(t *testing.T) {
	req := require.New(t)

	healthy := &atomic.Bool{}
	healthy.Store(true)
	handler := NewHandler(&fakeAnalyzer{result: testResult()}, nil, healthy).Routes()

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	req.Equal(http.StatusOK, recorder.Code)

	healthy.Store(false)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	req.Equal(http.StatusServiceUnavailable, recorder.Code)
}
