package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

type stubService struct {
	t           *testing.T
	answerCalls int
	ingestCalls int
	result      docModel.QueryResult
	outcome     docModel.IngestOutcome
	err         error
}

func (s *stubService) Answer(ctx context.Context, question string, topK int) (docModel.QueryResult, error) {
	s.answerCalls++
	return s.result, s.err
}

func (s *stubService) IngestObject(ctx context.Context, bucket string, key string) (docModel.IngestOutcome, error) {
	s.ingestCalls++
	return s.outcome, s.err
}

func TestQueryHandler_MissingQuestion(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"absent field", `{"top_k": 3}`},
		{"empty string", `{"question": ""}`},
		{"whitespace only", `{"question": "   "}`},
		{"malformed json", `{"question": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubService{t: t}
			InitRagHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			QueryHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status got %d, want 400", rec.Code)
			}
			if stub.answerCalls != 0 {
				t.Errorf("service must not be called for an invalid request, got %d calls", stub.answerCalls)
			}
		})
	}
}

func TestQueryHandler_Success(t *testing.T) {
	stub := &stubService{
		t: t,
		result: docModel.QueryResult{
			Question: "what?",
			Answer:   "that.",
			Sources: []docModel.RetrievalResult{
				{DocName: "a.txt", ChunkIndex: 2, Similarity: 0.9},
			},
		},
	}
	InitRagHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"question": "what?"}`))
	rec := httptest.NewRecorder()
	QueryHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`"answer":"that."`, `"filename":"a.txt"`, `"chunk_index":2`} {
		if !strings.Contains(body, want) {
			t.Errorf("response missing %s: %s", want, body)
		}
	}
}

func TestIngestHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing bucket", `{"key": "doc.pdf"}`},
		{"missing key", `{"bucket": "uploads"}`},
		{"malformed json", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubService{t: t}
			InitRagHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			IngestHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status got %d, want 400", rec.Code)
			}
			if stub.ingestCalls != 0 {
				t.Errorf("service must not be called for an invalid request")
			}
		})
	}
}

func TestIngestHandler_SkippedMessage(t *testing.T) {
	stub := &stubService{
		t:       t,
		outcome: docModel.IngestOutcome{Status: docModel.IngestSkipped, Filename: "doc.pdf"},
	}
	InitRagHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"bucket": "uploads", "key": "doc.pdf"}`))
	rec := httptest.NewRecorder()
	IngestHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already ingested") {
		t.Errorf("skipped ingest should say so: %s", rec.Body.String())
	}
}

func TestIngestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unsupported format", docModel.ErrUnsupportedFormat, http.StatusBadRequest},
		{"broken document", docModel.ErrExtraction, http.StatusUnprocessableEntity},
		{"rate limited upstream", docModel.ErrRateLimited, http.StatusTooManyRequests},
		{"storage down", docModel.ErrStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubService{t: t, err: tt.err}
			InitRagHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"bucket": "uploads", "key": "doc.pdf"}`))
			rec := httptest.NewRecorder()
			IngestHandler(rec, req)

			if rec.Code != tt.expected {
				t.Errorf("status got %d, want %d", rec.Code, tt.expected)
			}
		})
	}
}
