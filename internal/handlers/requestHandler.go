package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/doclane/ragapi/internal/adapter"
	"github.com/doclane/ragapi/internal/api"
	"github.com/doclane/ragapi/internal/blobstore"
	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/rag"
	"github.com/doclane/ragapi/pkg/logger_i"
)

var logRH *logger_i.Logger
var ragService rag.Service

func InitRagHandler(service rag.Service) {
	logRH = logger_i.NewLogger("Handlers")
	ragService = service
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// QueryHandler answers a question against the ingested corpus. A missing or
// blank question fails fast with 400 before any model or store is touched.
func QueryHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.QueryRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Query handler reader :", "error", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
			logRH.Warn("Bad Query Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
			return
		}
		if strings.TrimSpace(requestData.Question) == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
			return
		}

		result, err := ragService.Answer(request.Context(), requestData.Question, requestData.TopK)
		if err != nil {
			writeServiceError(w, err, "")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(result))
		return
	}
	logRH.Warn("Invalid Context by request ", "addr", request.RemoteAddr)
}

// IngestHandler pulls one object out of the bucket and runs the ingestion
// pipeline on it. Re-sending an unchanged document is a cheap no-op.
func IngestHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.IngestRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Ingest handler reader :", "error", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
			logRH.Warn("Bad Ingest Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
			return
		}
		if requestData.Bucket == "" || requestData.Key == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "bucket and key are required")
			return
		}

		outcome, err := ragService.IngestObject(request.Context(), requestData.Bucket, requestData.Key)
		if err != nil {
			writeServiceError(w, err, requestData.Key)
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToIngestResponse(outcome))
		return
	}
	logRH.Warn("Invalid Context by request ", "addr", request.RemoteAddr)
}

func writeServiceError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, docModel.ErrUnsupportedFormat):
		WriteErrorResponse(w, http.StatusBadRequest, id, "unsupported document format")
	case errors.Is(err, blobstore.ErrNotFound):
		WriteErrorResponse(w, http.StatusNotFound, id, "object not found")
	case errors.Is(err, docModel.ErrExtraction):
		WriteErrorResponse(w, http.StatusUnprocessableEntity, id, "document could not be parsed")
	case errors.Is(err, docModel.ErrRateLimited):
		WriteErrorResponse(w, http.StatusTooManyRequests, id, "upstream rate limit, retry later")
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Internal Server Error")
	}
}
