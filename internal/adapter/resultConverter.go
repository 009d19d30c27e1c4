package adapter

import (
	"github.com/doclane/ragapi/internal/api"
	"github.com/doclane/ragapi/internal/domain/docModel"
)

func ToQueryResponse(result docModel.QueryResult) api.QueryResponse {
	sources := make([]api.SourceRef, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, api.SourceRef{
			Filename:   src.DocName,
			ChunkIndex: src.ChunkIndex,
			Similarity: src.Similarity,
		})
	}

	return api.QueryResponse{
		Question: result.Question,
		Answer:   result.Answer,
		Sources:  sources,
	}
}

func ToIngestResponse(outcome docModel.IngestOutcome) api.IngestResponse {
	if outcome.Status == docModel.IngestSkipped {
		return api.IngestResponse{
			Filename: outcome.Filename,
			Message:  "document unchanged, already ingested",
		}
	}
	return api.IngestResponse{
		Filename: outcome.Filename,
		Chunks:   outcome.Chunks,
	}
}

func BadRequest(id string, error string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: error,
		Id:      id,
	}
}
