package api

// requests---------------------

type QueryRequest struct {
	Question string `json:"question" validate:"required"`
	TopK     int    `json:"top_k,omitempty"`
}

type IngestRequest struct {
	Bucket string `json:"bucket" validate:"required"`
	Key    string `json:"key" validate:"required"`
}

// responses--------------------

type SourceRef struct {
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

type QueryResponse struct {
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
	Sources  []SourceRef `json:"sources"`
}

type IngestResponse struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks,omitempty"`
	Message  string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"question is required"`
	Id      string `json:"id,omitempty"`
}
