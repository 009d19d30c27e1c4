package docModel

import "time"

// Document is the metadata row kept per ingested file. The content hash is
// the md5 digest over the raw uploaded bytes and drives the short-circuit
// check on re-upload.
type Document struct {
	Name        string    `json:"doc_name"`
	ContentHash string    `json:"content_hash"`
	ChunkCount  int       `json:"chunk_count"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// DocChunk is one bounded text segment of a document together with its
// embedding. Index is 0-based and contiguous within a document: after any
// successful ingestion the stored indices are exactly [0, ChunkCount).
type DocChunk struct {
	DocName string    `json:"doc_name"`
	Index   int       `json:"chunk_index"`
	Text    string    `json:"content"`
	Vector  []float32 `json:"-"`
}

// RetrievalResult is one ranked hit from a similarity search.
// Similarity is 1 - cosine distance, most-similar first.
type RetrievalResult struct {
	Text       string  `json:"content"`
	DocName    string  `json:"doc_name"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

// QueryResult is the full outcome of one answered question.
type QueryResult struct {
	Question string
	Answer   string
	Sources  []RetrievalResult
}

type IngestStatus string

const (
	IngestSkipped   IngestStatus = "Skipped"
	IngestProcessed IngestStatus = "Processed"
)

// IngestOutcome reports how an ingestion request ended. A Skipped outcome is
// an expected result (unchanged content hash), not an error.
type IngestOutcome struct {
	Status   IngestStatus
	Filename string
	Chunks   int
}
