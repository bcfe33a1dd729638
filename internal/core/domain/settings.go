package domain

const unknownDescription = "Unknown"

// DevicePreference selects the compute device the model runtime
// resolves to at startup.
type DevicePreference string

const (
	// DeviceAuto probes Metal, then CUDA, then falls back to CPU.
	DeviceAuto DevicePreference = "auto"
	// DeviceCPU forces CPU inference.
	DeviceCPU DevicePreference = "cpu"
	// DeviceMetal forces Apple Metal.
	DeviceMetal DevicePreference = "metal"
	// DeviceCUDA forces CUDA.
	DeviceCUDA DevicePreference = "cuda"
)

// IsValid returns true if the device preference is recognised.
func (d DevicePreference) IsValid() bool {
	switch d {
	case DeviceAuto, DeviceCPU, DeviceMetal, DeviceCUDA:
		return true
	default:
		return false
	}
}

// EmbeddingModelConfig identifies the bi-encoder model used for
// chunk and query embedding.
type EmbeddingModelConfig struct {
	// ID is a short local name, e.g. "all-minilm-l6-v2".
	ID string
	// RepoID is the model's source repository identifier, used to
	// locate cached weights under the model root.
	RepoID string
	// Dimensions is the output embedding size.
	Dimensions int
}

// RerankerModelConfig identifies the cross-encoder model used to
// rescore the fused candidate set.
type RerankerModelConfig struct {
	ID         string
	RepoID     string
	MaxSeqLen  int
}

// DefaultEmbeddingModel returns the curated default bi-encoder: a
// 384-dimension MiniLM variant, chosen for its balance of quality and
// CPU-friendly inference cost.
func DefaultEmbeddingModel() EmbeddingModelConfig {
	return EmbeddingModelConfig{
		ID:         "all-minilm-l6-v2",
		RepoID:     "sentence-transformers/all-MiniLM-L6-v2",
		Dimensions: 384,
	}
}

// DefaultRerankerModel returns the curated default cross-encoder.
func DefaultRerankerModel() RerankerModelConfig {
	return RerankerModelConfig{
		ID:        "ms-marco-minilm-l6-v2",
		RepoID:    "cross-encoder/ms-marco-MiniLM-L-6-v2",
		MaxSeqLen: 512,
	}
}

// ChunkingSettings bounds the chunker's window size.
type ChunkingSettings struct {
	// ChunkSize is the maximum length in bytes of a chunk's Text; the
	// contextual prefix added to Body is not counted. The code chunker
	// never cuts inside a line, so one longer line makes a longer chunk.
	ChunkSize int
	// Overlap is the number of bytes repeated between
	// consecutive chunks of the same document.
	Overlap int
}

// VectorIndexSettings configures the HNSW-backed vector store.
type VectorIndexSettings struct {
	MaxElements int
	// EFConstruction and M are HNSW build-time parameters trading
	// index quality for build speed and memory.
	EFConstruction int
	M              int
}

// FusionSettings configures hybrid search score combination.
type FusionSettings struct {
	// DenseWeight and LexicalWeight must sum to 1.0; defaults are 0.8/0.2.
	DenseWeight   float64
	LexicalWeight float64
	// FusionTopK is how many fused candidates survive to the rerank
	// stage.
	FusionTopK int
}

// AppSettings holds all application settings, loaded from
// ~/.eywa/config.toml.
type AppSettings struct {
	Embedding   EmbeddingModelConfig
	Reranker    RerankerModelConfig
	Device      DevicePreference
	Chunking    ChunkingSettings
	VectorIndex VectorIndexSettings
	Fusion      FusionSettings
	ContentRoot string
}

// EngineInfo summarises the running engine's model configuration and
// the size of the indexed corpus, aggregated across every source.
// It is the data behind the CLI "info" command and the HTTP health
// endpoint.
type EngineInfo struct {
	EmbeddingModelID    string
	EmbeddingRepoID     string
	EmbeddingDimensions int
	RerankerModelID     string
	RerankerRepoID      string
	Device              DevicePreference

	Sources   int
	Documents int
	Chunks    int

	// Inconsistent lists documents left in a partially-committed state
	// by a failed ingest rollback. A non-empty list means the vector
	// and/or lexical index may disagree with the content store for
	// these documents until they are re-ingested or removed.
	Inconsistent []InconsistentDoc
}

// DefaultAppSettings returns settings with sensible defaults, matching
// the values named throughout the design notes.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: DefaultEmbeddingModel(),
		Reranker:  DefaultRerankerModel(),
		Device:    DeviceAuto,
		Chunking: ChunkingSettings{
			ChunkSize: 1000,
			Overlap:   200,
		},
		VectorIndex: VectorIndexSettings{
			MaxElements:    100000,
			EFConstruction: 200,
			M:              16,
		},
		Fusion: FusionSettings{
			DenseWeight:   0.8,
			LexicalWeight: 0.2,
			FusionTopK:    20,
		},
	}
}
