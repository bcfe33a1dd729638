package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
)

type searchRequest struct {
	Query     string   `json:"query"`
	Limit     int      `json:"limit"`
	SourceIDs []string `json:"source_ids"`
	Rerank    *bool    `json:"rerank"`
}

type searchResultDTO struct {
	DocumentID   string  `json:"document_id"`
	ChunkID      string  `json:"chunk_id"`
	Title        string  `json:"title"`
	URI          string  `json:"uri"`
	Source       string  `json:"source"`
	Snippet      string  `json:"snippet"`
	DenseScore   float64 `json:"dense_score"`
	LexicalScore float64 `json:"lexical_score"`
	FusedScore   float64 `json:"fused_score"`
	RerankScore  float64 `json:"rerank_score,omitempty"`
}

type searchResponse struct {
	Results []searchResultDTO `json:"results"`
	Count   int               `json:"count"`
}

func toSearchResponse(results []domain.SearchResult) searchResponse {
	resp := searchResponse{Results: make([]searchResultDTO, len(results)), Count: len(results)}
	for i := range results {
		resp.Results[i] = searchResultDTO{
			DocumentID:   results[i].Document.ID,
			ChunkID:      results[i].Chunk.ID,
			Title:        results[i].Document.Title,
			URI:          results[i].Document.URI,
			Source:       results[i].SourceName,
			Snippet:      results[i].Chunk.Text,
			DenseScore:   results[i].DenseScore,
			LexicalScore: results[i].LexicalScore,
			FusedScore:   results[i].FusedScore,
			RerankScore:  results[i].RerankScore,
		}
	}
	return resp
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.ports.Search == nil {
		writeError(w, errNotConfigured)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	if req.Query == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	opts := domain.SearchOptions{
		Limit:     req.Limit,
		SourceIDs: req.SourceIDs,
		Rerank:    req.Rerank == nil || *req.Rerank,
	}

	results, err := s.ports.Search.Search(r.Context(), req.Query, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(results))
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	if s.ports.Search == nil {
		writeError(w, errNotConfigured)
		return
	}

	id := r.PathValue("id")
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		var parsed int
		if _, err := fmt.Sscanf(l, "%d", &parsed); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := s.ports.Search.Similar(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponse(results))
}

type sourceDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DocCount   int    `json:"doc_count"`
	ChunkCount int    `json:"chunk_count"`
}

func toSourceDTO(src domain.Source) sourceDTO {
	return sourceDTO{ID: src.ID, Name: src.DisplayName, DocCount: src.DocCount, ChunkCount: src.ChunkCount}
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	sources, err := s.ports.Source.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]sourceDTO, len(sources))
	for i := range sources {
		dtos[i] = toSourceDTO(sources[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	src, err := s.ports.Source.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSourceDTO(*src))
}

func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	if err := s.ports.Source.DeleteSource(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	if err := s.ports.Source.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type documentDTO struct {
	ID        string `json:"id"`
	SourceID  string `json:"source_id"`
	Title     string `json:"title"`
	URI       string `json:"uri"`
	MIMEHint  string `json:"mime_hint"`
	ByteLen   int    `json:"byte_len"`
	Content   string `json:"content,omitempty"`
}

func toDocumentDTO(doc domain.Document, withContent bool) documentDTO {
	dto := documentDTO{
		ID:       doc.ID,
		SourceID: doc.SourceID,
		Title:    doc.Title,
		URI:      doc.URI,
		MIMEHint: doc.MIMEHint,
		ByteLen:  doc.ByteLen,
	}
	if withContent {
		dto.Content = doc.Content
	}
	return dto
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	docs, err := s.ports.Source.ListDocuments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]documentDTO, len(docs))
	for i := range docs {
		dtos[i] = toDocumentDTO(docs[i], false)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	doc, err := s.ports.Source.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentDTO(*doc, true))
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.ports.Source == nil {
		writeError(w, errNotConfigured)
		return
	}

	if err := s.ports.Source.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ingestRequest struct {
	Documents []domain.DocInput `json:"documents"`
	Async     bool              `json:"async"`
}

type ingestResponse struct {
	JobID  string                 `json:"job_id,omitempty"`
	Report *driving.IngestReport  `json:"report,omitempty"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if s.ports.Ingest == nil {
		writeError(w, errNotConfigured)
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	sourceID := r.PathValue("id")

	if req.Async {
		jobID, err := s.ports.Ingest.Queue(r.Context(), sourceID, req.Documents)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, ingestResponse{JobID: jobID})
		return
	}

	report, err := s.ports.Ingest.Ingest(r.Context(), sourceID, req.Documents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{Report: report})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if s.ports.Ingest == nil {
		writeError(w, errNotConfigured)
		return
	}

	job, err := s.ports.Ingest.JobStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobCancel(w http.ResponseWriter, r *http.Request) {
	if s.ports.Ingest == nil {
		writeError(w, errNotConfigured)
		return
	}

	if err := s.ports.Ingest.Cancel(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type inconsistentDocDTO struct {
	DocID      string `json:"doc_id"`
	SourceID   string `json:"source_id"`
	URI        string `json:"uri"`
	Step       string `json:"step"`
	Error      string `json:"error"`
	OccurredAt string `json:"occurred_at"`
}

type healthResponse struct {
	Status              string               `json:"status"`
	EmbeddingModelID    string               `json:"embedding_model_id"`
	EmbeddingDimensions int                  `json:"embedding_dimensions"`
	RerankerModelID     string               `json:"reranker_model_id"`
	Device              string               `json:"device"`
	Sources             int                  `json:"sources"`
	Documents           int                  `json:"documents"`
	Chunks              int                  `json:"chunks"`
	InconsistentDocs    []inconsistentDocDTO `json:"inconsistent_docs,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.ports.Engine == nil {
		writeError(w, errNotConfigured)
		return
	}

	info, err := s.ports.Engine.EngineInfo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	status := "ok"
	if len(info.Inconsistent) > 0 {
		status = "degraded"
	}

	resp := healthResponse{
		Status:              status,
		EmbeddingModelID:    info.EmbeddingModelID,
		EmbeddingDimensions: info.EmbeddingDimensions,
		RerankerModelID:     info.RerankerModelID,
		Device:              string(info.Device),
		Sources:             info.Sources,
		Documents:           info.Documents,
		Chunks:              info.Chunks,
	}
	for _, d := range info.Inconsistent {
		resp.InconsistentDocs = append(resp.InconsistentDocs, inconsistentDocDTO{
			DocID: d.DocID, SourceID: d.SourceID, URI: d.URI, Step: d.Step,
			Error: d.Error, OccurredAt: d.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
