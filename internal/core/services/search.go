package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
	"github.com/eywa-run/eywa/internal/logger"
)

// snippetMaxLen is the maximum length, in runes, of a SearchResult's
// displayed snippet.
const snippetMaxLen = 300

// snippet truncates body to snippetMaxLen runes and wraps occurrences
// of query's terms in ** markers, so front-ends can render highlighting
// without re-tokenising the query themselves. Truncation never changes
// ranking; it is purely a display transform.
func snippet(body, query string) string {
	runes := []rune(body)
	truncated := body
	if len(runes) > snippetMaxLen {
		truncated = string(runes[:snippetMaxLen])
	}
	return highlightTerms(truncated, query)
}

func highlightTerms(text, query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return text
	}
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		key := strings.ToLower(term)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
		if err != nil {
			continue
		}
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			return "**" + match + "**"
		})
	}
	return text
}

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// overfetchFactor is how many extra candidates are pulled from each
// retriever before fusion, so that source filtering and deduplication
// don't starve the fused top-K.
const overfetchFactor = 4

// SearchService implements hybrid (dense + lexical) retrieval with
// convex score fusion and optional cross-encoder reranking.
type SearchService struct {
	runtime driven.ModelRuntime
	vectors driven.VectorStore
	lexical driven.LexicalStore
	content driven.ContentStore
	sources driven.SourceStore
	fusion  domain.FusionSettings
}

// NewSearchService wires a SearchService from its driven dependencies.
func NewSearchService(
	runtime driven.ModelRuntime,
	vectors driven.VectorStore,
	lexical driven.LexicalStore,
	content driven.ContentStore,
	sources driven.SourceStore,
	fusion domain.FusionSettings,
) *SearchService {
	return &SearchService{
		runtime: runtime,
		vectors: vectors,
		lexical: lexical,
		content: content,
		sources: sources,
		fusion:  fusion,
	}
}

// fusedCandidate accumulates a chunk's per-retriever scores ahead of
// normalisation and fusion.
type fusedCandidate struct {
	hit          driven.VectorHit
	lexHit       driven.LexicalHit
	denseScore   float64
	lexScore     float64
	hasDense     bool
	hasLexical   bool
}

// Search embeds the query, fans out to the dense and lexical
// retrievers, fuses their scores and optionally reranks the result
// with the cross-encoder.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	vectors, err := s.runtime.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}

	return s.retrieveAndFuse(ctx, vectors[0], query, query, opts, "")
}

// retrieveAndFuse is the shared tail of the search pipeline, entered
// from step 2 (dense+lexical fan-out) onward. It is used both by
// Search, seeded from the embedded query, and by Similar, seeded from
// a stored chunk's vector and text. excludeDocID, when non-empty, is
// dropped from the fused candidates before results are built.
func (s *SearchService) retrieveAndFuse(ctx context.Context, queryVector []float32, queryText, lexicalQuery string, opts domain.SearchOptions, excludeDocID string) ([]domain.SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	topK := s.fusion.FusionTopK
	if topK <= 0 {
		topK = 20
	}
	overfetch := topK * overfetchFactor
	if excludeDocID != "" {
		overfetch++ // room for the reference document's own chunk
	}

	var (
		wg          sync.WaitGroup
		denseHits   []driven.VectorHit
		denseErr    error
		lexicalHits []driven.LexicalHit
		lexicalErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		denseHits, denseErr = s.vectors.Query(ctx, queryVector, overfetch, opts.SourceIDs)
	}()
	go func() {
		defer wg.Done()
		lexicalHits, lexicalErr = s.lexical.Search(ctx, lexicalQuery, overfetch, opts.SourceIDs)
	}()
	wg.Wait()

	if denseErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, denseErr)
	}
	if lexicalErr != nil {
		logger.WarnFields("lexical retrieval failed, continuing dense-only", logger.Fields{
			"operation": "search",
			"error":     lexicalErr.Error(),
		})
		lexicalHits = nil
	}

	if excludeDocID != "" {
		denseHits = excludeDoc(denseHits, excludeDocID)
		lexicalHits = excludeLexicalDoc(lexicalHits, excludeDocID)
	}

	fused := fuse(denseHits, lexicalHits, s.fusion)
	if len(fused) > topK {
		fused = fused[:topK]
	}

	results := make([]domain.SearchResult, 0, len(fused))
	for _, c := range fused {
		chunkID, sourceID, docID, title, body := candidateFields(c)

		doc, err := s.content.Get(ctx, docID)
		if err != nil {
			continue
		}

		sourceName := sourceID
		if src, err := s.sources.Get(ctx, sourceID); err == nil {
			sourceName = src.DisplayName
		}

		denseRaw, lexRaw := 0.0, 0.0
		if c.hasDense {
			denseRaw = c.hit.Similarity
		}
		if c.hasLexical {
			lexRaw = c.lexHit.Score
		}

		results = append(results, domain.SearchResult{
			Document:     *doc,
			Chunk:        domain.Chunk{ID: chunkID, DocumentID: docID, SourceID: sourceID, Body: body, Text: snippet(body, queryText)},
			DenseScore:   denseRaw,
			LexicalScore: lexRaw,
			FusedScore:   c.denseScore*s.fusion.DenseWeight + c.lexScore*s.fusion.LexicalWeight,
			SourceName:   sourceName,
		})
		_ = title
	}

	if opts.Rerank && len(results) > 0 {
		results = s.rerank(ctx, queryText, results)
	} else {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].FusedScore > results[j].FusedScore
		})
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func excludeDoc(hits []driven.VectorHit, docID string) []driven.VectorHit {
	out := hits[:0:0]
	for _, h := range hits {
		if h.DocID != docID {
			out = append(out, h)
		}
	}
	return out
}

func excludeLexicalDoc(hits []driven.LexicalHit, docID string) []driven.LexicalHit {
	out := hits[:0:0]
	for _, h := range hits {
		if h.DocID != docID {
			out = append(out, h)
		}
	}
	return out
}

func candidateFields(c fusedCandidate) (chunkID, sourceID, docID, title, body string) {
	if c.hasDense {
		return c.hit.ChunkID, c.hit.SourceID, c.hit.DocID, c.hit.Title, c.hit.Body
	}
	return c.lexHit.ChunkID, c.lexHit.SourceID, c.lexHit.DocID, c.lexHit.Title, c.lexHit.Body
}

// fuse performs convex min-max score fusion: each retriever's raw
// scores are normalised to [0,1] over its own result set, then
// combined as DenseWeight*dense + LexicalWeight*lexical. A chunk
// missing from one side contributes 0 for that side.
func fuse(dense []driven.VectorHit, lexical []driven.LexicalHit, settings domain.FusionSettings) []fusedCandidate {
	denseNorm := minMaxNormalizeDense(dense)
	lexNorm := minMaxNormalizeLexical(lexical)

	byChunk := make(map[string]*fusedCandidate)
	for i, h := range dense {
		byChunk[h.ChunkID] = &fusedCandidate{hit: h, denseScore: denseNorm[i], hasDense: true}
	}
	for i, h := range lexical {
		if c, ok := byChunk[h.ChunkID]; ok {
			c.lexHit = h
			c.lexScore = lexNorm[i]
			c.hasLexical = true
		} else {
			byChunk[h.ChunkID] = &fusedCandidate{lexHit: h, lexScore: lexNorm[i], hasLexical: true}
		}
	}

	candidates := make([]fusedCandidate, 0, len(byChunk))
	for _, c := range byChunk {
		candidates = append(candidates, *c)
	}

	weightedScore := func(c fusedCandidate) float64 {
		return c.denseScore*settings.DenseWeight + c.lexScore*settings.LexicalWeight
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return weightedScore(candidates[i]) > weightedScore(candidates[j])
	})
	return candidates
}

func minMaxNormalizeDense(hits []driven.VectorHit) []float64 {
	scores := make([]float64, len(hits))
	for i, h := range hits {
		scores[i] = h.Similarity
	}
	return minMaxNormalize(scores)
}

func minMaxNormalizeLexical(hits []driven.LexicalHit) []float64 {
	scores := make([]float64, len(hits))
	for i, h := range hits {
		scores[i] = h.Score
	}
	return minMaxNormalize(scores)
}

func minMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}
	min, max := scores[0], scores[0]
	for _, v := range scores {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(scores))
	if max == min {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	for i, v := range scores {
		out[i] = (v - min) / (max - min)
	}
	return out
}

// rerank rescores results with the cross-encoder, skipping the stage
// (keeping fused order) if the model runtime errors.
func (s *SearchService) rerank(ctx context.Context, query string, results []domain.SearchResult) []domain.SearchResult {
	candidates := make([]string, len(results))
	for i, r := range results {
		candidates[i] = r.Chunk.Body
	}

	scores, err := s.runtime.Rerank(ctx, query, candidates)
	if err != nil {
		logger.WarnFields("rerank failed, returning fused order", logger.Fields{
			"operation":  "search",
			"candidates": len(candidates),
			"error":      err.Error(),
		})
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].FusedScore > results[j].FusedScore
		})
		return results
	}

	for i := range results {
		results[i].RerankScore = float64(scores[i])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RerankScore > results[j].RerankScore
	})
	return results
}

// Similar finds documents related to an already-indexed document. It
// re-embeds the document's first chunk and re-enters the search
// pipeline at the dense+lexical fan-out (the same fusion and optional
// rerank Search uses), excluding the reference document's own chunks.
func (s *SearchService) Similar(ctx context.Context, docID string, k int) ([]domain.SearchResult, error) {
	if docID == "" {
		return nil, domain.ErrInvalidInput
	}
	if k <= 0 {
		k = 10
	}

	chunks, err := s.content.GetChunks(ctx, docID)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, domain.ErrNotFound
	}
	reference := chunks[0]

	vectors, err := s.runtime.Embed(ctx, []string{reference.Body})
	if err != nil || len(vectors) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}

	opts := domain.SearchOptions{Limit: k, Rerank: true}
	return s.retrieveAndFuse(ctx, vectors[0], reference.Text, reference.Text, opts, docID)
}
