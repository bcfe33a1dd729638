// Package ggml provides CGO bindings for a ggml-based local inference
// runtime, wrapped by internal/modelruntime behind driven.ModelRuntime.
//
// Two models are loaded side by side: a bi-encoder for embedding and a
// cross-encoder for reranking. Mean-pooling with attention-mask
// weighting, L2 normalisation, and cross-encoder sigmoid scoring all
// happen on the C++ side; this package treats the runtime as a black
// box that returns finished vectors and scores.
package ggml
