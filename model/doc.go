// Package model defines the provider-agnostic boundary between agents and
// language model backends.
//
// Core goals:
//   - One blocking Chat call per agent iteration, no streaming
//   - Request/response shapes kept minimal and transport independent
//   - Optional schema-constrained generation via Request.Schema
//   - Lightweight scripting for tests (ScriptedModel)
//
// Providers live in sub-packages (openai, anthropic, gemini, ollama) and
// implement Model so agents stay decoupled from vendor SDKs.
package model
