// Package httpapi exposes lesson-plan generation and PDF rendering over HTTP.
//
// Every endpoint is mounted under both /api/generate and /generate:
//
//	POST /lesson-plan  form fields in, HTML lesson plan out
//	POST /pdf          HTML in, PDF attachment out
//	GET  /test         sample form data
//
// /healthz and /metrics sit at the root.
package httpapi
