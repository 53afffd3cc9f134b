// Package ffmpeg wraps the external transcoder's command-line contract.
// The binary path is injected by the caller; commands run through an
// Executor so tests can intercept invocations.
package ffmpeg
