// Package anthropic is a minimal client for the Anthropic Messages API,
// used to summarize feedback records into a digest. Requests are JSON
// over HTTP and accept a context for cancellation and deadlines; non-2xx
// statuses are returned as errors carrying the API's error message.
package anthropic
