// Package digest turns decrypted feedback into a report.
//
// The summarizer is an external collaborator and strictly optional: when
// it is missing or fails, the service falls back to emitting the raw
// records so a run never loses data to a summarization outage.
package digest
