// Package httpapi implements the outbound service contracts over HTTP and JSON.
//
// Every adapter method issues exactly one request. A 2xx status is a positive
// answer and any other status a negative one; network failures, timeouts and
// undecodable bodies are returned as errors. Retrying is the gateway's job.
package httpapi
