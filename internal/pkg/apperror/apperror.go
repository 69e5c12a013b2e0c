package apperror

import "net/http"

// Kind classifies an application error into the failure families the HTTP
// layer knows how to answer.
type Kind int

const (
	KindValidation Kind = iota
	KindConfiguration
	KindRemoteIngestion
	KindRemoteIndexing
	KindRemoteSearch
)

// AppError carries a stable label for the response "error" field plus an
// optional diagnostic detail (usually the remote engine's own message).
type AppError struct {
	Kind   Kind
	Label  string
	Detail string
	Err    error
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return e.Label + ": " + e.Detail
	}
	return e.Label
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status. Validation failures are
// the caller's fault; everything else is a server-side 500.
func (e *AppError) StatusCode() int {
	if e.Kind == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Validation rejects bad input before any collaborator is touched.
func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Label: message}
}

// Configuration reports missing remote-service settings, checked before any
// remote call so a misconfigured process degrades instead of crashing.
func Configuration(detail string) *AppError {
	return &AppError{Kind: KindConfiguration, Label: "configuration error", Detail: detail}
}

// RemoteIngestion wraps a failure to store the document bytes remotely.
func RemoteIngestion(err error) *AppError {
	return &AppError{Kind: KindRemoteIngestion, Label: "remote ingestion failed", Detail: err.Error(), Err: err}
}

// RemoteIndexing wraps a failure to attach a stored document to the semantic
// index. The document already exists remotely when this happens.
func RemoteIndexing(err error) *AppError {
	return &AppError{Kind: KindRemoteIndexing, Label: "remote indexing failed", Detail: err.Error(), Err: err}
}

// RemoteSearch wraps a failed query against the remote engine.
func RemoteSearch(err error) *AppError {
	return &AppError{Kind: KindRemoteSearch, Label: "remote search failed", Detail: err.Error(), Err: err}
}
