package service

import "errors"

var (
	// ErrArticleNotFound is returned when an operation addresses an article that does not exist,
	// including comment operations whose parent article is missing.
	ErrArticleNotFound = errors.New("article not found")

	// ErrExportDisabled is returned by the export use case when no object store is configured.
	ErrExportDisabled = errors.New("article export is not configured")
)
