/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package snapshot

import (
	"time"
)

// QueryOptions configures paging and retry for store queries
type QueryOptions struct {
	PageSize        int32               // Items per backend page (default: 100)
	MaxRetries      int                 // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration       // Backoff between retries, multiplied by attempt (default: 1s)
	ProgressHandler func(QueryProgress) // Optional progress callback, called after each page
}

// QueryProgress tracks paging progress
type QueryProgress struct {
	ItemsProcessed int64
	PagesProcessed int
	StartTime      time.Time
}

// QueryOption is a functional option for configuring queries
type QueryOption func(*QueryOptions)

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		PageSize:     100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}
}

// WithPageSize sets the backend page size
func WithPageSize(size int32) QueryOption {
	return func(opts *QueryOptions) {
		opts.PageSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) QueryOption {
	return func(opts *QueryOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) QueryOption {
	return func(opts *QueryOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(QueryProgress)) QueryOption {
	return func(opts *QueryOptions) {
		opts.ProgressHandler = handler
	}
}
