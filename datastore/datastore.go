/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/rohankumardubey/xviz/snapshot"
)

// DataStore receives snapshot records exported from a session registry.
type DataStore interface {
	// GetOne returns the record of one object, or a NotFoundError.
	GetOne(ctx context.Context, sessionID, objectID string) (*snapshot.Record, error)

	// Put writes rec, replacing any earlier record of the same object.
	Put(ctx context.Context, rec snapshot.Record) error

	// Query returns the records selected by params ordered by object id.
	Query(ctx context.Context, params *snapshot.QueryParams, opts ...snapshot.QueryOption) ([]snapshot.Record, error)

	// Delete removes the record of one object. Implementations may report a
	// missing record with a NotFoundError.
	Delete(ctx context.Context, sessionID, objectID string) error

	// DeleteSession removes every record of a session and returns how many
	// were removed.
	DeleteSession(ctx context.Context, sessionID string) (int, error)
}
