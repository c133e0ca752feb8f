/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.DataStore for testing
package mock

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rohankumardubey/xviz/errors"
	"github.com/rohankumardubey/xviz/snapshot"
)

type recordKey struct {
	session string
	object  string
}

// DataStore is an in-memory datastore.DataStore
type DataStore struct {
	mu          sync.RWMutex
	data        map[recordKey]snapshot.Record
	puts        int
	putError    error
	deleteError error
	queryError  error
}

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		data: make(map[recordKey]snapshot.Record),
	}
}

// WithPutError makes Put operations return an error
func (m *DataStore) WithPutError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putError = err
	return m
}

// WithDeleteError makes Delete and DeleteSession operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteError = err
	return m
}

// WithQueryError makes Query operations return an error
func (m *DataStore) WithQueryError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
	return m
}

// GetOne retrieves a record by session and object id
func (m *DataStore) GetOne(ctx context.Context, sessionID, objectID string) (*snapshot.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if rec, exists := m.data[recordKey{sessionID, objectID}]; exists {
		return &rec, nil
	}
	return nil, errors.NewNotFoundError("Record", sessionID+"/"+objectID)
}

// Put stores a record unless a record from a later frame is already stored
func (m *DataStore) Put(ctx context.Context, rec snapshot.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putError != nil {
		return m.putError
	}
	if rec.SessionID == "" || rec.ObjectID == "" {
		return errors.NewValidationError("key", "record needs a session and object id")
	}

	key := recordKey{rec.SessionID, rec.ObjectID}
	if stored, exists := m.data[key]; exists && stored.LastFrameIndex > rec.LastFrameIndex {
		return errors.NewConditionFailedError("put", "stored record is from a later frame")
	}

	m.data[key] = rec
	m.puts++
	return nil
}

// Query returns matching records ordered by object id
func (m *DataStore) Query(ctx context.Context, params *snapshot.QueryParams, opts ...snapshot.QueryOption) ([]snapshot.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.queryError != nil {
		return nil, m.queryError
	}
	if params == nil || params.SessionID == "" {
		return nil, errors.NewValidationError("sessionId", "must not be empty")
	}

	var results []snapshot.Record
	for _, rec := range m.data {
		if params.Matches(rec) {
			results = append(results, rec)
		}
	}
	slices.SortFunc(results, func(a, b snapshot.Record) int {
		return strings.Compare(a.ObjectID, b.ObjectID)
	})
	if params.Limit > 0 && len(results) > params.Limit {
		results = results[:params.Limit]
	}
	return results, nil
}

// Delete removes a record
func (m *DataStore) Delete(ctx context.Context, sessionID, objectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}

	key := recordKey{sessionID, objectID}
	if _, exists := m.data[key]; !exists {
		return errors.NewNotFoundError("Record", sessionID+"/"+objectID)
	}
	delete(m.data, key)
	return nil
}

// DeleteSession removes every record of a session
func (m *DataStore) DeleteSession(ctx context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return 0, m.deleteError
	}

	removed := 0
	for key := range m.data {
		if key.session == sessionID {
			delete(m.data, key)
			removed++
		}
	}
	return removed, nil
}

// Helper methods for testing

// Count returns the number of stored records
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Puts returns how many successful Put calls were made
func (m *DataStore) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[recordKey]snapshot.Record)
}
