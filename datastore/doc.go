/*
Package datastore defines the sink that snapshot records are exported to.

	type DataStore interface {
	    GetOne(ctx context.Context, sessionID, objectID string) (*snapshot.Record, error)
	    Put(ctx context.Context, rec snapshot.Record) error
	    Query(ctx context.Context, params *snapshot.QueryParams, opts ...snapshot.QueryOption) ([]snapshot.Record, error)
	    Delete(ctx context.Context, sessionID, objectID string) error
	    DeleteSession(ctx context.Context, sessionID string) (int, error)
	}

Implementations:
  - ddb: DynamoDB, one partition per session
  - mock: In-memory implementation for testing
*/
package datastore
