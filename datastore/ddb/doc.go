/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DataStore uses a single-table layout:
  - One partition per playback session
  - One item per tracked object, sorted by object id
  - Macro-based key templates (e.g., "SESSION#{SessionID}")
  - Paged queries with retry on throttling
  - EntityType injection on every item

Key Templates:
Keys use macros that are replaced with record field values:

	keys := ddb.KeySchema{
	    PK: "SESSION#{SessionID}",   // Becomes "SESSION#3f1c..."
	    SK: "OBJECT#{ObjectID}",     // Becomes "OBJECT#11"
	}

Queries:
Query reads the session partition page by page:

	frame := 12
	records, err := store.Query(ctx, &snapshot.QueryParams{SessionID: id, FrameIndex: &frame},
	    snapshot.WithPageSize(25),
	    snapshot.WithMaxRetries(3),
	    snapshot.WithProgressHandler(func(p snapshot.QueryProgress) {
	        log.Printf("Processed %d items", p.ItemsProcessed)
	    }),
	)

Run the integration tests against a real table with -tags integration.
*/
package ddb
