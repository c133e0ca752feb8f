/*
Package snapshot defines the records the export sink writes for the query
layer.

Record:
A serializable copy of an object.View, stamped with its session and the
export time:

	rec := snapshot.FromView(session.ID, view, time.Now())

QueryParams:
Selects the records of one session, optionally only those last touched in a
given frame:

	frame := 42
	params := &snapshot.QueryParams{SessionID: session.ID, FrameIndex: &frame}

QueryOptions:
Paging and retry settings for backends that page their results:

	opts := []snapshot.QueryOption{
	    snapshot.WithPageSize(25),
	    snapshot.WithMaxRetries(3),
	    snapshot.WithProgressHandler(progressFunc),
	}

Records are written, never read back into a registry.
*/
package snapshot
