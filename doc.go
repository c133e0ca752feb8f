/*
Package xviz reconciles per-stream updates from a streaming sensor
visualization feed into one canonical object per entity.

A decoder hands the store already-parsed tuples of object id, frame index,
timestamp, stream name and payload. The store keeps, for every object, its
temporal extent, the latest feature of every stream, a flat attribute map and
a position derived from the features by a fixed priority (points beat
polygons, the most recently updated stream wins ties). Query layers then ask
either for every object seen in the session or only those touched in the
current frame.

Packages:
  - geometry: feature classification and position resolution
  - object: TrackedObject and its read-only View
  - ingest: single-writer pipeline that applies decoded frames
  - export, snapshot, datastore: optional sink for query-layer snapshots
    (in-memory mock and DynamoDB implementations)
  - config, metric, errors: ambient support

Basic Usage:

	session := xviz.NewSession(xviz.WithLogger(logger))
	defer session.Close()

	obj := session.Registry.Get("car-1", frameIndex, timestamp)
	obj.AddFeature("/tracklets/objects", geometry.Parse(payload))
	obj.SetAttribute("/tracklets/objects", "speed", 12.4)

	for _, v := range session.Registry.GetAllInCurrentFrame(frameIndex) {
	    render(v.ID, v.Position)
	}

Registries are explicitly owned: there is no process-wide instance, and each
session is torn down with ResetAll or Close.
*/
package xviz
