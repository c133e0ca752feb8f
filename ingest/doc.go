/*
Package ingest applies decoded xviz updates to a session registry.

Pipeline is the decoder-facing entry point. It classifies every feature once
with geometry.Parse, routes it through Registry.Get so the object's temporal
extent and frame index follow the data, and serializes all writes behind a
single lock.

	p := ingest.New(session.Registry, ingest.WithLogger(log.Logger))
	res, err := p.ApplyFrame(frame)

Data-shape problems never fail a frame. Only updates that cannot be
attributed (empty ids, attributes for objects never seen) are dropped, and
those are reported through the joined error of ApplyFrame.
*/
package ingest
