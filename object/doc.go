// Package object holds TrackedObject, the canonical merged state of one
// entity in an xviz session, and View, its read-only snapshot.
package object
