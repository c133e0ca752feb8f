// Package export writes snapshots of a session's tracked objects to a
// datastore.DataStore. Records are only ever written and deleted; nothing is
// loaded back into a registry.
package export
