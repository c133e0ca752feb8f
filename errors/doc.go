/*
Package errors provides semantic error types for the xviz object store.

The reconciliation path itself never fails on data shape: malformed geometry
is recorded as an unrecognized feature and an unknown id passed to Clear is a
no-op. The errors below cover what remains, namely updates that cannot be
attributed to an object, invalid configuration, and snapshot store failures.

Common Errors:

	var (
	    ErrNotFound        = errors.New("object not found")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrRegistryClosed  = errors.New("registry closed")
	    ErrNoKeySchema     = errors.New("no key schema configured")
	)

Usage:

	if err := pipeline.ApplyAttribute(update); err != nil {
	    if errors.IsNotFound(err) {
	        // attribute arrived before any geometry for the object
	    }
	}

ErrRegistryClosed is used as a panic value: touching a closed registry is a
programming error, not a data error.
*/
package errors
