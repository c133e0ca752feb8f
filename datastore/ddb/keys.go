/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rohankumardubey/xviz/errors"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// KeySchema holds the templates used to build the partition and sort keys.
// Templates may reference {SessionID} and {ObjectID}.
type KeySchema struct {
	PK string
	SK string
}

// DefaultKeySchema keeps each session in its own partition.
func DefaultKeySchema() KeySchema {
	return KeySchema{
		PK: "SESSION#{SessionID}",
		SK: "OBJECT#{ObjectID}",
	}
}

func (k KeySchema) validate() error {
	if !strings.Contains(k.PK, "{SessionID}") || !strings.Contains(k.SK, "{ObjectID}") {
		return fmt.Errorf("%w: PK %q must reference {SessionID} and SK %q must reference {ObjectID}",
			errors.ErrNoKeySchema, k.PK, k.SK)
	}
	if strings.Contains(k.PK, "{ObjectID}") {
		return fmt.Errorf("%w: PK %q must not reference {ObjectID}", errors.ErrNoKeySchema, k.PK)
	}
	return nil
}

// expand replaces every macro in template with its value. Unknown macros
// expand to the empty string.
func expand(template string, values map[string]string) string {
	return macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		return values[strings.Trim(macro, "{}")]
	})
}

func (k KeySchema) partition(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.NewValidationError("sessionId", "must not be empty")
	}
	return expand(k.PK, map[string]string{"SessionID": sessionID}), nil
}

func (k KeySchema) key(sessionID, objectID string) (map[string]types.AttributeValue, error) {
	pk, err := k.partition(sessionID)
	if err != nil {
		return nil, err
	}
	if objectID == "" {
		return nil, errors.NewValidationError("objectId", "must not be empty")
	}

	values := map[string]string{"SessionID": sessionID, "ObjectID": objectID}
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: expand(k.SK, values)},
	}, nil
}
