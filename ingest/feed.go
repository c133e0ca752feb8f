/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ingest

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Feed is a recorded sequence of decoded frames, used for replays and tests:
//
//	frames:
//	  - index: 0
//	    timestamp: 1000
//	    features:
//	      - object: "11"
//	        stream: /tracklets/objects
//	        feature: {center: [0, 1]}
//	    attributes:
//	      - {object: "11", stream: /tracklets/objects, key: speed, value: 5}
type Feed struct {
	Frames []Frame `yaml:"frames"`
}

// DecodeFeed reads a YAML feed.
func DecodeFeed(r io.Reader) ([]Frame, error) {
	var feed Feed
	if err := yaml.NewDecoder(r).Decode(&feed); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return feed.Frames, nil
}
