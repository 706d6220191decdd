// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is a JSON-based codec
type JSONCodec struct{}

func (JSONCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// defaultCodec is used when no codec is specified
var defaultCodec Codec = JSONCodec{}

// BinaryCodec passes bytes through unchanged (for pre-encoded data)
type BinaryCodec struct{}

func (BinaryCodec) Encode(v interface{}) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	if b, ok := v.(*[]byte); ok {
		return *b, nil
	}
	return json.Marshal(v)
}

func (BinaryCodec) Decode(data []byte, v interface{}) error {
	if b, ok := v.(*[]byte); ok {
		*b = data
		return nil
	}
	return json.Unmarshal(data, v)
}

// Binary is a codec that passes bytes through unchanged
var Binary Codec = BinaryCodec{}

// encodeArgs encodes call arguments; nil args encode to an empty payload.
func encodeArgs(c Codec, args interface{}) ([]byte, error) {
	if args == nil {
		return nil, nil
	}
	payload, err := c.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	return payload, nil
}

// decodeReply decodes a response into reply; empty responses leave it
// untouched.
func decodeReply(c Codec, resp []byte, reply interface{}) error {
	if reply == nil || len(resp) == 0 {
		return nil
	}
	if err := c.Decode(resp, reply); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
