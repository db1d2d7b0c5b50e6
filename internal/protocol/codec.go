package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Decode parses and validates a binary client frame
func Decode(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Encode serializes a server event into a binary frame
func Encode(ev Event) ([]byte, error) {
	data, err := msgpack.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ev.Name(), err)
	}
	return data, nil
}
