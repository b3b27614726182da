package kafka

import (
	"encoding/json"
	"fmt"
)

// MustMarshal is for envelope construction at publish time, where a marshal
// failure means a programming error (the payload structs are all ours).
func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// UnmarshalEnvelope decodes a raw Kafka message value into an envelope
// struct. Payload tetap json.RawMessage; unwrap terpisah per event type.
func UnmarshalEnvelope(b []byte, out any) error {
	return json.Unmarshal(b, out)
}

// UnwrapPayload decodes the envelope payload into the event's payload type.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
