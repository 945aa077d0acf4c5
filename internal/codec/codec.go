// Package codec converts record collections to and from their stored JSON form.
// A collection is always a JSON array; there is no envelope and no version field.
package codec

import (
	"encoding/json"
	"fmt"
)

// Record is implemented by every stored record type.
type Record interface {
	Validate() error
}

// Encode validates each record and marshals records as a JSON array.
// A collection holding an invalid record is refused as a whole, since Decode
// would refuse it the same way on the next load.
// A nil slice encodes as [] so that an empty collection and a missing one
// stay distinguishable in the store.
func Encode[T Record](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("codec.Encode: record %d: %w", i, err)
		}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("codec.Encode: %w", err)
	}
	return b, nil
}

// Decode unmarshals a JSON array of records and validates each one.
// The returned slice is never nil on success.
func Decode[T Record](data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("codec.Decode: %w", err)
	}
	if records == nil {
		// "null" is valid JSON but never something Encode writes.
		return nil, fmt.Errorf("codec.Decode: expected JSON array, got null")
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("codec.Decode: record %d: %w", i, err)
		}
	}
	return records, nil
}
