package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when no record matches the requested ID.
var ErrNotFound = errors.New("book not found")

// Book is a locally stored book record. Title, author and description are
// the declared fields; anything else a client sends is kept verbatim in
// Extra so it survives the trip through the store file unchanged.
type Book struct {
	ID          string
	Title       string
	Author      string
	Description *string
	Extra       map[string]json.RawMessage
}

// Payload is a decoded request body: field name to raw JSON value.
type Payload map[string]json.RawMessage

// FromPayload builds a record from a create payload. The ID is left empty;
// the repository assigns it.
func FromPayload(p Payload) (Book, error) {
	b := Book{}
	if err := b.apply(p); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Merge shallow-merges an update payload onto the record. Payload fields
// win; fields absent from the payload are untouched. The stored ID is
// never overwritten.
func (b *Book) Merge(p Payload) error {
	return b.apply(p)
}

func (b *Book) apply(p Payload) error {
	for key, raw := range p {
		var err error
		switch key {
		case "id":
			// ID matching already happened; the stored value stays.
		case "title":
			err = json.Unmarshal(raw, &b.Title)
		case "author":
			err = json.Unmarshal(raw, &b.Author)
		case "description":
			var s string
			if err = json.Unmarshal(raw, &s); err == nil {
				b.Description = &s
			}
		default:
			if b.Extra == nil {
				b.Extra = make(map[string]json.RawMessage)
			}
			b.Extra[key] = raw
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes the declared fields in a fixed order followed by any
// extra fields sorted by name, so the store file stays deterministic.
func (b Book) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(name string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		enc, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(enc)
		return nil
	}

	if err := writeField("id", b.ID); err != nil {
		return nil, err
	}
	if err := writeField("title", b.Title); err != nil {
		return nil, err
	}
	if err := writeField("author", b.Author); err != nil {
		return nil, err
	}
	if b.Description != nil {
		if err := writeField("description", *b.Description); err != nil {
			return nil, err
		}
	}

	extraKeys := make([]string, 0, len(b.Extra))
	for k := range b.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		if err := writeField(k, b.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON splits an object into the declared fields and Extra.
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Book{}
	if idRaw, ok := raw["id"]; ok {
		if err := json.Unmarshal(idRaw, &b.ID); err != nil {
			return fmt.Errorf("field \"id\": %w", err)
		}
		delete(raw, "id")
	}
	return b.apply(raw)
}
