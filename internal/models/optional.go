package models

import (
	"bytes"
	"encoding/json"
)

// OptionalID distinguishes an absent JSON field from an explicit null.
//
//	{}                 -> Set=false
//	{"order_ID": null} -> Set=true, Valid=false
//	{"order_ID": 7}    -> Set=true, Valid=true, ID=7
type OptionalID struct {
	Set   bool
	Valid bool
	ID    int64
}

func SomeID(id int64) OptionalID { return OptionalID{Set: true, Valid: true, ID: id} }
func NullID() OptionalID         { return OptionalID{Set: true} }

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Valid, o.ID = false, 0
		return nil
	}
	if err := json.Unmarshal(b, &o.ID); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.ID)
}

// Ptr returns the value as a nullable id. Meaningful only when Set.
func (o OptionalID) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	id := o.ID
	return &id
}

func SameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func IDPtr(id int64) *int64 { return &id }
