package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNoData = errors.New("apiclient: envelope carries no data")

// Envelope is the uniform response shape of every backend endpoint.
// Callers branch on Status only; Data is decoded on demand.
type Envelope struct {
	Status     bool            `json:"status"`
	StatusCode int             `json:"status_code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     ErrorBag        `json:"errors,omitempty"`
}

func (e Envelope) HasData() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (e Envelope) DecodeData(v any) error {
	if !e.HasData() {
		return ErrNoData
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

type ErrorKind int

const (
	SingleMessage ErrorKind = iota + 1
	MessageList
)

// ErrorValue is one entry of the envelope's errors map: either a single
// message or a list of messages. Non-string JSON values decode to a zero
// ErrorValue and are skipped during extraction.
type ErrorValue struct {
	Kind   ErrorKind
	Single string
	List   []string
}

func (v *ErrorValue) UnmarshalJSON(data []byte) error {
	*v = ErrorValue{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		v.Kind = SingleMessage
		v.Single = s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		v.Kind = MessageList
		v.List = make([]string, 0, len(items))
		for _, item := range items {
			var s string
			if json.Unmarshal(item, &s) != nil {
				s = ""
			}
			v.List = append(v.List, s)
		}
	}
	return nil
}

// First returns the message this value contributes, or "" when it has none.
// Only the first element of a list is considered.
func (v ErrorValue) First() string {
	switch v.Kind {
	case SingleMessage:
		return strings.TrimSpace(v.Single)
	case MessageList:
		if len(v.List) > 0 {
			return strings.TrimSpace(v.List[0])
		}
	}
	return ""
}

type FieldError struct {
	Field string
	Value ErrorValue
}

// ErrorBag keeps the backend's key order so "first error" is stable.
type ErrorBag []FieldError

func (b *ErrorBag) UnmarshalJSON(data []byte) error {
	*b = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		return b.decodeObject(trimmed)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		for i, item := range items {
			var value ErrorValue
			if err := value.UnmarshalJSON(item); err != nil {
				return err
			}
			*b = append(*b, FieldError{Field: strconv.Itoa(i), Value: value})
		}
		return nil
	default:
		var value ErrorValue
		if err := value.UnmarshalJSON(trimmed); err != nil {
			return err
		}
		*b = ErrorBag{{Value: value}}
		return nil
	}
}

func (b *ErrorBag) decodeObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field, ok := tok.(string)
		if !ok {
			return fmt.Errorf("errors: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		var value ErrorValue
		if err := value.UnmarshalJSON(raw); err != nil {
			return err
		}
		*b = append(*b, FieldError{Field: field, Value: value})
	}

	_, err := dec.Token()
	return err
}

func (b ErrorBag) First() string {
	for _, fe := range b {
		if msg := fe.Value.First(); msg != "" {
			return msg
		}
	}
	return ""
}

// ErrorMessage picks the text shown for a rejected request: the envelope
// message, else the first non-empty entry in errors, else fallback.
func ErrorMessage(env Envelope, fallback string) string {
	if msg := strings.TrimSpace(env.Message); msg != "" {
		return msg
	}
	if msg := env.Errors.First(); msg != "" {
		return msg
	}
	return fallback
}
