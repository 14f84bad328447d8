package reader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/flatcat/document"
)

// parseJSON decodes a single JSON value token by token so object members
// keep their source order and numbers keep their literal text.
func parseJSON(data []byte) (*document.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	doc, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}
	return doc, nil
}

func decodeJSONValue(dec *json.Decoder) (*document.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return document.NewString(t), nil
	case json.Number:
		return document.NewNumber(t.String()), nil
	case bool:
		return document.NewBool(t), nil
	case nil:
		return document.NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*document.Node, error) {
	var members []document.Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", name, err)
		}
		members = append(members, document.Member{Name: name, Value: value})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return document.NewObject(members...), nil
}

func decodeJSONArray(dec *json.Decoder) (*document.Node, error) {
	var elems []*document.Node
	for dec.More() {
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(elems), err)
		}
		elems = append(elems, value)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return document.NewArray(elems...), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
