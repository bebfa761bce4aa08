package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ParseJSON reads a JSON array of row objects. Keys become columns in the order
// they first appear; values must be numbers, strings, booleans or null.
func ParseJSON(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	b := NewBuilder()
	for row := 0; dec.More(); row++ {
		keys, values, err := decodeRow(dec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse data file: row %d: %w", row, err)
		}
		b.AddRow(keys, values)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return b.Table(), nil
}

func decodeRow(dec *json.Decoder) ([]string, []Value, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	var keys []string
	var values []Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		v, err := jsonValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("key %q: %w", key, err)
		}
		keys = append(keys, key)
		values = append(values, v)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func jsonValue(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	}
	return Value{}, fmt.Errorf("unsupported value of type %T, cells must be scalars", raw)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("unexpected end of input, expected %q", want)
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// EncodeJSON writes the table as a JSON array of row objects, keeping column
// order inside every object.
func EncodeJSON(w io.Writer, t *Table, pretty bool) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for ri := 0; ri < t.Len(); ri++ {
		if ri > 0 {
			buf.WriteByte(',')
		}
		if pretty {
			buf.WriteString("\n  ")
		}
		buf.WriteByte('{')
		for ci, c := range t.columns {
			if ci > 0 {
				buf.WriteByte(',')
				if pretty {
					buf.WriteByte(' ')
				}
			}
			key, err := json.Marshal(c.Name)
			if err != nil {
				return err
			}
			val, err := json.Marshal(c.Values[ri].Interface())
			if err != nil {
				return fmt.Errorf("failed to encode column %q: %w", c.Name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	if pretty && t.Len() > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}
