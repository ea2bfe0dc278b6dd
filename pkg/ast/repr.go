package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReprStruct is the canonical structural representation of a subtree: a
// nested arrangement of *Dict, []ReprStruct and scalar values (string, int,
// uint64, float64, bool, nil). It is what the JSON/YAML codecs and visualization
// collaborators consume.
type ReprStruct = any

// Pair is a single key/value entry of a Dict.
type Pair struct {
	Key   string
	Value ReprStruct
}

// Dict is a string-keyed mapping that preserves insertion order. Go maps
// cannot express the ordering the serialized form requires, so the
// structural representation is built from Dicts instead.
type Dict struct {
	pairs []Pair
}

// NewDict creates an empty ordered mapping.
func NewDict() *Dict {
	return &Dict{}
}

// Set appends the key/value pair, replacing the value in place when the key
// already exists. It returns the Dict for chaining.
func (d *Dict) Set(key string, value ReprStruct) *Dict {
	for i := range d.pairs {
		if d.pairs[i].Key == key {
			d.pairs[i].Value = value
			return d
		}
	}
	d.pairs = append(d.pairs, Pair{Key: key, Value: value})
	return d
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (ReprStruct, bool) {
	for i := range d.pairs {
		if d.pairs[i].Key == key {
			return d.pairs[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.pairs))
	for i, p := range d.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the entries in insertion order.
func (d *Dict) Pairs() []Pair {
	out := make([]Pair, len(d.pairs))
	copy(out, d.pairs)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.pairs) }

// MarshalJSON writes the mapping in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the mapping as an order-preserving yaml.Node tree.
func (d *Dict) MarshalYAML() (any, error) {
	return yamlNode(d)
}

func yamlNode(v ReprStruct) (*yaml.Node, error) {
	switch val := v.(type) {
	case *Dict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range val.pairs {
			key := &yaml.Node{}
			if err := key.Encode(p.Key); err != nil {
				return nil, err
			}
			value, err := yamlNode(p.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, key, value)
		}
		return n, nil
	case []ReprStruct:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// ToJSON serializes a node's full (non-simplified) structural representation
// as indented JSON. Given stable tree shape the output is byte-stable across
// round trips.
func ToJSON(node AST) (string, error) {
	data, err := json.MarshalIndent(node.GetStruct(false), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToYAML serializes a node's full structural representation as YAML,
// preserving mapping key order.
func ToYAML(node AST) (string, error) {
	data, err := yaml.Marshal(node.GetStruct(false))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StructFromJSON parses JSON text into a ReprStruct, preserving mapping key
// order. Numbers decode to int when integral, uint64 past the signed 64-bit
// range, and float64 otherwise.
func StructFromJSON(data []byte) (ReprStruct, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (ReprStruct, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (ReprStruct, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d := NewDict()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				d.Set(key, value)
			}
			// consume '}'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return d, nil
		case '[':
			items := make([]ReprStruct, 0)
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, value)
			}
			// consume ']'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			i, err := t.Int64()
			if err == nil {
				return int(i), nil
			}
			u, err := strconv.ParseUint(s, 10, 64)
			if err == nil {
				return u, nil
			}
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		// string, bool, nil
		return t, nil
	}
}

// StructFromYAML parses YAML text into a ReprStruct, preserving mapping key
// order.
func StructFromYAML(data []byte) (ReprStruct, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return structFromYAMLNode(doc.Content[0])
	}
	return structFromYAMLNode(&doc)
}

func structFromYAMLNode(n *yaml.Node) (ReprStruct, error) {
	switch n.Kind {
	case yaml.MappingNode:
		d := NewDict()
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := structFromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			d.Set(n.Content[i].Value, value)
		}
		return d, nil
	case yaml.SequenceNode:
		items := make([]ReprStruct, 0, len(n.Content))
		for _, child := range n.Content {
			value, err := structFromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int":
			var i int
			if err := n.Decode(&i); err == nil {
				return i, nil
			}
			var u uint64
			if err := n.Decode(&u); err != nil {
				return nil, err
			}
			return u, nil
		case "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, err
			}
			return f, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!null":
			return nil, nil
		default:
			return n.Value, nil
		}
	case yaml.AliasNode:
		return structFromYAMLNode(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}
