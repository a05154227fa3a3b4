package jsonTree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Member is one key/value pair of an object. Objects keep their members in
// document order and keep repeated keys.
type Member struct {
	Key    string
	Value  *Node
	rawKey []byte
}

// Node is an order-preserving JSON value.
type Node struct {
	Kind    Kind
	Members []Member
	Items   []*Node

	str     string
	boolean bool
	// raw holds the literal as it appeared in the source, nil for built values.
	raw []byte
}

func NewObject() *Node {
	return &Node{Kind: Object}
}

func NewString(s string) *Node {
	return &Node{Kind: String, str: s}
}

func NewBool(b bool) *Node {
	return &Node{Kind: Bool, boolean: b}
}

func NewNull() *Node {
	return &Node{Kind: Null}
}

// Get returns the value of the first member named key.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != Object {
		return nil
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Lookup returns the values of every member named key, in document order.
func (n *Node) Lookup(key string) []*Node {
	if n == nil || n.Kind != Object {
		return nil
	}
	var values []*Node
	for _, m := range n.Members {
		if m.Key == key {
			values = append(values, m.Value)
		}
	}
	return values
}

// Set replaces the first member named key in place, or appends a new member.
func (n *Node) Set(key string, value *Node) {
	for i := range n.Members {
		if n.Members[i].Key == key {
			n.Members[i].Value = value
			return
		}
	}
	n.Members = append(n.Members, Member{Key: key, Value: value})
}

// Append adds a member without looking for an existing key.
func (n *Node) Append(key string, value *Node) {
	n.Members = append(n.Members, Member{Key: key, Value: value})
}

// AppendMember adds m as is, keeping the key's original spelling.
func (n *Node) AppendMember(m Member) {
	n.Members = append(n.Members, m)
}

func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.Members))
	for _, m := range n.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// IsNull reports whether n is missing or a JSON null.
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == Null
}

func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Kind != String {
		return "", false
	}
	return n.str, true
}

// Text is the string value for strings and the compact JSON text otherwise.
func (n *Node) Text() string {
	if s, ok := n.StringValue(); ok {
		return s
	}
	return string(n.Compact())
}

// Compact serializes the node without insignificant whitespace.
func (n *Node) Compact() []byte {
	var buf bytes.Buffer
	n.writeTo(&buf)
	return buf.Bytes()
}

// Indent serializes the node with two-space indentation.
func (n *Node) Indent() ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, n.Compact(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (n *Node) writeTo(buf *bytes.Buffer) {
	if n == nil {
		buf.WriteString("null")
		return
	}
	switch n.Kind {
	case Object:
		buf.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if m.rawKey != nil {
				buf.Write(m.rawKey)
			} else {
				writeString(buf, m.Key)
			}
			buf.WriteByte(':')
			m.Value.writeTo(buf)
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeTo(buf)
		}
		buf.WriteByte(']')
	default:
		if n.raw != nil {
			buf.Write(n.raw)
			return
		}
		switch n.Kind {
		case String:
			writeString(buf, n.str)
		case Bool:
			if n.boolean {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		default:
			buf.WriteString("null")
		}
	}
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode never fails for a string and appends a newline we drop.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}

// Parse reads a single JSON value. Repeated object keys are kept as separate
// members and scalar literals are kept byte-for-byte.
func Parse(data []byte) (*Node, error) {
	p := &parser{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	p.dec.UseNumber()

	tok, raw, err := p.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	node, err := p.value(tok, raw)
	if err != nil {
		return nil, err
	}

	if _, err := p.dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", p.dec.InputOffset())
	}
	return node, nil
}

type parser struct {
	data []byte
	dec  *json.Decoder
}

const separators = " \t\r\n,:"

func (p *parser) next() (json.Token, []byte, error) {
	start := p.dec.InputOffset()
	tok, err := p.dec.Token()
	if err != nil {
		return nil, nil, err
	}
	end := p.dec.InputOffset()
	raw := bytes.TrimLeft(p.data[start:end], separators)
	return tok, raw, nil
}

func (p *parser) value(tok json.Token, raw []byte) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	case string:
		return &Node{Kind: String, str: v, raw: clone(raw)}, nil
	case json.Number:
		return &Node{Kind: Number, raw: clone(raw)}, nil
	case bool:
		return &Node{Kind: Bool, boolean: v, raw: clone(raw)}, nil
	case nil:
		return &Node{Kind: Null, raw: clone(raw)}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (p *parser) object() (*Node, error) {
	node := NewObject()
	for {
		tok, raw, err := p.next()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return node, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		rawKey := clone(raw)

		tok, raw, err = p.next()
		if err != nil {
			return nil, err
		}
		value, err := p.value(tok, raw)
		if err != nil {
			return nil, err
		}
		node.Members = append(node.Members, Member{Key: key, Value: value, rawKey: rawKey})
	}
}

func (p *parser) array() (*Node, error) {
	node := &Node{Kind: Array}
	for {
		tok, raw, err := p.next()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return node, nil
		}
		item, err := p.value(tok, raw)
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, item)
	}
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
