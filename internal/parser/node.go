package parser

import "go.yaml.in/yaml/v3"

// The helpers below narrow a *yaml.Node to the kind a caller expects.
// A failed narrowing returns the zero answer instead of panicking, so the
// annotation pass can skip or recreate values it does not understand.

// Resolve follows alias nodes to the anchored value
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// IsMapping reports whether n resolves to a mapping
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n resolves to a sequence
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsNull reports whether n is absent or an explicit null scalar
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	if n == nil || n.Kind == 0 {
		return true
	}
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// StringValue returns the value of a string scalar
func StringValue(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", false
	}
	return n.Value, true
}

// Lookup returns the value node stored under key in mapping m
func Lookup(m *yaml.Node, key string) (*yaml.Node, bool) {
	i := lookupIndex(m, key)
	if i < 0 {
		return nil, false
	}
	return Resolve(m).Content[i], true
}

// Set stores value under key in mapping m, keeping the key's position when
// it already exists and appending it otherwise
func Set(m *yaml.Node, key string, value *yaml.Node) {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return
	}
	if i := lookupIndex(m, key); i >= 0 {
		m.Content[i] = value
		return
	}
	m.Content = append(m.Content, NewString(key), value)
}

// Pairs returns the keys of mapping m with their raw value nodes in order
func Pairs(m *yaml.Node) []KeyValue {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]KeyValue, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		pairs = append(pairs, KeyValue{Key: Resolve(m.Content[i]).Value, Value: m.Content[i+1]})
	}
	return pairs
}

// KeyValue is one entry of a mapping node
type KeyValue struct {
	Key   string
	Value *yaml.Node
}

// NewString returns a plain string scalar
func NewString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// NewSequence returns an empty block sequence
func NewSequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// NewMapping returns a block mapping holding pairs in order
func NewMapping(pairs ...KeyValue) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range pairs {
		m.Content = append(m.Content, NewString(p.Key), p.Value)
	}
	return m
}

// returns the index of the value node for key in m.Content, or -1
func lookupIndex(m *yaml.Node, key string) int {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := Resolve(m.Content[i])
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return i + 1
		}
	}
	return -1
}
