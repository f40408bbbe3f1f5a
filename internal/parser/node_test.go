package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func parseNode(t *testing.T, content string) *yaml.Node {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(content), &root))
	require.Equal(t, yaml.DocumentNode, root.Kind)
	return root.Content[0]
}

func TestNarrowing(t *testing.T) {
	m := parseNode(t,"h: &anchor {y: 2}\na: {x: 1}\nb: [1, 2]\nc: text\nd: null\ne: 3\ng: *anchor\n")

	a, _ := Lookup(m, "a")
	b, _ := Lookup(m, "b")
	c, _ := Lookup(m, "c")
	d, _ := Lookup(m, "d")
	e, _ := Lookup(m, "e")
	g, _ := Lookup(m, "g")

	assert.True(t, IsMapping(a))
	assert.False(t, IsSequence(a))
	assert.True(t, IsSequence(b))
	assert.False(t, IsMapping(b))
	assert.True(t, IsNull(d))
	assert.False(t, IsNull(c))
	assert.True(t, IsMapping(g), "alias resolves to the anchored mapping")

	s, ok := StringValue(c)
	assert.True(t, ok)
	assert.Equal(t, "text", s)

	_, ok = StringValue(e)
	assert.False(t, ok, "integer scalar is not a string")

	_, ok = StringValue(a)
	assert.False(t, ok)

	_, ok = Lookup(m, "missing")
	assert.False(t, ok)
	_, ok = Lookup(c, "anything")
	assert.False(t, ok, "lookup on a scalar fails instead of panicking")
}

func TestSetKeepsPosition(t *testing.T) {
	m := parseNode(t, "first: 1\nsecond: 2\nthird: 3\n")

	Set(m, "second", NewString("two"))
	Set(m, "fourth", NewString("four"))

	pairs := Pairs(m)
	require.Len(t, pairs, 4)
	assert.Equal(t, []string{"first", "second", "third", "fourth"},
		[]string{pairs[0].Key, pairs[1].Key, pairs[2].Key, pairs[3].Key})
	assert.Equal(t, "two", pairs[1].Value.Value)
	assert.Equal(t, "four", pairs[3].Value.Value)
}

func TestSetOnNonMappingIsNoop(t *testing.T) {
	seq := NewSequence()
	Set(seq, "key", NewString("value"))
	assert.Empty(t, seq.Content)

	Set(nil, "key", NewString("value"))
}

func TestNewMapping(t *testing.T) {
	m := NewMapping(
		KeyValue{Key: "lang", Value: NewString("curl")},
		KeyValue{Key: "source", Value: NewString("curl http://x")},
	)

	lang, ok := Lookup(m, "lang")
	require.True(t, ok)
	v, ok := StringValue(lang)
	require.True(t, ok)
	assert.Equal(t, "curl", v)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "lang: curl\nsource: curl http://x\n", string(out))
}
