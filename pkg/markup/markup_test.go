package markup

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cases := map[string]struct {
		text        string
		expectedLen int
		expectedErr bool
	}{
		"Normal":  {text: "hello world", expectedLen: 11},
		"Unicode": {text: "grüße", expectedLen: 5},
		"Empty":   {text: "", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := New(name, tc.text)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedLen, d.Len())
			assert.Equal(t, tc.text, d.Text())
			assert.Equal(t, name, d.Name())
		})
	}
}

func TestTag(t *testing.T) {
	cases := map[string]struct {
		tags        map[string]string
		expected    string
		expectedErr bool
	}{
		"Nested": {
			tags:     map[string]string{"b": "2-10", "i": "5-15", "u": "8-12"},
			expected: "01<b>234<i>567<u>89</u></i></b><i><u>ab</u>cde</i>fghij",
		},
		"Clipped": {
			tags:     map[string]string{"b": "15-40"},
			expected: "0123456789abcde<b>fghij</b>",
		},
		"InvalidRange": {
			tags:        map[string]string{"b": "10"},
			expectedErr: true,
		},
		"EmptyTag": {
			tags:        map[string]string{"": "1-2"},
			expectedErr: true,
		},
		"MarkupInTag": {
			tags:        map[string]string{"<b>": "1-2"},
			expectedErr: true,
		},
		"WhitespaceInTag": {
			tags:        map[string]string{"a b": "1-2"},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := New(name, "0123456789abcdefghij")
			require.NoError(t, err)

			// apply in a fixed order, the nesting depends on it
			for _, tag := range []string{"b", "i", "u", "", "<b>", "a b"} {
				s, ok := tc.tags[tag]
				if !ok {
					continue
				}
				err := d.TagRange(tag, s)
				if tc.expectedErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
			}
			got, err := d.Render()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestUntag(t *testing.T) {
	d, err := New("doc", "The quick brown fox")
	require.NoError(t, err)
	require.NoError(t, d.Tag("b", 4, 15))
	require.NoError(t, d.Tag("i", 10, 19))

	removed, err := d.UntagRange("b", "4-10")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = d.Untag("u", 0, 19)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = d.Untag("", 0, 1)
	assert.Error(t, err)
	_, err = d.UntagRange("b", "x-y")
	assert.Error(t, err)

	got, err := d.Render()
	require.NoError(t, err)
	assert.Equal(t, "The quick <b><i>brown</i></b><i> fox</i>", got)

	assert.True(t, d.Has("b", 10, 15))
	assert.False(t, d.Has("b", 4, 15))
	assert.True(t, d.Has("i", 10, 19))
	assert.Equal(t, []string{"b", "i"}, d.TagsAt(12))
	assert.Equal(t, []string{"i"}, d.TagsAt(16))
	assert.Equal(t, []string{"b", "i"}, d.Tags())
	assert.Len(t, d.Spans(), 3)
}

func TestRenderWith(t *testing.T) {
	d, err := New("doc", "abc")
	require.NoError(t, err)
	require.NoError(t, d.Tag("strong", 0, 2))

	got, err := d.RenderWith(func(tag string, opening bool) string {
		if opening {
			return fmt.Sprintf("[%s]", tag)
		}
		return fmt.Sprintf("[/%s]", tag)
	})
	require.NoError(t, err)
	assert.Equal(t, "[strong]ab[/strong]c", got)
}

func TestClone(t *testing.T) {
	d, err := New("doc", "abcdef")
	require.NoError(t, err)
	require.NoError(t, d.Tag("b", 0, 6))

	c := d.Clone()
	_, err = c.Untag("b", 0, 6)
	require.NoError(t, err)

	assert.True(t, d.Has("b", 0, 6))
	assert.False(t, c.Has("b", 0, 6))
}

func TestConcurrentAccess(t *testing.T) {
	d, err := New("doc", "0123456789abcdefghij")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag := fmt.Sprintf("t%d", i%3)
			assert.NoError(t, d.Tag(tag, i, i+5))
			_, err := d.Render()
			assert.NoError(t, err)
			d.Has(tag, i, i+5)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.True(t, d.Has(fmt.Sprintf("t%d", i%3), i, i+5))
	}
}
