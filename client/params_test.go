package client

import (
	"net/url"
	"testing"

	"github.com/atpstorages/gotumblr/api/tumblr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	{
		input := map[string]any{
			"int":       int(-1),
			"uint32":    uint32(32),
			"str":       "hello",
			"bool":      true,
			"blog":      tumblr.BlogName("staff"),
			"size":      tumblr.AvatarSize64,
			"multiBool": []bool{true, false},
			"multiBlog": []tumblr.BlogName{"staff", "changes"},
		}
		expect := url.Values(map[string][]string{
			"int":       []string{"-1"},
			"uint32":    []string{"32"},
			"str":       []string{"hello"},
			"bool":      []string{"true"},
			"blog":      []string{"staff"},
			"size":      []string{"64"},
			"multiBool": []string{"true", "false"},
			"multiBlog": []string{"staff", "changes"},
		})
		output, err := ParseParams(input)
		require.NoError(err)
		assert.Equal(expect, output)
	}

	{
		// unsupported type
		input := map[string]any{
			"map": map[string]int{"a": 123},
		}
		_, err := ParseParams(input)
		assert.Error(err)
	}

	{
		input := struct {
			Limit  int    `url:"limit,omitempty"`
			Before int64  `url:"before,omitempty"`
			Filter string `url:"filter,omitempty"`
		}{Limit: 20}
		output, err := ParseParams(&input)
		require.NoError(err)
		assert.Equal(url.Values{"limit": []string{"20"}}, output)
	}

	{
		input := url.Values{"a": []string{"1"}}
		output, err := ParseParams(input)
		require.NoError(err)
		output.Set("a", "2")
		assert.Equal("1", input.Get("a"))
	}

	{
		output, err := ParseParams(nil)
		require.NoError(err)
		assert.Empty(output)

		_, err = ParseParams(42)
		assert.Error(err)
	}
}

func TestRouteName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("blog/{blog}/posts", routeName("blog/staff.tumblr.com/posts"))
	assert.Equal("blog/{blog}/avatar/{n}", routeName("blog/t:abc/avatar/64"))
	assert.Equal("tagged", routeName("tagged"))
	assert.Equal("user/info", routeName("/user/info"))
}
