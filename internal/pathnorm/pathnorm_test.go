package pathnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"/users":                         "/users",
		"/users/":                        "/users",
		"users":                          "/users",
		"/":                              "/",
		"https://api.example.com/users":  "/users",
		"/users?x=1":                     "/users",
		"/users#frag":                    "/users",
		"https://api.example.com/users/": "/users",
		"":                               "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()
	once := Normalize("https://api.example.com/users/1/?x=1")
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestSplit(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"users", "1"}, Split("/users/1"))
	assert.Equal(t, []string{}, Split("/"))
	assert.Equal(t, []string{}, Split(""))
}
