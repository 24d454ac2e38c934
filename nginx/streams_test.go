package nginx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali--/jupyterhub-nginx-chp/nginx"
)

func TestShouldParseStreamSpecs(t *testing.T) {
	cases := []struct {
		Name           string
		Spec           string
		ExpectedRoutes []nginx.StreamRoute
	}{
		{
			Name:           "empty spec yields no routes",
			Spec:           "",
			ExpectedRoutes: []nginx.StreamRoute{},
		},
		{
			Name: "single entry",
			Spec: "90=10.0.0.2:800",
			ExpectedRoutes: []nginx.StreamRoute{
				{ListenPort: "90", Destination: "10.0.0.2:800"},
			},
		},
		{
			Name: "multiple entries keep their order",
			Spec: "a=b;c=d",
			ExpectedRoutes: []nginx.StreamRoute{
				{ListenPort: "a", Destination: "b"},
				{ListenPort: "c", Destination: "d"},
			},
		},
		{
			Name: "duplicate port takes the last target",
			Spec: "80=x;80=y",
			ExpectedRoutes: []nginx.StreamRoute{
				{ListenPort: "80", Destination: "y"},
			},
		},
		{
			Name: "duplicate port keeps its first position",
			Spec: "80=x;90=z;80=y",
			ExpectedRoutes: []nginx.StreamRoute{
				{ListenPort: "80", Destination: "y"},
				{ListenPort: "90", Destination: "z"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			routes, err := nginx.ParseStreamSpecs(tc.Spec)
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedRoutes, routes)
		})
	}
}

func TestShouldRejectMalformedStreamSpecs(t *testing.T) {
	cases := []struct {
		Name          string
		Spec          string
		ExpectedEntry string
	}{
		{
			Name:          "entry without separator",
			Spec:          "ab",
			ExpectedEntry: "ab",
		},
		{
			Name:          "entry with two separators",
			Spec:          "a=b=c",
			ExpectedEntry: "a=b=c",
		},
		{
			Name:          "trailing semicolon leaves an empty entry",
			Spec:          "a=b;",
			ExpectedEntry: "",
		},
		{
			Name:          "bad entry rejects the whole spec",
			Spec:          "a=b;oops;c=d",
			ExpectedEntry: "oops",
		},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			routes, err := nginx.ParseStreamSpecs(tc.Spec)
			require.Error(t, err)
			assert.Nil(t, routes)

			var formatErr *nginx.FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tc.ExpectedEntry, formatErr.Entry)
		})
	}
}
