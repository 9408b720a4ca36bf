package store

import "testing"

func TestPageRequestNormalized(t *testing.T) {
	cases := []struct {
		name string
		in   PageRequest
		page int
		size int
	}{
		{"zero value", PageRequest{}, 1, defaultPageSize},
		{"negative page", PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"size clamped", PageRequest{Page: 2, PageSize: 500}, 2, maxPageSize},
		{"in range", PageRequest{Page: 4, PageSize: 25}, 4, 25},
	}
	for _, tc := range cases {
		page, size := tc.in.Normalized()
		if page != tc.page || size != tc.size {
			t.Errorf("%s: got (%d,%d) want (%d,%d)", tc.name, page, size, tc.page, tc.size)
		}
	}
}
