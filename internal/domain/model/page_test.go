package model

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageRequest
		wantPage  int
		wantLimit int
	}{
		{"zero values", PageRequest{}, 1, 12},
		{"negative page", PageRequest{Page: -3, Limit: 5}, 1, 5},
		{"explicit values kept", PageRequest{Page: 4, Limit: 20}, 4, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize(12)
			if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
				t.Fatalf("Normalize = %+v, want page %d limit %d", got, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	if off := (PageRequest{Page: 1, Limit: 10}).Offset(); off != 0 {
		t.Fatalf("offset = %d, want 0", off)
	}
	if off := (PageRequest{Page: 3, Limit: 10}).Offset(); off != 20 {
		t.Fatalf("offset = %d, want 20", off)
	}
}

func TestPageRequestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}

	for _, tc := range tests {
		page := PageRequest{Page: 1, Limit: tc.limit}
		if got := page.TotalPages(tc.total); got != tc.want {
			t.Fatalf("TotalPages(%d) with limit %d = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
