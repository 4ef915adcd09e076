package listing

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{100, 10, 10},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestHasPrev(t *testing.T) {
	if HasPrev(1) {
		t.Fatalf("previous must be disabled on page 1")
	}
	if !HasPrev(2) {
		t.Fatalf("previous must be enabled on page 2")
	}
}

func TestHasNext(t *testing.T) {
	// 23 rows, 10 per page
	if !HasNext(1, 10, 23) {
		t.Fatalf("next must be enabled on page 1 of 3")
	}
	if !HasNext(2, 10, 23) {
		t.Fatalf("next must be enabled on page 2 of 3")
	}
	if HasNext(3, 10, 23) {
		t.Fatalf("next must be disabled on the last page")
	}

	// exact boundary: 20 rows, 10 per page
	if HasNext(2, 10, 20) {
		t.Fatalf("next must be disabled when page*limit == total")
	}

	if HasNext(1, 10, 0) {
		t.Fatalf("next must be disabled with no rows")
	}
}
