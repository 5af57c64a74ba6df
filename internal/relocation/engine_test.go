package relocation

import "testing"

func TestClassifyAndAdjust(t *testing.T) {
	// rs=10, re=20, new_length=5 (Δ = 5 - 10 = -5) exercises every case
	// against the literal boundaries from the decision table.
	const rs, re, newLength = 10, 20, 5
	delta := newLength - (re - rs)
	if delta != -5 {
		t.Fatalf("test setup: expected delta -5, got %d", delta)
	}

	cases := []struct {
		name            string
		s, e            int
		wantCase        Case
		wantStart       int
		wantEnd         int
		wantDeleteOwner bool
	}{
		{"case 1: entirely after", 0, 5, CaseAfter, 0, 5, false},
		{"case 1: boundary rs==e", 5, 10, CaseAfter, 5, 10, false},
		{"case 2: entirely before", 25, 30, CaseBefore, 25 + delta, 30 + delta, false},
		{"case 2: boundary re==s", 20, 25, CaseBefore, 20 + delta, 25 + delta, false},
		{"case 3: edit fully covers span", 12, 18, CaseEngulfed, 0, 0, true},
		{"case 3: edit exactly equals span", 10, 20, CaseEngulfed, 0, 0, true},
		{"case 4: overlaps left edge", 15, 25, CaseLeftOverlap, rs + newLength, 25 + delta, false},
		{"case 5: edit strictly inside span", 5, 25, CaseInside, 5, 25 + delta, false},
		{"case 6: overlaps right edge", 5, 15, CaseRightOverlap, 5, rs, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(rs, re, tc.s, tc.e); got != tc.wantCase {
				t.Fatalf("Classify(%d,%d,%d,%d) = %d, want %d", rs, re, tc.s, tc.e, got, tc.wantCase)
			}
			start, end, del := Adjust(rs, re, newLength, tc.s, tc.e)
			if del != tc.wantDeleteOwner {
				t.Fatalf("Adjust delete flag = %v, want %v", del, tc.wantDeleteOwner)
			}
			if !del {
				if start != tc.wantStart || end != tc.wantEnd {
					t.Fatalf("Adjust(%d,%d,%d,%d) = (%d,%d), want (%d,%d)", rs, re, newLength, tc.s, tc.e, start, end, tc.wantStart, tc.wantEnd)
				}
			}
		})
	}
}

func TestCaseLabelsAreStable(t *testing.T) {
	want := map[Case]string{
		CaseAfter: "1", CaseBefore: "2", CaseEngulfed: "3",
		CaseLeftOverlap: "4", CaseInside: "5", CaseRightOverlap: "6",
	}
	for c, label := range want {
		if got := caseLabel(c); got != label {
			t.Errorf("caseLabel(%d) = %q, want %q", c, got, label)
		}
	}
}
