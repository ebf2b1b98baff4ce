package router

import "testing"

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"option 2", 2, true},
		{"2", 2, true},
		{"second", 2, true},
		{"use option 2", 2, true},
		{"#2", 2, true},
		{"choose option 1", 1, true},
		{"go with option 3", 3, true},
		{"option number 3", 3, true},
		{"number 1", 1, true},
		{"the first one", 1, true},
		{"Option 3", 3, true},
		{"option 4", 0, false},
		{"4", 0, false},
		{"draft: I'll pick option 2 for my intro", 0, false},
		{"draft option 2", 0, false},
		{"enhance option 2", 0, false},
		{"improve option 2", 0, false},
		{"research: option 2 pricing", 0, false},
		{"example: option 1", 0, false},
		{"I think the one about grinders is the best option 2 honestly", 0, false},
		{"someone alone", 0, false},
		{"this is the second time I have brewed a cup", 0, false},
		{"hook", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSelection(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseSelection(%q) = %d, %v, want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
