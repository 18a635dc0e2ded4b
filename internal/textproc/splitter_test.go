package textproc

import (
	"reflect"
	"testing"
)

func TestSplitComments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "two comments with trailing separator",
			raw:  "Great! || Nice one! || ",
			want: []string{"Great!", "Nice one!"},
		},
		{
			name: "single comment",
			raw:  "Keren banget videonya",
			want: []string{"Keren banget videonya"},
		},
		{
			name: "whitespace around segments is trimmed",
			raw:  "  pertama  ||  kedua  ",
			want: []string{"pertama", "kedua"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "blank input",
			raw:  "   ",
			want: nil,
		},
		{
			name: "separator only",
			raw:  " || ",
			want: []string{},
		},
		{
			name: "pipes without surrounding spaces are not separators",
			raw:  "a||b",
			want: []string{"a||b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitComments(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				if (got == nil) != (tt.want == nil) {
					t.Fatalf("SplitComments(%q) nil-ness = %v, want %v", tt.raw, got == nil, tt.want == nil)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitComments(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
