package scroll

import (
	"reflect"
	"testing"

	"scroll-agent/internal/entity"
)

func TestNormalizeWeb(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want WebOptions
	}{
		{
			name: "true shorthand aligns to top",
			opts: AlignFlag(true),
			want: WebOptions{Block: entity.AlignStart, Inline: entity.AlignNearest},
		},
		{
			name: "false shorthand aligns to bottom",
			opts: AlignFlag(false),
			want: WebOptions{Block: entity.AlignEnd, Inline: entity.AlignNearest},
		},
		{
			name: "nil options default",
			opts: nil,
			want: WebOptions{Block: entity.AlignStart, Inline: entity.AlignNearest},
		},
		{
			name: "alignment record passes through",
			opts: WebOptions{Block: entity.AlignCenter},
			want: WebOptions{Block: entity.AlignCenter},
		},
		{
			name: "native options carry no web alignment",
			opts: NativeOptions{Direction: entity.DirectionUp},
			want: WebOptions{Block: entity.AlignStart, Inline: entity.AlignNearest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeWeb(tt.opts); got != tt.want {
				t.Errorf("normalizeWeb() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeNative(t *testing.T) {
	tests := []struct {
		name           string
		opts           Options
		wantDirection  entity.Direction
		wantMaxScrolls int
	}{
		{
			name:           "defaults",
			opts:           nil,
			wantDirection:  entity.DirectionDown,
			wantMaxScrolls: 10,
		},
		{
			name:           "explicit values preserved",
			opts:           NativeOptions{Direction: entity.DirectionLeft, MaxScrolls: 3},
			wantDirection:  entity.DirectionLeft,
			wantMaxScrolls: 3,
		},
		{
			name:           "partial merge keeps the missing default",
			opts:           NativeOptions{MaxScrolls: 5},
			wantDirection:  entity.DirectionDown,
			wantMaxScrolls: 5,
		},
		{
			name:           "web options fall back to all defaults",
			opts:           WebOptions{Block: entity.AlignCenter},
			wantDirection:  entity.DirectionDown,
			wantMaxScrolls: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeNative(tt.opts)
			if got.Direction != tt.wantDirection || got.MaxScrolls != tt.wantMaxScrolls {
				t.Errorf("normalizeNative() = %+v; want direction %s, maxScrolls %d",
					got, tt.wantDirection, tt.wantMaxScrolls)
			}
		})
	}
}

func TestEngineArg(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want any
	}{
		{
			name: "boolean shorthand stays a raw boolean",
			opts: AlignFlag(true),
			want: true,
		},
		{
			name: "false shorthand stays a raw boolean",
			opts: AlignFlag(false),
			want: false,
		},
		{
			name: "alignment record keeps only the set keys",
			opts: WebOptions{Behavior: "smooth", Block: entity.AlignCenter},
			want: map[string]any{"behavior": "smooth", "block": "center"},
		},
		{
			name: "nil options become the entry default",
			opts: nil,
			want: map[string]any{"block": "start", "inline": "nearest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engineArg(tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("engineArg() = %#v; want %#v", got, tt.want)
			}
		})
	}
}
