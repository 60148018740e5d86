package console

import (
	"testing"

	"scroll-agent/internal/entity"
	"scroll-agent/internal/scroll"
)

func TestParseScrollOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    scroll.Options
		wantErr bool
	}{
		{
			name: "no arguments keep the default",
			args: nil,
			want: nil,
		},
		{
			name: "top is the true shorthand",
			args: []string{"top"},
			want: scroll.AlignFlag(true),
		},
		{
			name: "bottom is the false shorthand",
			args: []string{"bottom"},
			want: scroll.AlignFlag(false),
		},
		{
			name: "block only",
			args: []string{"center"},
			want: scroll.WebOptions{Block: entity.AlignCenter},
		},
		{
			name: "block and inline",
			args: []string{"end", "nearest"},
			want: scroll.WebOptions{Block: entity.AlignEnd, Inline: entity.AlignNearest},
		},
		{
			name:    "invalid alignment",
			args:    []string{"middle"},
			wantErr: true,
		},
		{
			name:    "invalid inline alignment",
			args:    []string{"start", "sideways"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScrollOptions(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Error("parseScrollOptions() = nil error; want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScrollOptions() = error %v; want nil", err)
			}
			if got != tt.want {
				t.Errorf("parseScrollOptions() = %#v; want %#v", got, tt.want)
			}
		})
	}
}
