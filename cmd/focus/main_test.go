package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"focus"},
			want: []string{"focus"},
		},
		{
			name: "task id first token",
			in:   []string{"focus", "task-ab12"},
			want: []string{"focus", "tasks", "show", "task-ab12"},
		},
		{
			name: "task id after value flag",
			in:   []string{"focus", "--dir", "./tmp-ws", "task-ab12"},
			want: []string{"focus", "--dir", "./tmp-ws", "tasks", "show", "task-ab12"},
		},
		{
			name: "task id after equals flag",
			in:   []string{"focus", "--format=yaml", "task-ab12"},
			want: []string{"focus", "--format=yaml", "tasks", "show", "task-ab12"},
		},
		{
			name: "task id after bool flag",
			in:   []string{"focus", "--pretty", "task-ab12"},
			want: []string{"focus", "--pretty", "tasks", "show", "task-ab12"},
		},
		{
			name: "task id after double dash",
			in:   []string{"focus", "--log-level", "debug", "--", "task-ab12"},
			want: []string{"focus", "--log-level", "debug", "--", "tasks", "show", "task-ab12"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"focus", "task-"},
			want: []string{"focus", "task-"},
		},
		{
			name: "subtask id not rewritten",
			in:   []string{"focus", "sub-abcde"},
			want: []string{"focus", "sub-abcde"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"focus", "belt", "show", "task-ab12"},
			want: []string{"focus", "belt", "show", "task-ab12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectTaskLookupArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
