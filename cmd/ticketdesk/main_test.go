package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteDirectTicketLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"ticketdesk"},
			want: []string{"ticketdesk"},
		},
		{
			name: "direct id first token",
			in:   []string{"ticketdesk", "42"},
			want: []string{"ticketdesk", "tickets", "show", "42"},
		},
		{
			name: "direct id after value flag",
			in:   []string{"ticketdesk", "--server", "http://localhost:9000", "42"},
			want: []string{"ticketdesk", "--server", "http://localhost:9000", "tickets", "show", "42"},
		},
		{
			name: "direct id after equals flag",
			in:   []string{"ticketdesk", "--format=yaml", "42"},
			want: []string{"ticketdesk", "--format=yaml", "tickets", "show", "42"},
		},
		{
			name: "direct id after bool flag",
			in:   []string{"ticketdesk", "--pretty", "42"},
			want: []string{"ticketdesk", "--pretty", "tickets", "show", "42"},
		},
		{
			name: "timeout value is not an id",
			in:   []string{"ticketdesk", "--timeout", "5s"},
			want: []string{"ticketdesk", "--timeout", "5s"},
		},
		{
			name: "direct id after double dash",
			in:   []string{"ticketdesk", "--", "42"},
			want: []string{"ticketdesk", "tickets", "show", "--", "42"},
		},
		{
			name: "zero and negative are not ids",
			in:   []string{"ticketdesk", "0"},
			want: []string{"ticketdesk", "0"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"ticketdesk", "tickets", "show", "42"},
			want: []string{"ticketdesk", "tickets", "show", "42"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"ticketdesk", "wat"},
			want: []string{"ticketdesk", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := rewriteDirectTicketLookupArgs(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("argv (-want +got):\n%s", diff)
			}
		})
	}
}
