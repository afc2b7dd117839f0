package engine

import "testing"

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name     string
		template string
		tokens   []TokenValue
		want     string
	}{
		{
			name:     "replaces all tokens",
			template: "[Center] has [SalesCount] sales against [Target]",
			tokens: []TokenValue{
				{"[Center]", "Delhi Central"},
				{"[SalesCount]", "40"},
				{"[Target]", "100"},
			},
			want: "Delhi Central has 40 sales against 100",
		},
		{
			name:     "unresolved tokens stay as-is",
			template: "[Center] at [Percentage]% ([Unknown])",
			tokens: []TokenValue{
				{"[Center]", "Delhi Central"},
				{"[Percentage]", "40"},
			},
			want: "Delhi Central at 40% ([Unknown])",
		},
		{
			name:     "unused tokens are ignored",
			template: "plain message",
			tokens: []TokenValue{
				{"[Center]", "Delhi Central"},
			},
			want: "plain message",
		},
		{
			name:     "repeated token replaced everywhere",
			template: "[Center] and [Center]",
			tokens: []TokenValue{
				{"[Center]", "A"},
			},
			want: "A and A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildMessage(tt.template, tt.tokens)
			if got != tt.want {
				t.Errorf("BuildMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
