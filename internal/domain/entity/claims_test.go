package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalClaims_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		claims ExternalClaims
		want   string
	}{
		{
			name:   "explicit name wins",
			claims: ExternalClaims{Name: "Ada Lovelace", GivenName: "A", FamilyName: "B", Email: "a@b.c"},
			want:   "Ada Lovelace",
		},
		{
			name:   "composed given and family name",
			claims: ExternalClaims{GivenName: "A", FamilyName: "B"},
			want:   "A B",
		},
		{
			name:   "given name only",
			claims: ExternalClaims{GivenName: "A"},
			want:   "A",
		},
		{
			name:   "email fallback",
			claims: ExternalClaims{Email: "citizen@example.com"},
			want:   "citizen@example.com",
		},
		{
			name:   "literal fallback when nothing usable",
			claims: ExternalClaims{},
			want:   FallbackDisplayName,
		},
		{
			name:   "whitespace-only name falls through",
			claims: ExternalClaims{Name: "   ", Email: "x@y.z"},
			want:   "x@y.z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.DisplayName())
		})
	}
}

func TestExternalClaims_HasEmail(t *testing.T) {
	assert.True(t, (&ExternalClaims{Email: "a@b.c"}).HasEmail())
	assert.False(t, (&ExternalClaims{}).HasEmail())
	assert.False(t, (&ExternalClaims{Email: "  "}).HasEmail())
}
