package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]Identity

func (s stubVerifier) Verify(token string) (Identity, bool) {
	id, ok := s[token]
	return id, ok
}

func TestResolver_Resolve(t *testing.T) {
	alice := Identity{ID: "u1", Email: "alice@example.com", Name: "Alice"}
	r := NewResolver(stubVerifier{"good": alice})

	tests := []struct {
		name    string
		header  string
		want    Identity
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer good", want: alice},
		{name: "empty header", header: "", wantErr: ErrMissingBearer},
		{name: "basic scheme", header: "Basic good", wantErr: ErrMissingBearer},
		{name: "lowercase scheme", header: "bearer good", wantErr: ErrMissingBearer},
		{name: "unknown token", header: "Bearer bad", wantErr: ErrInvalidToken},
		{name: "empty token", header: "Bearer ", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Identity{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
