package domain

import (
	"testing"
	"time"
)

func TestScope_Allows(t *testing.T) {
	tests := []struct {
		name     string
		scope    Scope
		required Scope
		want     bool
	}{
		{"read allows read", ScopeRead, ScopeRead, true},
		{"read denies write", ScopeRead, ScopeWrite, false},
		{"read denies admin", ScopeRead, ScopeAdmin, false},
		{"write allows read", ScopeWrite, ScopeRead, true},
		{"write allows write", ScopeWrite, ScopeWrite, true},
		{"write denies admin", ScopeWrite, ScopeAdmin, false},
		{"admin allows read", ScopeAdmin, ScopeRead, true},
		{"admin allows write", ScopeAdmin, ScopeWrite, true},
		{"admin allows admin", ScopeAdmin, ScopeAdmin, true},
		{"zero denies everything", 0, ScopeRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Allows(tt.required); got != tt.want {
				t.Errorf("Allows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScope_Slice(t *testing.T) {
	tests := []struct {
		scope Scope
		want  []string
	}{
		{ScopeRead, []string{"read"}},
		{ScopeWrite, []string{"read", "write"}},
		{ScopeAdmin, []string{"read", "write", "admin"}},
	}

	for _, tt := range tests {
		got := tt.scope.Slice()
		if len(got) != len(tt.want) {
			t.Fatalf("Slice(%v) = %v, want %v", tt.scope, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Slice(%v) = %v, want %v", tt.scope, got, tt.want)
			}
		}
	}
}

func TestParseScopes(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		s, err := ParseScopes([]string{"read"})
		if err != nil {
			t.Fatalf("ParseScopes: %v", err)
		}
		if s != ScopeRead {
			t.Errorf("got %v, want %v", s, ScopeRead)
		}
	})

	t.Run("highest wins", func(t *testing.T) {
		s, err := ParseScopes([]string{"read", "admin"})
		if err != nil {
			t.Fatalf("ParseScopes: %v", err)
		}
		if s != ScopeAdmin {
			t.Errorf("got %v, want %v", s, ScopeAdmin)
		}
	})

	t.Run("case and spaces tolerated", func(t *testing.T) {
		s, err := ParseScopes([]string{" Write "})
		if err != nil {
			t.Fatalf("ParseScopes: %v", err)
		}
		if s != ScopeWrite {
			t.Errorf("got %v, want %v", s, ScopeWrite)
		}
	})

	t.Run("unknown scope rejected", func(t *testing.T) {
		if _, err := ParseScopes([]string{"root"}); err == nil {
			t.Error("expected error for unknown scope")
		}
	})

	t.Run("empty list rejected", func(t *testing.T) {
		if _, err := ParseScopes(nil); err == nil {
			t.Error("expected error for empty scope list")
		}
	})
}

func TestScope_RoundTrip(t *testing.T) {
	for _, scope := range []Scope{ScopeRead, ScopeWrite, ScopeAdmin} {
		parsed, err := ParseScopes(scope.Slice())
		if err != nil {
			t.Fatalf("ParseScopes(Slice(%v)): %v", scope, err)
		}
		if parsed != scope {
			t.Errorf("round trip of %v gave %v", scope, parsed)
		}
	}
}

func TestAPIKey_IsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry never expires", nil, false},
		{"future expiry not expired", &future, false},
		{"past expiry expired", &past, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := &APIKey{ExpiresAt: tt.expiresAt}
			if got := k.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
