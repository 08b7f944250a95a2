package domain

import (
	"errors"
	"testing"
)

func TestNormalizeReactionKind(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"like", "like"},
		{"LIKE", "like"},
		{" Cry ", "cry"},
		{"Best", "best"},
		{"dislike", "dislike"},
	}
	for _, tc := range cases {
		got, err := NormalizeReactionKind(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"", "party", "likes", "👍"} {
		if _, err := NormalizeReactionKind(bad); !errors.Is(err, ErrInvalidReaction) {
			t.Fatalf("%q: expected ErrInvalidReaction, got %v", bad, err)
		}
	}
}

func TestDream_ReactionCountIsCaseInsensitive(t *testing.T) {
	d := &Dream{Reactions: []Reaction{
		{UserID: "u1", Kind: "like"},
		{UserID: "u2", Kind: "Like"},
		{UserID: "u3", Kind: "cry"},
	}}

	if n := d.ReactionCount("LIKE"); n != 2 {
		t.Fatalf("expected 2 likes, got %d", n)
	}
	if n := d.ReactionCount("cry"); n != 1 {
		t.Fatalf("expected 1 cry, got %d", n)
	}
	if n := d.ReactionCount("best"); n != 0 {
		t.Fatalf("expected 0 best, got %d", n)
	}
	if n := d.TotalReactionCount(); n != 3 {
		t.Fatalf("expected total 3, got %d", n)
	}
	if !d.HasReaction("u2") {
		t.Fatalf("expected u2 to have a reaction")
	}
	if d.HasReaction("u9") {
		t.Fatalf("expected u9 to have no reaction")
	}
}
