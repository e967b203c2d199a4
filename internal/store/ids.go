package store

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// idSuffixLen keeps user-facing ids short enough to type.
func idSuffixLen(prefix string) int {
	switch prefix {
	case "task":
		return 4
	case "sub":
		return 5
	default:
		return 8
	}
}

func newRandomIDWithLen(prefix string, n int) (string, error) {
	var b [8]byte // 64 bits -> 13 base32 chars, enough for any suffix we hand out
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	if n > 0 && n < len(suffix) {
		suffix = suffix[:n]
	}
	return prefix + "-" + suffix, nil
}

// NextID returns a fresh prefix-xxxx id not yet used in the workspace.
// On repeated collisions the suffix grows by one character at a time.
func (s Store) NextID(ctx context.Context, prefix string) (string, error) {
	base := idSuffixLen(prefix)
	for ln := base; ln <= base+4; ln++ {
		for i := 0; i < 20; i++ {
			id, err := newRandomIDWithLen(prefix, ln)
			if err != nil {
				return "", err
			}
			taken, err := s.HasID(ctx, id)
			if err != nil {
				return "", err
			}
			if !taken {
				return id, nil
			}
		}
	}
	return "", fmt.Errorf("could not allocate a %s id", prefix)
}
