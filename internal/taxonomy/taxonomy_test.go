package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	req := require.New(t)

	req.Len(Labels, 28)
	req.Equal("admiration", Labels[0])
	req.Equal("neutral", Labels[27])

	seen := make(map[string]struct{}, len(Labels))
	for _, label := range Labels {
		_, dup := seen[label]
		req.False(dup, "duplicate label %q", label)
		seen[label] = struct{}{}
	}
}

func TestIndex(t *testing.T) {
	req := require.New(t)

	for i, label := range Labels {
		got, ok := Index(label)
		req.True(ok)
		req.Equal(i, got)
	}

	_, ok := Index("euphoria")
	req.False(ok)
	req.False(Known("euphoria"))
	req.True(Known("joy"))
}

func TestEmoji(t *testing.T) {
	req := require.New(t)

	for _, label := range Labels {
		req.NotEmpty(Emoji(label), "label %q must have an emoji", label)
	}
	req.Equal("😄", Emoji("joy"))
	req.Equal(FallbackEmoji, Emoji("euphoria"))
}
