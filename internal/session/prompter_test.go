package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdPrompterInput(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewStdPrompter(strings.NewReader("  my answer  \n"), out)

	answer, err := p.Input("Title: ")
	require.NoError(t, err)
	assert.Equal(t, "my answer", answer)
	assert.Equal(t, "Title: ", out.String())
}

func TestStdPrompterEndOfInputCancels(t *testing.T) {
	p := NewStdPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Input("Title: ")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestStdPrompterAcceptsFinalLineWithoutNewline(t *testing.T) {
	p := NewStdPrompter(strings.NewReader("answer"), &bytes.Buffer{})

	answer, err := p.Input("Title: ")
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}

func TestStdPrompterConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":     true,
		"Y\n":     true,
		"yes\n":   true,
		"YES\n":   true,
		"n\n":     false,
		"no\n":    false,
		"\n":      false,
		"maybe\n": false,
	}
	for input, expected := range cases {
		p := NewStdPrompter(strings.NewReader(input), &bytes.Buffer{})
		ok, err := p.Confirm("Continue? [y/N]: ")
		require.NoError(t, err)
		assert.Equal(t, expected, ok, "input %q", input)
	}
}

func TestStdPrompterConfirmCancelled(t *testing.T) {
	p := NewStdPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Confirm("Continue? [y/N]: ")
	assert.ErrorIs(t, err, ErrCancelled)
}
