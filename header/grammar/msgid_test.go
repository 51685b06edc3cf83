package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailhdr/header/grammar"
)

func TestParseMessageID(t *testing.T) {
	t.Parallel()

	n, err := grammar.ParseMessageID("<abc123@example.com>")
	require.NoError(t, err)
	mid, isMID := n.(*grammar.MessageID)
	require.True(t, isMID)
	assert.Equal(t, "abc123", mid.IDLeft())
	assert.Equal(t, "example.com", mid.IDRight())
	assert.Equal(t, "<abc123@example.com>", mid.String())
	assert.Empty(t, grammar.AllDefects(mid))

	n, err = grammar.ParseMessageID(" (first) <a.b.c@[10.0.0.1]>\r\n (added by postmaster)")
	require.NoError(t, err)
	mid, isMID = n.(*grammar.MessageID)
	require.True(t, isMID)
	assert.Equal(t, "[10.0.0.1]", mid.IDRight())
	assert.Equal(t, []string{"first", "added by postmaster"}, mid.Comments())
	assert.Empty(t, grammar.AllDefects(mid))
}

func TestParseMessageID_Defects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		invalid bool
		decoded string
		defects []grammar.DefectKind
	}{
		{"no id-right", "<abc>", false, "<abc>", []grammar.DefectKind{grammar.MissingValueDefect}},
		{"quoted id-left", `<"a b"@example.com>`, false, "<a b@example.com>", []grammar.DefectKind{grammar.ObsoleteHeaderDefect}},
		{"inner comment", "<abc (x) @example.com>", false, "<abc@example.com>", []grammar.DefectKind{grammar.ObsoleteHeaderDefect}},
		{"trailing junk", "<abc@example.com> other", false, "<abc@example.com>", []grammar.DefectKind{grammar.InvalidHeaderDefect}},
		{"bad dot-atom", "<.abc@example.com>", false, "<.abc@example.com>", []grammar.DefectKind{grammar.InvalidHeaderDefect}},
		{"no brackets", "abc@example.com", true, "abc@example.com", []grammar.DefectKind{grammar.InvalidMessageIDDefect}},
		{"empty", "  ", true, "  ", []grammar.DefectKind{grammar.MissingValueDefect}},
		{"empty id-left", "<>", true, "<>", []grammar.DefectKind{grammar.InvalidMessageIDDefect}},
		{"double at", "<a@b@c>", true, "<a@b@c>", []grammar.DefectKind{grammar.InvalidMessageIDDefect}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			n, err := grammar.ParseMessageID(test.value)
			require.NoError(t, err)

			_, isInvalid := n.(*grammar.InvalidMessageID)
			assert.Equal(t, test.invalid, isInvalid)
			assert.Equal(t, test.decoded, n.String())
			assert.Equal(t, test.defects, defectKinds(grammar.AllDefects(n)))
		})
	}
}

func TestParseMessageID_Structural(t *testing.T) {
	t.Parallel()

	for _, value := range []string{
		"<a(b",
		"<abc",
		"<abc@",
		"<abc@example.com",
		`<"abc@example.com>`,
		"<abc@[10.0.0.1>",
	} {
		n, err := grammar.ParseMessageID(value)
		assert.Nil(t, n, value)

		var serr *grammar.StructuralError
		require.ErrorAs(t, err, &serr, value)
		assert.Equal(t, value, serr.Value)
		assert.ErrorIs(t, err, grammar.ErrTruncated)
	}
}

func TestParseMessageID_LongValues(t *testing.T) {
	t.Parallel()

	// longer than bufio.MaxScanTokenSize
	left := strings.Repeat("a", 70_000)
	n, err := grammar.ParseMessageID("<" + left + "@example.com>")
	require.NoError(t, err)
	mid, isMID := n.(*grammar.MessageID)
	require.True(t, isMID)
	assert.Equal(t, left, mid.IDLeft())
	assert.Equal(t, "example.com", mid.IDRight())
	assert.Empty(t, grammar.AllDefects(n))

	_, err = grammar.ParseMessageID("<a(" + strings.Repeat("x", 70_000))
	var serr *grammar.StructuralError
	require.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, grammar.ErrTruncated)
}

func TestNewInvalidMessageID(t *testing.T) {
	t.Parallel()

	u := grammar.ParseUnstructured("junk\x01")
	d := grammar.Defect{Kind: grammar.InvalidHeaderDefect, Message: "made up"}
	m := grammar.NewInvalidMessageID(u, d)

	assert.Same(t, u, m.Value())
	assert.Equal(t, "junk\x01", m.String())
	assert.Equal(t, []grammar.DefectKind{
		grammar.InvalidHeaderDefect,
		grammar.NonPrintableDefect,
	}, defectKinds(grammar.AllDefects(m)))
}
