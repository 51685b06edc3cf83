package grammar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailhdr/header/grammar"
)

func TestParseDateTime(t *testing.T) {
	t.Parallel()

	d := grammar.ParseDateTime("Tue, 1 Jul 2003 10:52:37 +0200")
	assert.True(t, d.Valid())
	assert.Equal(t, "Tue, 01 Jul 2003 10:52:37 +0200", d.String())
	assert.True(t, d.Time().Equal(time.Date(2003, 7, 1, 8, 52, 37, 0, time.UTC)))
	assert.Empty(t, grammar.AllDefects(d))

	d = grammar.ParseDateTime("2003-07-01 10:52:37")
	assert.True(t, d.Valid())
	assert.Equal(t, 2003, d.Time().Year())
	assert.Equal(t, []grammar.DefectKind{grammar.ObsoleteHeaderDefect}, defectKinds(grammar.AllDefects(d)))

	d = grammar.ParseDateTime("not a date at all")
	assert.False(t, d.Valid())
	assert.True(t, d.Time().IsZero())
	assert.Equal(t, "", d.String())
	assert.Equal(t, "not a date at all", d.Raw())
	assert.Equal(t, []grammar.DefectKind{grammar.InvalidDateDefect}, defectKinds(grammar.AllDefects(d)))

	d = grammar.ParseDateTime("")
	assert.False(t, d.Valid())
	assert.Equal(t, []grammar.DefectKind{grammar.MissingValueDefect}, defectKinds(grammar.AllDefects(d)))
}
