package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailhdr/header"
)

func TestBreak(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x0d, 0x0a}, header.CRLF.Bytes())
	assert.Equal(t, "\n", header.LF.String())
	assert.Equal(t, "\r", header.CR.String())
	assert.Equal(t, "\n\r", header.LFCR.String())
}

func TestBase_ZeroValue(t *testing.T) {
	t.Parallel()

	var b header.Base
	assert.Equal(t, header.LF, b.Break())
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.GetField(0))
	assert.Nil(t, b.GetFieldNamed("To", 0))
	assert.Empty(t, b.ListFields())
	assert.Equal(t, "\n", b.String())
	assert.ErrorIs(t, b.DeleteField(0), header.ErrIndexOutOfRange)

	b.ClearFields()
	assert.Equal(t, 0, b.Len())
}

func TestBase_Fields(t *testing.T) {
	t.Parallel()

	var b header.Base
	b.SetBreak(header.CRLF)
	b.InsertBeforeField(0, "To", "one@example.com")
	b.InsertBeforeField(10, "Subject", "hello")
	b.InsertBeforeField(-1, "To", "two@example.com")
	b.InsertBeforeField(1, "Cc", "three@example.com")

	require.Equal(t, 4, b.Len())
	assert.Equal(t, "To: two@example.com\r\nCc: three@example.com\r\nTo: one@example.com\r\nSubject: hello\r\n\r\n", b.String())

	assert.Equal(t, "two@example.com", b.GetFieldNamed("to", 0).Body())
	assert.Equal(t, "one@example.com", b.GetFieldNamed("TO", 1).Body())
	assert.Nil(t, b.GetFieldNamed("To", 2))
	assert.Equal(t, []int{0, 2}, b.GetIndexesNamed("To"))
	assert.Len(t, b.GetAllFieldsNamed("to"), 2)
	assert.Nil(t, b.GetAllFieldsNamed("Bcc"))

	c := b.Clone()
	require.NoError(t, b.DeleteField(1))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "Subject", b.GetField(2).Name())
	assert.Equal(t, []int{0, 1}, b.GetIndexesNamed("To"))

	b.ClearFields()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 4, c.Len())
}
