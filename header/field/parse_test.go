package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailhdr/header/field"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		lb       string
		want     []string
		badStart string
	}{
		{
			name:  "flat",
			input: "From: a@example.com\nTo: b@example.com\nSubject:\n",
			lb:    "\n",
			want:  []string{"From: a@example.com\n", "To: b@example.com\n", "Subject:\n"},
		},
		{
			name:  "folded crlf",
			input: "To: a@example.com,\r\n b@example.com\r\nReceived: from x\r\n\tby y\r\n\tfor z\r\n",
			lb:    "\r\n",
			want:  []string{"To: a@example.com,\r\n b@example.com\r\n", "Received: from x\r\n\tby y\r\n\tfor z\r\n"},
		},
		{
			name:     "junk first",
			input:    "\tindented: line\nno colon here\nX-Real: yes\n more\n",
			lb:       "\n",
			want:     []string{"X-Real: yes\n more\n"},
			badStart: "\tindented: line\nno colon here\n",
		},
		{
			name:  "empty",
			input: "",
			lb:    "\n",
			want:  []string{},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			lines, err := field.ParseLines([]byte(test.input), field.Break(test.lb))
			if test.badStart != "" {
				var badStart *field.BadStartError
				require.ErrorAs(t, err, &badStart)
				assert.Equal(t, test.badStart, string(badStart.BadStart))
			} else {
				require.NoError(t, err)
			}

			got := make([]string, len(lines))
			for i, l := range lines {
				got[i] = string(l)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line             string
		lb               string
		name, body       string
		rawName, rawBody string
	}{
		{"Subject: lunch?\n", "\n", "Subject", "lunch?", "Subject", " lunch?"},
		{"Subject: =?utf-8?q?caf=C3=A9?=\r\n", "\r\n", "Subject", "=?utf-8?q?caf=C3=A9?=", "Subject", " =?utf-8?q?caf=C3=A9?="},
		{"Message-ID:\r\n <abc@example.com>\r\n", "\r\n", "Message-ID", "<abc@example.com>", "Message-ID", "\r\n <abc@example.com>"},
		{"X-Spaced :  padded  \n", "\n", "X-Spaced", "padded", "X-Spaced ", "  padded  "},
		{"Orphan", "\n", "Orphan", "", "Orphan", ""},
	}

	for _, test := range tests {
		f := field.Parse(field.Line(test.line), field.Break(test.lb))
		require.NotNil(t, f.Raw, test.line)
		assert.Equal(t, test.name, f.Name(), test.line)
		assert.Equal(t, test.body, f.Body(), test.line)
		assert.Equal(t, test.rawName, f.Raw.Name(), test.line)
		assert.Equal(t, test.rawBody, f.Raw.Body(), test.line)
		assert.Equal(t, f.Raw.String(), f.String(), test.line)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	f := field.New("X-Test", "value")
	assert.Nil(t, f.Raw)
	assert.Equal(t, "X-Test: value", f.String())
	assert.Equal(t, []byte("X-Test: value"), f.Bytes())
}

func TestUnfold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("a b\tc"), field.Unfold([]byte("a\r\n b\n\tc")))
}
