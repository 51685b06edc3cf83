package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailhdr/cmd/hdrinspect/cmd"
)

const sampleMessage = "Subject: hello\n" +
	"Message-ID: <a(b\n" +
	"X-Ref: <1@x> (c)\n" +
	"\n" +
	"body\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	c := cmd.NewRootCommand()
	c.SetArgs(args)
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(out)
	c.SetErr(errOut)

	err := c.Execute()
	return out.String(), errOut.String(), err
}

func TestInspect(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "message.eml", sampleMessage)
	out, _, err := run(t, "", "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "message 1:\n")
	assert.Contains(t, out, "Subject [unique-unstructured] *grammar.Unstructured\n  decoded: hello\n")
	assert.Contains(t, out, "Message-ID [resilient-message-id] *grammar.InvalidMessageID\n")
	assert.Contains(t, out, `  defect: invalid header: structural failure for invalid msg-id in "<a(b"`)
	assert.Contains(t, out, "  unstructured: <a(b\n")
}

func TestInspect_Stdin(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "Subject: one\nSubject: two\n\n", "inspect", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "  decoded: two\n")
	assert.Contains(t, out, "invalid: Subject may occur at most 1 time(s)")
}

func TestInspect_Config(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "config.yaml", "headers:\n  message-id: message-id\n")
	path := writeFile(t, "message.eml", sampleMessage)

	out, errOut, err := run(t, "", "--config", cfg, "--log-format", "json", "inspect", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 header field(s) could not be parsed")
	assert.Contains(t, out, "Message-ID\n  error: unable to parse Message-ID field as message-id")
	assert.Contains(t, errOut, `"level":"warning"`)
}

func TestInspect_BadSettings(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "message.eml", sampleMessage)

	_, _, err := run(t, "", "--log-format", "xml", "inspect", path)
	assert.Error(t, err)

	_, _, err = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "inspect", path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = run(t, "", "inspect", filepath.Join(t.TempDir(), "missing.eml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect_Mbox(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "inbox.mbox",
		"From sender@example.com Mon Jan  2 15:04:05 2006\n"+
			"Subject: first\n\nbody one\n\n"+
			"From sender@example.com Mon Jan  2 15:05:05 2006\n"+
			"Subject: second\n\nbody two\n")

	out, _, err := run(t, "", "--mbox", "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "message 1:\n")
	assert.Contains(t, out, "  decoded: first\n")
	assert.Contains(t, out, "message 2:\n")
	assert.Contains(t, out, "  decoded: second\n")
}

func TestDiff(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "message.eml", sampleMessage)
	out, _, err := run(t, "", "diff", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	cfg := writeFile(t, "config.yaml", "headers:\n  x-ref: resilient-message-id\n")
	out, _, err = run(t, "", "--config", cfg, "diff", "--delta", path)
	require.NoError(t, err)
	assert.Equal(t, "1: X-Ref: =5\t-4\n", out)

	out, _, err = run(t, "", "--config", cfg, "diff", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1: X-Ref: <1@x>"))
	assert.Contains(t, out, " (c)")
}
