package commands

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root, a := newRootCmd()
	defer a.close()

	var out, errOut bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCounterCmd(t *testing.T) {
	out, errOut, err := run(t, "+\n+\n-\nbogus\nset hi\nquit\n+\n", "counter")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Count: 0\n[-] [+] [reset] [id]\n"))
	assert.True(t, strings.HasSuffix(out, "Count: 1\nText: hi\n[-] [+] [reset] [id]\n"))
	assert.Contains(t, errOut, "unknown command")
}

func TestCounterCmd_GeneratesID(t *testing.T) {
	out, _, err := run(t, "id\nreset\n", "counter", "--count", "5", "--debug")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`ID: [0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[0-9A-F]{4}-[0-9A-F]{12}\nCount: 5\n`), out)
	assert.True(t, strings.HasSuffix(out, "Count: 0\n[-] [+] [reset] [id]\n"))
}

func TestItemsAddCmd(t *testing.T) {
	out, _, err := run(t, "", "items", "add", "--count", "2", "--buffer", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	item := regexp.MustCompile(`^- Item [0-9A-F-]{36}$`)
	assert.Regexp(t, item, lines[0])
	assert.Regexp(t, item, lines[1])
	assert.NotEqual(t, lines[0], lines[1])
	assert.Equal(t, "[Add Item]", lines[2])
}

func TestItemsAddCmd_WithDelay(t *testing.T) {
	out, _, err := run(t, "", "items", "add", "--count", "1", "--delay", "5ms")
	require.NoError(t, err)
	assert.Regexp(t, `^- Item [0-9A-F-]{36}\n\[Add Item\]\n$`, out)
}

func TestItemsAddCmd_Empty(t *testing.T) {
	out, _, err := run(t, "", "items", "add", "--count", "0")
	require.NoError(t, err)
	assert.Equal(t, "No items yet\n[Add Item]\n", out)
}

func TestItemsAddCmd_RejectsNegativeCount(t *testing.T) {
	_, _, err := run(t, "", "items", "add", "--count", "-1")
	assert.Error(t, err)
}

func TestNavCmd(t *testing.T) {
	out, _, err := run(t, "", "nav", "--text", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "(globe) Hello\n", out)
}
