package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phonechat/internal/emoji"
	"phonechat/internal/fixture"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default and clears Changed, since
// rootCmd and its children are package globals reused across tests.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(t, c)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(t, rootCmd)
	configPath = filepath.Join(t.TempDir(), "missing.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", configPath))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestEmojiCommand(t *testing.T) {
	out, err := executeCommand(t, "emoji")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(emoji.Picker()))
	assert.Contains(t, out, "😘\t[kiss]")
}

func TestRenderCommand(t *testing.T) {
	path := writeFixture(t, `
chatter: {name: 汤圆}
messages:
  - {kind: date, at: "2024-5-16 20:15:00"}
  - {kind: text, content: 在吗}
  - {kind: text, mine: true, content: "在[微笑]"}
  - {kind: voice, mine: true, seconds: 8}
`)
	out, err := executeCommand(t, "render", path, "--at", "2024-5-17 9:41:0")
	require.NoError(t, err)

	assert.Contains(t, out, "09:41")
	assert.Contains(t, out, "汤圆")
	assert.Contains(t, out, "昨天 20:15")
	assert.Contains(t, out, "在吗")
	assert.Contains(t, out, "在🙂")
	assert.Contains(t, out, "8\"")
}

func TestRenderCommandFixtureFlag(t *testing.T) {
	path := writeFixture(t, "messages:\n  - {kind: text, content: hello}\n")
	out, err := executeCommand(t, "render", "--fixture", path)
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestFixtureFlagDoesNotLeakIntoLaterRuns(t *testing.T) {
	flagged := writeFixture(t, "messages:\n  - {kind: text, content: hello}\n")
	_, err := executeCommand(t, "render", "--fixture", flagged)
	require.NoError(t, err)

	positional := writeFixture(t, "moments:\n  - {user: 汤圆, text: 今天天气不错, ago: 3h}\n")
	out, err := executeCommand(t, "moments", positional)
	require.NoError(t, err)
	assert.Contains(t, out, "今天天气不错")
	assert.NotContains(t, out, "朋友圈还没有内容")
}

func TestRenderCommandMissingFixture(t *testing.T) {
	_, err := executeCommand(t, "render", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRenderCommandBadTime(t *testing.T) {
	_, err := executeCommand(t, "render", "--at", "someday")
	assert.Error(t, err)
}

func TestMomentsCommand(t *testing.T) {
	path := writeFixture(t, `
moments:
  - user: 汤圆
    text: 今天天气不错
    ago: 3h
    likes: [时光]
    comments:
      - {by: 时光, content: 是啊}
`)
	out, err := executeCommand(t, "moments", path)
	require.NoError(t, err)

	assert.Contains(t, out, "朋友圈")
	assert.Contains(t, out, "今天天气不错")
	assert.Contains(t, out, "3小时前")
	assert.Contains(t, out, "是啊")
}

func TestWatchFixtureReportsStartFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "chat.yaml")
	var reported []error
	w := fixture.NewWatcher(path, 0, func(*fixture.File) {}, func(err error) { reported = append(reported, err) })

	err := watchFixture(context.Background(), w, func(err error) { reported = append(reported, err) })
	require.NoError(t, err, "a broken watcher must not end the session")
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Error(), "missing")
}
