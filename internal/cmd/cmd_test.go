package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal/cmd"
	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/email"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cmd.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPreviewStdout(t *testing.T) {
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_TO", "")

	out, err := run(t, "preview", "--kind", "waitlist", "--name", "Jane", "--interest", "yoga")
	require.NoError(t, err)
	assert.Contains(t, out, "New Waitlist Member: Jane (Yoga — 1:1 with Lavanya)")
	assert.Contains(t, out, "Action Required")
	assert.NotContains(t, out, "<html")

	out, err = run(t, "preview", "--kind", "collaboration", "--name", "Jane", "--company", "Acme", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: New Collaboration Request from Jane (Acme)")
	assert.Contains(t, out, "<html")
}

func TestPreviewFiles(t *testing.T) {
	t.Setenv("EMAIL_FROM", "studio@lotusyoga.example")
	t.Setenv("EMAIL_TO", "owner@lotusyoga.example")
	dir := filepath.Join(t.TempDir(), "preview")

	_, err := run(t, "preview", "--out", dir)
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, "contact.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Yoga — 1:1 Online")

	text, err := os.ReadFile(filepath.Join(dir, "contact.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "Jane Doe")
}

func TestPreviewErrors(t *testing.T) {
	_, err := run(t, "preview", "--kind", "newsletter")
	assert.ErrorIs(t, err, submission.ErrUnknownKind)

	_, err = run(t, "preview", "--email", "not-an-email")
	assert.Error(t, err)
}

func TestSMTPCheck(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "dev")
	t.Setenv("DEV_MAIL_DIR", t.TempDir())

	out, err := run(t, "smtp-check")
	require.NoError(t, err)
	assert.Contains(t, out, "dev transport is ready")

	t.Setenv("MAIL_TRANSPORT", "pigeon")
	_, err = run(t, "smtp-check")
	assert.ErrorIs(t, err, email.ErrUnknownTransport)
}
