package browser

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(NewInput(strings.NewReader("dst\n\nY\nno\n-\n")), &out)

	answer, ok := p.Prompt("Enter new path:", "a.txt")
	require.True(t, ok)
	assert.Equal(t, "dst", answer)

	answer, ok = p.Prompt("Enter copy path:", "a.txt_copy")
	require.True(t, ok)
	assert.Equal(t, "a.txt_copy", answer)

	assert.True(t, p.Confirm("Delete file: a.txt?"))
	assert.False(t, p.Confirm("Delete file: b.txt?"))

	_, ok = p.Prompt("Enter new path:", "b.txt")
	assert.False(t, ok, "dash cancels even with a default")

	_, ok = p.Prompt("Enter folder name:", "")
	assert.False(t, ok, "end of input cancels")
	assert.False(t, p.Confirm("again?"))

	assert.Contains(t, out.String(), "Enter new path: [a.txt] (- cancels) ")
	assert.Contains(t, out.String(), "Enter folder name: (- cancels) ")
	assert.Contains(t, out.String(), "Delete file: a.txt? [y/N] ")
}

func TestLinePrompter_OpenURL(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(NewInput(strings.NewReader("")), &out)

	require.NoError(t, p.OpenURL("https://signed/a"))
	assert.Equal(t, "Download: https://signed/a\n", out.String())

	var opened string
	p.Open = func(url string) error { opened = url; return nil }
	require.NoError(t, p.OpenURL("https://signed/b"))
	assert.Equal(t, "https://signed/b", opened)

	p.Alert("done")
	assert.Contains(t, out.String(), "done\n")
}

func TestLinePrompter_ClosedInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	in := NewInput(pr)
	p := NewLinePrompter(in, io.Discard)

	done := make(chan bool)
	go func() {
		_, ok := p.Prompt("Enter new path:", "a.txt")
		done <- ok
	}()
	in.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Prompt did not return after the input was closed")
	}
}
