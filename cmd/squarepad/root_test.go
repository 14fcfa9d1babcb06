package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/squarepad/dataset"
	"github.com/nvr-ai/squarepad/images"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootProcessesFolder(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "in")
	require.NoError(t, os.Mkdir(input, 0o755))

	f, err := os.Create(filepath.Join(input, "wide.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 10))))
	require.NoError(t, f.Close())

	out, err := execute(t,
		"--input", input,
		"--dataset", filepath.Join(root, "dataset"),
		"--size", "16",
		"--log-format", "json",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 1/1 image(s)")

	batches, err := os.ReadDir(filepath.Join(root, "dataset"))
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Name(), len(dataset.TimestampLayout))

	img, err := images.NewCodec(images.CodecOptions{}).Decode(
		filepath.Join(root, "dataset", batches[0].Name(), "wide.png"))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 16, img.Height)
}

func TestRootMissingInput(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t,
		"--input", filepath.Join(root, "missing"),
		"--dataset", filepath.Join(root, "dataset"),
	)
	assert.True(t, errors.Is(err, dataset.ErrConfig), "%v", err)

	_, statErr := os.Stat(filepath.Join(root, "dataset"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written on a config error")
}

func TestRootInvalidFlags(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "--input", root, "--size", "0")
	assert.True(t, errors.Is(err, dataset.ErrConfig), "%v", err)

	_, err = execute(t, "--input", root, "--log-level", "loud")
	assert.True(t, errors.Is(err, dataset.ErrConfig), "%v", err)

	_, err = execute(t, "unexpected")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "squarepad dev\n", out)
}
