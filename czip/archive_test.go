package czip

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixtureZip(t *testing.T, comment string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fixedTime := time.Date(1996, 6, 1, 10, 30, 0, 0, time.UTC)

	storedHdr := &zip.FileHeader{Name: "hello.txt", Method: zip.Store}
	storedHdr.SetModTime(fixedTime)
	sw, err := zw.CreateHeader(storedHdr)
	require.NoError(t, err)
	_, err = sw.Write([]byte("hello, world"))
	require.NoError(t, err)

	deflateHdr := &zip.FileHeader{Name: "deflated.txt", Method: zip.Deflate}
	deflateHdr.SetModTime(fixedTime)
	dw, err := zw.CreateHeader(deflateHdr)
	require.NoError(t, err)
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 50)
	_, err = dw.Write(payload)
	require.NoError(t, err)

	dirHdr := &zip.FileHeader{Name: "subdir/", Method: zip.Store}
	_, err = zw.CreateHeader(dirHdr)
	require.NoError(t, err)

	if comment != "" {
		require.NoError(t, zw.SetComment(comment))
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func openFixture(data []byte) *Archive {
	return Open(newMemReader(data))
}

func TestListSimpleArchive(t *testing.T) {
	data := buildFixtureZip(t, "")
	a := openFixture(data)
	defer a.Close()

	entries, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := map[string]int{}
	for i, e := range entries {
		byName[e.Name] = i
	}

	hello := entries[byName["hello.txt"]]
	assert.True(t, hello.Method.IsStored())
	assert.Equal(t, uint64(len("hello, world")), hello.UncompressedSize)
	assert.False(t, hello.IsDir)

	deflated := entries[byName["deflated.txt"]]
	assert.True(t, deflated.Method.IsDeflate())
	assert.False(t, deflated.IsDir)

	dir := entries[byName["subdir/"]]
	assert.True(t, dir.IsDir)
}

func TestListIsCachedAfterFirstCall(t *testing.T) {
	data := buildFixtureZip(t, "")
	a := openFixture(data)
	defer a.Close()

	ctx := context.Background()
	first, err := a.List(ctx)
	require.NoError(t, err)

	second, err := a.List(ctx)
	require.NoError(t, err)

	assert.Same(t, &first[0], &second[0])
}

func TestListWithTrailingComment(t *testing.T) {
	data := buildFixtureZip(t, "a short comment")
	a := openFixture(data)
	defer a.Close()

	entries, err := a.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExtractToMemoryStored(t *testing.T) {
	data := buildFixtureZip(t, "")
	a := openFixture(data)
	defer a.Close()

	ctx := context.Background()
	entries, err := a.List(ctx)
	require.NoError(t, err)

	for _, e := range entries {
		if e.Name != "hello.txt" {
			continue
		}
		out, err := a.ExtractToMemory(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, "hello, world", string(out))
		return
	}
	t.Fatal("hello.txt not found")
}

func TestExtractToMemoryDeflate(t *testing.T) {
	data := buildFixtureZip(t, "")
	a := openFixture(data)
	defer a.Close()

	ctx := context.Background()
	entries, err := a.List(ctx)
	require.NoError(t, err)

	expected := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 50)

	for _, e := range entries {
		if e.Name != "deflated.txt" {
			continue
		}
		out, err := a.ExtractToMemory(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, expected, out)
		return
	}
	t.Fatal("deflated.txt not found")
}

func TestListNotAZipFile(t *testing.T) {
	a := openFixture([]byte("this is not a zip file at all, just plain text"))
	defer a.Close()

	_, err := a.List(context.Background())
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindNoEOCD, perr.Kind)
}

func TestListTruncatedArchive(t *testing.T) {
	data := buildFixtureZip(t, "")
	truncated := data[:len(data)-30]

	a := openFixture(truncated)
	defer a.Close()

	_, err := a.List(context.Background())
	assert.Error(t, err)
}

func TestTooManyEntriesGuard(t *testing.T) {
	// Craft a minimal, self-consistent EOCD claiming far more entries
	// than its declared central directory size could possibly hold.
	eocd := make([]byte, 22)
	copy(eocd[0:4], []byte{0x50, 0x4B, 0x05, 0x06})
	// total_entries = 1000, cd_size = 46 (room for at most 1 CDFH)
	eocd[10], eocd[11] = 0xE8, 0x03
	eocd[12], eocd[13], eocd[14], eocd[15] = 46, 0, 0, 0
	eocd[16], eocd[17], eocd[18], eocd[19] = 0, 0, 0, 0

	a := openFixture(eocd)
	defer a.Close()

	_, err := a.List(context.Background())
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindTooManyEntries, perr.Kind)
}
