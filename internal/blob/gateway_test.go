package blob

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUploadBuildsDatedPath(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, "")
	g.now = func() time.Time {
		return time.Date(2024, 1, 5, 12, 30, 0, 0, time.UTC)
	}

	f, err := g.Upload(context.Background(), Input{
		OriginalName: "My Report!!.PDF",
		Data:         []byte("%PDF-1.4 fake"),
		ContentType:  "application/pdf",
	}, Options{Folder: "work-orders/42"})
	require.NoError(t, err)

	// {folder}/{date}/{sanitized whole name}_{unixms}-{9 digits}{ext}
	require.Regexp(t,
		regexp.MustCompile(`^work-orders/42/2024-01-05/My_Report___PDF_\d+-\d{9}\.PDF$`),
		f.Pathname)
	require.Equal(t, "My Report!!.PDF", f.OriginalName)
	require.Equal(t, "application/pdf", f.MimeType)
	require.Equal(t, 1, store.Len())
}

func TestUploadSniffsContentType(t *testing.T) {
	g := NewGateway(NewMemoryStore(), "")

	f, err := g.Upload(context.Background(), Input{
		OriginalName: "note.txt",
		Data:         []byte("plain text body"),
	}, Options{})
	require.NoError(t, err)
	require.Equal(t, "text/plain", f.MimeType)
}

func TestUploadRejectsDisallowedTypeBeforeStore(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, "")

	_, err := g.Upload(context.Background(), Input{
		OriginalName: "virus.exe",
		Data:         []byte("MZ..."),
		ContentType:  "application/x-msdownload",
	}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "application/x-msdownload is not allowed")
	// провайдер не должен быть вызван вовсе
	require.Equal(t, 0, store.Len())
}

func TestUploadBatchTooManyFiles(t *testing.T) {
	g := NewGateway(NewMemoryStore(), "")

	inputs := make([]Input, MaxFilesPerRequest+1)
	for i := range inputs {
		inputs[i] = Input{OriginalName: "a.txt", Data: []byte("x"), ContentType: "text/plain"}
	}
	_, err := g.UploadBatch(context.Background(), inputs, Options{})
	require.Error(t, err)
}

func TestUploadBatchPartialFailure(t *testing.T) {
	store := NewMemoryStore()
	store.FailContains = "bad_one"
	g := NewGateway(store, "")

	files, err := g.UploadBatch(context.Background(), []Input{
		{OriginalName: "good.txt", Data: []byte("ok"), ContentType: "text/plain"},
		{OriginalName: "bad one.txt", Data: []byte("ok"), ContentType: "text/plain"},
		{OriginalName: "also-good.txt", Data: []byte("ok"), ContentType: "text/plain"},
	}, Options{Folder: "f"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		require.NotContains(t, f.Pathname, "bad_one")
	}
	require.Equal(t, 2, store.Len())
}

func TestDeleteSwallowsProviderErrors(t *testing.T) {
	g := NewGateway(NewMemoryStore(), "")
	require.False(t, g.Delete(context.Background(), "missing/object.txt"))
}

func TestDeleteRemovesObject(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, "")

	f, err := g.Upload(context.Background(), Input{
		OriginalName: "a.txt", Data: []byte("x"), ContentType: "text/plain",
	}, Options{})
	require.NoError(t, err)
	require.True(t, g.Delete(context.Background(), f.Pathname))
	require.Equal(t, 0, store.Len())
}

func TestDownloadURLUsesCDNBase(t *testing.T) {
	g := NewGateway(NewMemoryStore(), "https://cdn.example.com")

	f, err := g.Upload(context.Background(), Input{
		OriginalName: "a.txt", Data: []byte("x"), ContentType: "text/plain",
	}, Options{Folder: "docs"})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/"+f.Pathname, f.DownloadURL)
}
