package media

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oseikofi/campusfeed/models"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["image"][0]
}

func newTestStore(t *testing.T, maxMB int) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), maxMB)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStoreSave(t *testing.T) {
	s := newTestStore(t, 5)

	url, err := s.Save(uploadHeader(t, "photo.PNG", []byte("fake image bytes")))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(url, PublicPrefix) {
		t.Errorf("url = %q, want %s prefix", url, PublicPrefix)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want lowercased .png extension", url)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), filepath.Base(url)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Error("stored file content differs from upload")
	}
}

func TestStoreSaveUniqueNames(t *testing.T) {
	s := newTestStore(t, 5)

	first, err := s.Save(uploadHeader(t, "same.jpg", []byte("a")))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(uploadHeader(t, "same.jpg", []byte("b")))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("two uploads of %q produced the same url %q", "same.jpg", first)
	}
}

func TestStoreSaveRejectsNonImages(t *testing.T) {
	s := newTestStore(t, 5)

	for _, name := range []string{"notes.txt", "payload.exe", "noext"} {
		if _, err := s.Save(uploadHeader(t, name, []byte("x"))); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Save(%q) err = %v, want ErrUnsupportedType", name, err)
		}
	}
}

func TestStoreSaveRejectsOversized(t *testing.T) {
	s := newTestStore(t, 1)

	big := bytes.Repeat([]byte("x"), 1<<20+1)
	if _, err := s.Save(uploadHeader(t, "big.png", big)); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("rejected upload left a file behind")
	}
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t, 5)

	url, err := s.Save(uploadHeader(t, "a.gif", []byte("x")))
	if err != nil {
		t.Fatal(err)
	}

	s.Remove(url)
	if _, err := os.Stat(filepath.Join(s.Dir(), filepath.Base(url))); !os.IsNotExist(err) {
		t.Error("file still present after Remove")
	}

	// already gone, and never stored at all
	s.Remove(url)
	s.Remove("/uploads/never-there.png")
	s.Remove("")
}

func TestStoreRemoveAllCascades(t *testing.T) {
	s := newTestStore(t, 5)

	postURL, err := s.Save(uploadHeader(t, "post.webp", []byte("p")))
	if err != nil {
		t.Fatal(err)
	}
	replyURL, err := s.Save(uploadHeader(t, "reply.jpeg", []byte("r")))
	if err != nil {
		t.Fatal(err)
	}

	post := models.Post{
		ID:       "p1",
		ImageURL: postURL,
		Replies:  []models.Reply{{ID: "r1", ImageURL: replyURL}, {ID: "r2"}},
	}
	s.RemoveAll(post)

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d files remain after cascade removal", len(entries))
	}
}
