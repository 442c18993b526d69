package services

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"
)

func TestSaveResumeRejectsUnsupportedType(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	file := &multipart.FileHeader{
		Filename: "resume.txt",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"text/plain"}},
	}
	if _, _, err := storage.SaveResume(file); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestGetFilePath(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)

	got := storage.GetFilePath("resume_abc.pdf")
	if got != filepath.Join(dir, "resume_abc.pdf") {
		t.Errorf("GetFilePath = %q", got)
	}
}
