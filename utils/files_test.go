package utils

import "testing"

func TestIsAllowedFile(t *testing.T) {
	allowed := []string{"report.pdf", "photo.JPG", "notes.txt", "export.csv"}
	for _, name := range allowed {
		if !IsAllowedFile(name) {
			t.Fatalf("expected %q to be allowed", name)
		}
	}

	denied := []string{"script.exe", "archive.zip", "noextension", ""}
	for _, name := range denied {
		if IsAllowedFile(name) {
			t.Fatalf("expected %q to be denied", name)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512.0 B"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tc := range cases {
		if got := FormatFileSize(tc.size); got != tc.want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func TestFileTypeForKnownExtension(t *testing.T) {
	info := FileTypeFor("invoice.pdf")
	if info.Mime != "application/pdf" {
		t.Fatalf("unexpected mime %q", info.Mime)
	}
	if !info.Viewable {
		t.Fatal("pdf should be viewable inline")
	}
	if info.Category != "document" {
		t.Fatalf("unexpected category %q", info.Category)
	}
}

func TestFileTypeForUnknownExtension(t *testing.T) {
	info := FileTypeFor("firmware.bin")
	if info.Mime != "application/octet-stream" {
		t.Fatalf("unexpected fallback mime %q", info.Mime)
	}
	if info.Viewable {
		t.Fatal("unknown types must not render inline")
	}
}

func TestMimeTypeFor(t *testing.T) {
	if got := MimeTypeFor("picture.png"); got != "image/png" {
		t.Fatalf("unexpected mime %q", got)
	}
	if got := MimeTypeFor("blob.unknownext"); got != "application/octet-stream" {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestDetectWarrantyForm(t *testing.T) {
	if !DetectWarrantyForm("Warranty Form - MR56 XYZ.pdf") {
		t.Fatal("expected warranty form to be detected")
	}
	if DetectWarrantyForm("holiday-photo.jpg") {
		t.Fatal("unexpected warranty detection")
	}
}
