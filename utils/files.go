package utils

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"txt":  true,
	"csv":  true,
}

// IsAllowedFile reports whether the upload extension is on the allow-list.
func IsAllowedFile(filename string) bool {
	return allowedExtensions[fileExtension(filename)]
}

func fileExtension(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}

// FormatFileSize renders a byte count with one decimal in 1024 steps.
func FormatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f PB", value)
}

// FileTypeInfo drives the attachment chips in the ticket views: which icon
// and colour to show, whether the browser can render the file inline, and
// the mime type to serve it with.
type FileTypeInfo struct {
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Type     string `json:"type"`
	Mime     string `json:"mime"`
	Viewable bool   `json:"viewable"`
	Category string `json:"category"`
}

var fileTypes = map[string]FileTypeInfo{
	"pdf":  {Icon: "fa-file-pdf", Color: "#d32f2f", Type: "PDF Document", Mime: "application/pdf", Viewable: true, Category: "document"},
	"doc":  {Icon: "fa-file-word", Color: "#1976d2", Type: "Word Document", Mime: "application/msword", Viewable: false, Category: "document"},
	"docx": {Icon: "fa-file-word", Color: "#1976d2", Type: "Word Document", Mime: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Viewable: false, Category: "document"},
	"xls":  {Icon: "fa-file-excel", Color: "#388e3c", Type: "Excel Spreadsheet", Mime: "application/vnd.ms-excel", Viewable: false, Category: "document"},
	"xlsx": {Icon: "fa-file-excel", Color: "#388e3c", Type: "Excel Spreadsheet", Mime: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Viewable: false, Category: "document"},
	"ppt":  {Icon: "fa-file-powerpoint", Color: "#f57c00", Type: "PowerPoint", Mime: "application/vnd.ms-powerpoint", Viewable: false, Category: "document"},
	"pptx": {Icon: "fa-file-powerpoint", Color: "#f57c00", Type: "PowerPoint", Mime: "application/vnd.openxmlformats-officedocument.presentationml.presentation", Viewable: false, Category: "document"},
	"jpg":  {Icon: "fa-file-image", Color: "#7b1fa2", Type: "JPEG Image", Mime: "image/jpeg", Viewable: true, Category: "image"},
	"jpeg": {Icon: "fa-file-image", Color: "#7b1fa2", Type: "JPEG Image", Mime: "image/jpeg", Viewable: true, Category: "image"},
	"png":  {Icon: "fa-file-image", Color: "#7b1fa2", Type: "PNG Image", Mime: "image/png", Viewable: true, Category: "image"},
	"gif":  {Icon: "fa-file-image", Color: "#7b1fa2", Type: "GIF Image", Mime: "image/gif", Viewable: true, Category: "image"},
	"webp": {Icon: "fa-file-image", Color: "#7b1fa2", Type: "WebP Image", Mime: "image/webp", Viewable: true, Category: "image"},
	"zip":  {Icon: "fa-file-archive", Color: "#616161", Type: "ZIP Archive", Mime: "application/zip", Viewable: false, Category: "archive"},
	"rar":  {Icon: "fa-file-archive", Color: "#616161", Type: "RAR Archive", Mime: "application/vnd.rar", Viewable: false, Category: "archive"},
	"7z":   {Icon: "fa-file-archive", Color: "#616161", Type: "7-Zip Archive", Mime: "application/x-7z-compressed", Viewable: false, Category: "archive"},
	"txt":  {Icon: "fa-file-alt", Color: "#455a64", Type: "Text File", Mime: "text/plain", Viewable: true, Category: "data"},
	"csv":  {Icon: "fa-file-csv", Color: "#388e3c", Type: "CSV File", Mime: "text/csv", Viewable: true, Category: "data"},
	"json": {Icon: "fa-file-code", Color: "#455a64", Type: "JSON File", Mime: "application/json", Viewable: true, Category: "data"},
	"xml":  {Icon: "fa-file-code", Color: "#455a64", Type: "XML File", Mime: "application/xml", Viewable: true, Category: "data"},
}

var defaultFileType = FileTypeInfo{
	Icon:     "fa-file",
	Color:    "#9e9e9e",
	Type:     "File",
	Mime:     "application/octet-stream",
	Viewable: false,
	Category: "other",
}

// FileTypeFor resolves display metadata for a filename, falling back to the
// generic entry for unknown extensions.
func FileTypeFor(filename string) FileTypeInfo {
	if info, ok := fileTypes[fileExtension(filename)]; ok {
		return info
	}
	return defaultFileType
}

// MimeTypeFor returns the content type an attachment is served with.
func MimeTypeFor(filename string) string {
	if info, ok := fileTypes[fileExtension(filename)]; ok {
		return info.Mime
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

var warrantyKeywords = []string{"warranty", "claim form", "vhc"}

// DetectWarrantyForm flags filenames that look like warranty paperwork so
// uploads land in the claim-documents pane instead of the attachment list.
func DetectWarrantyForm(filename string) bool {
	lower := strings.ToLower(filename)
	for _, keyword := range warrantyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
