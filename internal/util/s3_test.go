package util

import (
	"strings"
	"testing"
)

func TestPrepareObjectKey(t *testing.T) {
	key := prepareObjectKey("../bid.pdf", &FileUploadOptions{DirectoryPath: GetRFPDirectoryPath("p1")})
	if key != "profiles/p1/rfps/bid.pdf" {
		t.Errorf("prepareObjectKey() = %s", key)
	}

	key = prepareObjectKey("cv.docx", &FileUploadOptions{DirectoryPath: GetDocumentDirectoryPath("p1"), UniquePrefix: true})
	if !strings.HasPrefix(key, "profiles/p1/documents/") || !strings.HasSuffix(key, "_cv.docx") {
		t.Errorf("prepareObjectKey() = %s", key)
	}
}
