package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/common"
)

// UploadRequest is one document submitted by its owner.
type UploadRequest struct {
	OwnerID     string
	FileName    string
	ContentType string
	Data        []byte
}

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

// ValidateUpload refuses anything that is not a plausible PDF no larger
// than maxSize bytes. The returned error is a *common.ValidationError.
func ValidateUpload(req UploadRequest, maxSize int64) error {
	if req.ContentType != common.PDFContentType {
		return invalid("content type %q is not %s", req.ContentType, common.PDFContentType)
	}
	name := cleanFileName(req.FileName)
	if name == "" || !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return invalid("file name %q must end in .pdf", req.FileName)
	}
	if len(req.Data) == 0 {
		return invalid("file is empty")
	}
	if int64(len(req.Data)) > maxSize {
		return invalid("file is %d bytes, limit is %d", len(req.Data), maxSize)
	}
	return checkPDF(req.Data)
}

// checkPDF looks for the header, an end-of-file marker near the end, and at
// least one page object. It is not a full parser.
func checkPDF(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return invalid("missing %%PDF- header")
	}
	tail := data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	if !bytes.Contains(tail, []byte("%%EOF")) {
		return invalid("missing %%%%EOF trailer")
	}
	if !pageObject.Match(data) {
		return invalid("document has no pages")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return &common.ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// cleanFileName drops any directory part a client may have sent.
func cleanFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func splitName(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// UniqueName returns base+ext if it is not taken, otherwise base_N+ext for
// the smallest N >= 1 not in taken.
func UniqueName(base, ext string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}
	name := base + ext
	if _, ok := used[name]; !ok {
		return name
	}
	for n := 1; ; n++ {
		name = base + "_" + strconv.Itoa(n) + ext
		if _, ok := used[name]; !ok {
			return name
		}
	}
}
