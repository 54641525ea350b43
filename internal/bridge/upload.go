package bridge

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"casedesk/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// Upload is one externally supplied file: raw bytes plus what the source claims about them.
type Upload struct {
	Name         string
	DeclaredMIME string
	Data         []byte
}

// Decoded is what the desktop stores for an upload.
type Decoded struct {
	Name     string
	Content  string
	MimeType string
	Size     string
}

// Decode turns an upload into item content. Text is kept as text; anything else becomes a
// data URI so previews can still reference it.
func Decode(u Upload) Decoded {
	mt := strings.TrimSpace(u.DeclaredMIME)
	if mt == "" || mt == "application/octet-stream" {
		mt = mimetype.Detect(u.Data).String()
	}

	var content string
	if model.IsTextContent(mt, u.Name) {
		content = strings.ToValidUTF8(string(u.Data), "�")
	} else {
		base := mt
		if i := strings.Index(base, ";"); i >= 0 {
			base = strings.TrimSpace(base[:i])
		}
		content = "data:" + base + ";base64," + base64.StdEncoding.EncodeToString(u.Data)
	}

	return Decoded{
		Name:     u.Name,
		Content:  content,
		MimeType: mt,
		Size:     humanize.Bytes(uint64(len(u.Data))),
	}
}

// ReadUploads reads files from disk. The declared MIME type comes from the extension, the
// way a browser would report it.
func ReadUploads(paths []string) ([]Upload, error) {
	out := make([]Upload, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		out = append(out, Upload{
			Name:         filepath.Base(p),
			DeclaredMIME: mime.TypeByExtension(filepath.Ext(p)),
			Data:         b,
		})
	}
	return out, nil
}
