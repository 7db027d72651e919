// internal/app/features/uploads/handler.go

// Package uploads receives media attachments (images, video, PDFs,
// voice notes) and stores them on local disk under random names. The
// response carries the served URL and the message type the file maps
// to, ready to be posted as a media message.
package uploads

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dalemusser/coachhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadBytes caps one attachment at 32 MiB.
const maxUploadBytes = 32 << 20

// Handler is the shared dependency container for the uploads feature.
type Handler struct {
	Dir       string
	URLPrefix string
	Log       *zap.Logger
}

// NewHandler constructs an uploads Handler storing files in dir and
// serving them under urlPrefix.
func NewHandler(dir, urlPrefix string, logger *zap.Logger) *Handler {
	return &Handler{Dir: dir, URLPrefix: urlPrefix, Log: logger}
}

type uploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

// HandleUpload handles POST /api/uploads with a multipart "file" part.
// The content type is sniffed from the bytes, not trusted from the
// client; types outside the media vocabulary are rejected.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Log.Error("upload read failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not read upload")
		return
	}

	mtype := mimetype.Detect(data)
	msgType, ok := messageTypeFor(mtype)
	if !ok {
		httpjson.Error(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		h.Log.Error("upload dir create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	name := uuid.NewString() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(h.Dir, name), data, 0o644); err != nil {
		h.Log.Error("upload write failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	h.Log.Info("file uploaded",
		zap.String("name", name),
		zap.String("mime", mtype.String()),
		zap.Int("size", len(data)))
	httpjson.Write(w, http.StatusCreated, uploadResponse{
		URL:      h.URLPrefix + "/" + name,
		FileName: htmlsanitize.Text(header.Filename),
		Type:     msgType,
		Size:     int64(len(data)),
	})
}

// messageTypeFor maps a sniffed MIME type onto the message-type
// vocabulary.
func messageTypeFor(mtype *mimetype.MIME) (string, bool) {
	switch {
	case mtype.Is("application/pdf"):
		return models.TypePDF, true
	case hasPrefix(mtype, "image/"):
		return models.TypeImage, true
	case hasPrefix(mtype, "video/"):
		return models.TypeVideo, true
	case hasPrefix(mtype, "audio/"):
		return models.TypeVoice, true
	}
	return "", false
}

func hasPrefix(mtype *mimetype.MIME, prefix string) bool {
	s := mtype.String()
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
