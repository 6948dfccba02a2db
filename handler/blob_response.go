package handler

import (
	"net/http"
	"strconv"
)

type blobResponse struct {
	contentType  string
	cacheControl string
	data         []byte
}

func (b blobResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.data)))
	if b.cacheControl != "" {
		w.Header().Set("Cache-Control", b.cacheControl)
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.data)
	return err
}

// Blob writes raw bytes with the given content type.
func Blob(contentType string, data []byte) Response {
	return blobResponse{contentType: contentType, data: data}
}

// CachedBlob is Blob with a Cache-Control header.
func CachedBlob(contentType, cacheControl string, data []byte) Response {
	return blobResponse{contentType: contentType, cacheControl: cacheControl, data: data}
}
