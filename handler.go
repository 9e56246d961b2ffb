package devstatic

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

type Handler struct {
	fs    fs.StatFS
	index string
	files http.Handler
}

// NewHandler serves fsys as the document root. Path resolution, content
// types, conditional and range requests are left to net/http.
func NewHandler(fsys fs.StatFS, index string) *Handler {
	slog.Info("handler created", "root", fsys, "index", index)
	return &Handler{
		fs:    fsys,
		index: index,
		files: http.FileServerFS(fsys),
	}
}

// serveIndex answers requests naming the index file directly. The stock file
// server would redirect them to the enclosing directory instead, even when
// the file does not exist.
func (h *Handler) serveIndex(res http.ResponseWriter, req *http.Request, name string) bool {
	info, err := h.fs.Stat(name)
	if err != nil {
		http.NotFound(res, req)
		return true
	}
	if info.IsDir() {
		return false
	}
	fp, err := h.fs.Open(name)
	if err != nil {
		slog.Error("open index", "path", name, "error", err)
		return false
	}
	defer fp.Close()
	rs, ok := fp.(io.ReadSeeker)
	if !ok {
		return false
	}
	http.ServeContent(res, req, info.Name(), info.ModTime(), rs)
	return true
}

func (h *Handler) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	upath := path.Clean("/" + req.URL.Path)
	if path.Base(upath) == h.index {
		if h.serveIndex(res, req, strings.TrimPrefix(upath, "/")) {
			return
		}
	}
	h.files.ServeHTTP(res, req)
}
