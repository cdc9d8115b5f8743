package main

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// serverConfig points the routes at files on disk.
type serverConfig struct {
	MapDir      string // {id}.json files
	SummaryFile string
	SpriteDir   string
	AssetPath   string // URL prefix of the sprite directory
}

type server struct {
	cfg serverConfig
	log *zap.Logger
}

// newRouter builds the bot service routes the viewer reads.
func newRouter(cfg serverConfig, log *zap.Logger) *mux.Router {
	s := &server{cfg: cfg, log: log}
	if s.cfg.AssetPath == "" {
		s.cfg.AssetPath = "/static.1/"
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/map/{id:[0-9]+}", s.handleMap).Methods(http.MethodGet)
	r.HandleFunc("/team-summary", s.handleTeamSummary).Methods(http.MethodGet)
	r.PathPrefix(s.cfg.AssetPath).Handler(
		http.StripPrefix(s.cfg.AssetPath, http.FileServer(http.Dir(cfg.SpriteDir))),
	).Methods(http.MethodGet)
	return r
}

func (s *server) handleMap(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.serveJSON(w, r, filepath.Join(s.cfg.MapDir, id+".json"))
}

func (s *server) handleTeamSummary(w http.ResponseWriter, r *http.Request) {
	s.serveJSON(w, r, s.cfg.SummaryFile)
}

// serveJSON writes a JSON file, compressed when the client accepts it.
func (s *server) serveJSON(w http.ResponseWriter, r *http.Request, path string) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("read failed", zap.String("path", path), zap.Error(err))
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Add("Vary", "Accept-Encoding")
	enc := negotiate(r.Header.Get("Accept-Encoding"))
	if enc != "" {
		w.Header().Set("Content-Encoding", enc)
	}
	if err := writeEncoded(w, enc, data); err != nil {
		s.log.Warn("write failed", zap.String("path", path), zap.Error(err))
	}
}

// negotiate picks zstd over gzip. Quality values are not weighed.
func negotiate(accept string) string {
	var gz bool
	for _, part := range strings.Split(accept, ",") {
		name, _, _ := strings.Cut(part, ";")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "zstd":
			return "zstd"
		case "gzip":
			gz = true
		}
	}
	if gz {
		return "gzip"
	}
	return ""
}

func writeEncoded(w io.Writer, enc string, data []byte) error {
	switch enc {
	case "zstd":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case "gzip":
		gw := gzip.NewWriter(w)
		if _, err := gw.Write(data); err != nil {
			gw.Close()
			return err
		}
		return gw.Close()
	default:
		_, err := w.Write(data)
		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("size", humanize.Bytes(uint64(rec.bytes))),
			zap.Duration("took", time.Since(start)))
	})
}
