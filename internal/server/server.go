package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-agestack/internal/chronology"
	"github.com/tartampluch/go-agestack/internal/config"
)

// bucketView is the JSON shape of one bucket exposed to the presentation
// layer.
type bucketView struct {
	Label  string      `json:"label"`
	Photos []photoView `json:"photos"`
}

type photoView struct {
	ID        string    `json:"id"`
	DateTaken time.Time `json:"date_taken"`
	ImageRef  string    `json:"image_ref,omitempty"`
}

// cacheItem stores the rendered chronology and its metadata for HTTP caching.
type cacheItem struct {
	feed         []byte
	buckets      []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// ChronologyServer publishes the generated chronology over HTTP: the ICS
// feed at the root and the bucket view as JSON.
type ChronologyServer struct {
	// cache uses atomic.Pointer for lock-free reads. The chronology is read
	// frequently by feed clients but rebuilt rarely, so this avoids RWMutex
	// contention on the hot path.
	cache atomic.Pointer[cacheItem]
	Port  string
}

// NewChronologyServer creates a new instance of the server.
func NewChronologyServer(port string) *ChronologyServer {
	return &ChronologyServer{Port: port}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ChronologyServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeedRequest)
	mux.HandleFunc(config.RouteBuckets, s.handleBucketsRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served content with a fresh build.
func (s *ChronologyServer) Update(feed []byte, buckets []chronology.Bucket) error {
	views := make([]bucketView, len(buckets))
	for i, b := range buckets {
		photos := make([]photoView, len(b.Photos))
		for j, p := range b.Photos {
			photos[j] = photoView{
				ID:        p.ID.String(),
				DateTaken: p.DateTaken,
				ImageRef:  p.ImageRef,
			}
		}
		views[i] = bucketView{Label: b.Label.String(), Photos: photos}
	}

	bucketJSON, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncodeJSON, err)
	}

	hash := sha256.Sum256(feed)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		feed:         feed,
		buckets:      bucketJSON,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	// Atomic store: concurrent readers see either the old or the new
	// complete item, never a partial state.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(feed),
		config.LogKeyBuckets, len(buckets),
		config.LogKeyETag, etag,
	)
	return nil
}

// handleFeedRequest serves the ICS content with HTTP caching support.
func (s *ChronologyServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteFeed {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	item, ok := s.validateRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	s.writeCached(w, r, item, item.feed)
}

// handleBucketsRequest serves the JSON bucket view for the presentation
// layer.
func (s *ChronologyServer) handleBucketsRequest(w http.ResponseWriter, r *http.Request) {
	item, ok := s.validateRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	s.writeCached(w, r, item, item.buckets)
}

// validateRequest performs the shared method and readiness checks.
func (s *ChronologyServer) validateRequest(w http.ResponseWriter, r *http.Request) (*cacheItem, bool) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return nil, false
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return nil, false
	}
	return item, true
}

// writeCached sets caching headers, honors conditional requests, and writes
// the body for GET.
func (s *ChronologyServer) writeCached(w http.ResponseWriter, r *http.Request, item *cacheItem, body []byte) {
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
