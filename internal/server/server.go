// Package server exposes one shared bstviz.Tree over a JSON HTTP API.
package server

import (
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/elastic/go-freelru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bstviz"
	"bstviz/internal/metrics"
)

const Version = "1.0.0"

// Config holds the HTTP adapter's settings.
type Config struct {
	// AllowedOrigins lists the origins CORS requests are accepted from.
	AllowedOrigins []string

	// RandomMin and RandomMax bound the values of a generated tree, inclusive.
	RandomMin, RandomMax int
	// RandomCountMin and RandomCountMax bound how many values it gets.
	RandomCountMin, RandomCountMax int
	// Seed seeds the generator. Zero seeds from the clock.
	Seed uint64

	// RenderCacheSize is the number of rendered trees kept in memory.
	RenderCacheSize uint32
}

// DefaultConfig returns the settings the demo frontend expects.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		RandomMin:       1,
		RandomMax:       20,
		RandomCountMin:  5,
		RandomCountMax:  15,
		RenderCacheSize: 128,
	}
}

func (c Config) validate() error {
	if c.RandomMin > c.RandomMax {
		return errors.Newf("random value range [%d, %d] is empty", c.RandomMin, c.RandomMax)
	}
	if c.RandomCountMin < 0 || c.RandomCountMin > c.RandomCountMax {
		return errors.Newf("random count range [%d, %d] is invalid", c.RandomCountMin, c.RandomCountMax)
	}
	if c.RenderCacheSize == 0 {
		return errors.New("render cache size must be positive")
	}
	return nil
}

type renderKey struct {
	fingerprint uint64
	format      string
}

func hashRenderKey(k renderKey) uint32 {
	h := k.fingerprint ^ uint64(len(k.format))<<56
	return uint32(h) ^ uint32(h>>32)
}

// Server serializes every request against a single tree. bstviz.Tree is not
// safe for concurrent use, so mu is held for the whole of each handler.
type Server struct {
	cfg Config
	log bstviz.Logger

	mu   sync.Mutex
	tree *bstviz.Tree
	rng  *rand.Rand

	renders *freelru.LRU[renderKey, string]

	handler http.Handler
}

// New builds a server around a fresh tree. When reg is non-nil the tree
// reports to prometheus collectors registered there and /metrics serves reg.
func New(cfg Config, log bstviz.Logger, reg *prometheus.Registry) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server config")
	}
	if log == nil {
		log = bstviz.DiscardLogger{}
	}

	renders, err := freelru.New[renderKey, string](cfg.RenderCacheSize, hashRenderKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating render cache")
	}

	opts := []bstviz.Option{bstviz.WithLogger(log)}
	if reg != nil {
		collector, err := metrics.New(reg)
		if err != nil {
			return nil, errors.Wrap(err, "registering tree metrics")
		}
		opts = append(opts, bstviz.WithObserver(collector))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	srv := &Server{
		cfg:     cfg,
		log:     log,
		tree:    bstviz.New(opts...),
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
		renders: renders,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", srv.handIndex)
	mux.HandleFunc("GET /tree", srv.handTree)
	mux.HandleFunc("POST /tree/insert", srv.handInsert)
	mux.HandleFunc("POST /tree/delete", srv.handDelete)
	mux.HandleFunc("POST /tree/search", srv.handSearch)
	mux.HandleFunc("GET /tree/traversal/{order}", srv.handTraversal)
	mux.HandleFunc("POST /tree/clear", srv.handClear)
	mux.HandleFunc("GET /tree/height", srv.handHeight)
	mux.HandleFunc("GET /tree/size", srv.handSize)
	mux.HandleFunc("GET /tree/random", srv.handRandom)
	mux.HandleFunc("GET /tree/render", srv.handRender)
	if reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	srv.handler = srv.logRequests(srv.cors(mux))
	return srv, nil
}

// ServeHTTP implements the http.Handler interface.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.handler.ServeHTTP(w, r)
}
