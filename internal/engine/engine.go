// Package engine is BarrelDB's storage engine (spec §4.5): it owns the
// active and frozen segments plus the in-memory index, and implements the
// write path, read path, rollover, and crash recovery. Everything above
// this package (the root barreldb.DB wrapper, the CLI) only ever talks to
// an *Engine.
package engine

import (
	stdErrors "errors"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/barreldb/barreldb/internal/index"
	"github.com/barreldb/barreldb/internal/segment"
	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
	"github.com/barreldb/barreldb/pkg/options"
)

// Config bundles everything Open needs: the resolved Options and the
// logger the engine writes to. The segments and index it builds take no
// logger.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Engine owns the active segment, the frozen ("older") segments, and the
// index, and enforces the locking discipline of spec §5: activeMu guards
// the active segment and is always acquired before olderMu; the index has
// its own internal lock and is never held across segment I/O.
type Engine struct {
	opts *options.Options
	log  *zap.SugaredLogger

	activeMu sync.RWMutex
	active   *segment.Segment

	olderMu sync.RWMutex
	older   map[uint32]*segment.Segment

	idx index.Index

	closed atomic.Bool
}

// ErrClosed is returned by every operation once Close has run. It is a
// plain sentinel, not part of the pkg/errors taxonomy (spec §7) — a closed
// engine is a programming error on the caller's part, not a condition
// callers are expected to branch on.
var ErrClosed = stdErrors.New("engine: closed")

// Open scans cfg.Options.DirPath for existing segments, replays each one
// into a fresh index (spec §4.5 steps 1-6), and designates the
// highest-generation segment active — or creates generation 0 if the
// directory was empty.
func Open(cfg *Config) (*Engine, error) {
	opts := cfg.Options
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if err := os.MkdirAll(opts.DirPath, 0o755); err != nil {
		return nil, barrelerrors.NewIOError(err, "create data directory").WithPath(opts.DirPath)
	}

	entries, err := os.ReadDir(opts.DirPath)
	if err != nil {
		return nil, barrelerrors.NewIOError(err, "read data directory").WithPath(opts.DirPath)
	}

	var segs []*segment.Segment
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		if _, ok := segment.ParseName(ent.Name()); !ok {
			log.Debugw("skipping non-segment directory entry", "name", ent.Name())
			continue
		}
		s, err := segment.Open(opts.DirPath, ent.Name())
		if err != nil {
			return nil, err
		}
		segs = append(segs, s)
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].Gen() < segs[j].Gen() })

	eng := &Engine{
		opts:  opts,
		log:   log,
		older: make(map[uint32]*segment.Segment),
		idx:   index.New(),
	}

	for _, s := range segs {
		if err := eng.recoverSegment(s); err != nil {
			return nil, err
		}
	}

	switch {
	case len(segs) == 0:
		s, err := segment.Create(opts.DirPath, 0)
		if err != nil {
			return nil, err
		}
		eng.active = s
		log.Infow("created initial segment", "gen", s.Gen())
	default:
		last := segs[len(segs)-1]
		for _, s := range segs[:len(segs)-1] {
			eng.older[s.Gen()] = s
		}
		eng.active = last
		log.Infow("recovered segments", "segments", len(segs), "active_gen", last.Gen())
	}

	return eng, nil
}
