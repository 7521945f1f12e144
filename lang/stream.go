package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores one scan per (source hash, option hash) pair.
var globalCache sync.Map

// scanState tracks the single scan performed for one cache key.
type scanState struct {
	once  sync.Once
	sheet *Stylesheet
	err   error
}

// hashOptions encodes the hashable option fields using gob and hashes the
// encoding with xxh3.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.plainCSS)
	_ = enc.Encode(opts.compileExprs)

	return xxh3.Hash(buf.Bytes())
}

// ParseReader scans input from an io.Reader. The reader is wrapped with
// asynchronous read-ahead so data is prefetched while earlier chunks are
// consumed, and results are cached by content hash so repeated scans of an
// identical source return the same stylesheet. Cached stylesheets are
// shared between callers and must be treated as read-only.
//
// Parsers configured with custom handlers bypass the cache, since their
// results depend on the handler implementations.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Stylesheet, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	// Probe an empty parser to learn the effective configuration.
	probe := New("", opts...)

	probe.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	if probe.custom {
		probe.logger.TraceContext(ctx, "cache bypass",
			slog.Bool("custom_handlers", true),
		)

		return ParseString(ctx, string(data), opts...)
	}

	return parseStringCached(ctx, string(data), opts...)
}

// parseStringCached scans a source at most once per cache key, sharing the
// resulting stylesheet with all subsequent callers.
func parseStringCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Stylesheet, error) {
	probe := New("", opts...)

	sourceHash := xxh3.HashString(source)
	optsHash := hashOptions(probe.opts)
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	entry := new(scanState)
	value, cacheHit := globalCache.LoadOrStore(key, entry)

	state, ok := value.(*scanState)
	if !ok {
		return nil, ErrCacheState.
			With(slog.String("key", key))
	}

	probe.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	state.once.Do(func() {
		sheet, err := ParseString(ctx, source, opts...)
		if err != nil {
			state.err = err

			return
		}

		state.sheet = sheet
	})

	if state.err != nil {
		return nil, state.err
	}

	return state.sheet, nil
}

// ClearCache removes all cached scans. This is primarily useful for tests
// and for reclaiming memory in long-running processes.
func ClearCache() {
	globalCache.Clear()
}
