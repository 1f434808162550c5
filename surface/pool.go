// pool.go implements the buffer pool: a tagged free-list with LIFO reuse.

package surface

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/layersink/internal"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/types"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

// PoolStatistics are monotonic counters of the pool's behavior.
type PoolStatistics struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Fallbacks uint64
}

// Pool recycles previously allocated buffers keyed by (width, height,
// pixel format). Reuse preference is LIFO: the most recently released
// buffer is inspected first. The pool exclusively owns its entries
// between checkouts.
//
// Every mutation happens under a single mutex; Acquire may run
// concurrently with Release from a different goroutine.
type Pool struct {
	locker    xsync.Mutex
	allocator Allocator
	buffers   []*Buffer
	current   Tag

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	fallbacks atomic.Uint64
}

func NewPool(allocator Allocator) *Pool {
	return &Pool{
		allocator: allocator,
	}
}

// SetCurrent records the currently negotiated geometry. A released
// buffer is pooled only while its tag equals this value; everything
// else is destroyed on release.
func (p *Pool) SetCurrent(
	ctx context.Context,
	width, height int,
	pixelFormat types.PixelFormat,
) {
	logger.Debugf(ctx, "SetCurrent(%dx%d:%s)", width, height, pixelFormat)
	p.locker.Do(ctx, func() {
		p.current = Tag{Width: width, Height: height, PixelFormat: pixelFormat}
	})
}

// Acquire returns a buffer of the given geometry sized exactly to
// byteSize bytes. Pooled entries with a different tag are destroyed
// while scanning. On a pool miss a native surface is attempted first;
// if its allocated size does not equal byteSize (or its creation fails
// outright) the buffer degrades to a plain memory block so that the
// exact size contract always holds.
func (p *Pool) Acquire(
	ctx context.Context,
	width, height int,
	pixelFormat types.PixelFormat,
	byteSize int,
) (_ret *Buffer, _err error) {
	logger.Tracef(ctx, "Acquire(%dx%d:%s, %d)", width, height, pixelFormat, byteSize)
	defer func() { logger.Tracef(ctx, "/Acquire(%dx%d:%s, %d): %v", width, height, pixelFormat, byteSize, _err) }()
	if byteSize <= 0 {
		return nil, fmt.Errorf("the requested byte size must be positive, got %d", byteSize)
	}

	tag := Tag{Width: width, Height: height, PixelFormat: pixelFormat}
	return xsync.DoR1(ctx, &p.locker, func() *Buffer {
		for len(p.buffers) > 0 {
			buf := p.buffers[0]
			p.buffers = p.buffers[1:]
			if buf.Tag != tag {
				logger.Debugf(ctx, "destroying a pooled buffer %s: the requested geometry is %s", buf.Tag, tag)
				buf.destroy(ctx)
				p.evictions.Inc()
				continue
			}
			p.hits.Inc()
			return buf
		}
		p.misses.Inc()
		return p.allocate(ctx, tag, byteSize)
	}), nil
}

func (p *Pool) allocate(
	ctx context.Context,
	tag Tag,
	byteSize int,
) *Buffer {
	buf := &Buffer{Tag: tag}
	if p.allocator != nil && tag.PixelFormat != types.PixelFormatUnknown {
		s, err := p.allocator.CreateSurface(ctx, tag.Width, tag.Height, tag.PixelFormat)
		switch {
		case err != nil:
			logger.Warnf(ctx, "unable to create a native %s surface: %v", tag, err)
		case s.Pitch()*tag.Height != byteSize:
			logger.Warnf(
				ctx,
				"the native surface size (%d*%d=%d) differs from the requested size %d",
				s.Pitch(), tag.Height, s.Pitch()*tag.Height, byteSize,
			)
			s.Release(ctx)
		default:
			logger.Debugf(ctx, "created a native %s surface, line pitch %d", tag, s.Pitch())
			buf.surface = s
			return buf
		}
	}

	p.fallbacks.Inc()
	logger.Debugf(ctx, "allocating a plain %d bytes buffer for %s", byteSize, tag)
	buf.data = make([]byte, byteSize)
	return buf
}

// Release returns a borrowed buffer. It is pooled for reuse only if its
// tag still equals the currently negotiated geometry; otherwise it is
// destroyed.
func (p *Pool) Release(
	ctx context.Context,
	buf *Buffer,
) {
	internal.Assert(ctx, buf != nil)
	logger.Tracef(ctx, "Release(%s)", buf.Tag)
	defer func() { logger.Tracef(ctx, "/Release(%s)", buf.Tag) }()
	p.locker.Do(ctx, func() {
		if buf.Tag != p.current {
			logger.Debugf(ctx, "destroying the released buffer %s: the current geometry is %s", buf.Tag, p.current)
			buf.destroy(ctx)
			p.evictions.Inc()
			return
		}
		p.buffers = append([]*Buffer{buf}, p.buffers...)
	})
}

// Clear destroys every pooled entry. It is used at teardown and on
// negotiated-geometry changes; callers must guarantee no buffer is
// borrowed concurrently.
func (p *Pool) Clear(ctx context.Context) {
	logger.Debugf(ctx, "Clear")
	defer func() { logger.Debugf(ctx, "/Clear") }()
	p.locker.Do(ctx, func() {
		for _, buf := range p.buffers {
			buf.destroy(ctx)
		}
		p.buffers = nil
	})
}

func (p *Pool) Len(ctx context.Context) int {
	return xsync.DoR1(ctx, &p.locker, func() int {
		return len(p.buffers)
	})
}

func (p *Pool) Statistics() PoolStatistics {
	return PoolStatistics{
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		Evictions: p.evictions.Load(),
		Fallbacks: p.fallbacks.Load(),
	}
}
