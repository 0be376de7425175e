package video

import (
	"fmt"
	"io"

	"github.com/melody-ding/go-vidfeat/internal/frame"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Reader decodes a video file into a stream of raw RGB frames. It
// implements sampler.Source. Frames are produced in decode order; Next
// returns io.EOF at the end of the stream. Close must be called to
// release the decode pipe.
type Reader struct {
	meta      Metadata
	pipe      *io.PipeReader
	frameSize int
	done      chan error
}

// Open probes path and starts an ffmpeg decode of the whole file to
// packed rgb24 on a pipe
func Open(path string) (*Reader, error) {
	meta, err := Probe(path)
	if err != nil {
		return nil, err
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("invalid video dimensions %dx%d in %s", meta.Width, meta.Height, path)
	}

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := ffmpeg.Input(path).
			Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgb24"}).
			WithOutput(pw).
			Silent(true).
			Run()
		pw.CloseWithError(err)
		done <- err
	}()

	return &Reader{
		meta:      meta,
		pipe:      pr,
		frameSize: meta.Width * meta.Height * 3,
		done:      done,
	}, nil
}

// Meta returns the probed stream metadata
func (r *Reader) Meta() Metadata {
	return r.meta
}

// FPS returns the native frame rate
func (r *Reader) FPS() float64 {
	return r.meta.FPS
}

// Next returns the next decoded frame, or io.EOF when the stream ends
func (r *Reader) Next() (frame.Frame, error) {
	pixels := make([]byte, r.frameSize)
	if _, err := io.ReadFull(r.pipe, pixels); err != nil {
		if err == io.EOF {
			return frame.Frame{}, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return frame.Frame{}, fmt.Errorf("truncated frame at end of stream")
		}
		return frame.Frame{}, err
	}
	return frame.NewFrame(r.meta.Width, r.meta.Height, 3, pixels)
}

// Close tears down the decode pipe and waits for ffmpeg to exit
func (r *Reader) Close() error {
	r.pipe.Close()
	return <-r.done
}
