package downloader

import "io"

// progressWriter reports the running byte count after every write.
type progressWriter struct {
	w        io.Writer
	written  int64
	progress func(done int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.written += int64(n)
		if p.progress != nil {
			p.progress(p.written)
		}
	}
	return n, err
}

func copyWithProgress(dst io.Writer, src io.Reader, progress func(done int64)) (int64, error) {
	return io.Copy(&progressWriter{w: dst, progress: progress}, src)
}
