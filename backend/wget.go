package backend

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/virta-dl/virta/constant"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/network"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
	"github.com/virta-dl/virta/util"
)

// wgetBackend downloads a plain progressive stream over HTTP. It cannot
// slice the stream or change its container, but needs no external tools.
type wgetBackend struct {
	stream *media.Stream
	report Reporter
}

func newWgetBackend(stream *media.Stream, report Reporter) Backend {
	return &wgetBackend{stream: stream, report: report}
}

func (b *wgetBackend) Name() string {
	return Wget
}

func (b *wgetBackend) Save(outputFile string, clip *media.Clip, ctx *output.Context) outcome.Code {
	fs := filesystem.API()

	if err := fs.MkdirAll(filepath.Dir(outputFile), os.ModePerm); err != nil {
		b.report.Errorf("Failed to create the destination directory: %v", err)
		return outcome.Failed
	}

	file, err := fs.Create(outputFile)
	if err != nil {
		b.report.Errorf("Failed to create %s: %v", outputFile, err)
		return outcome.Failed
	}
	defer util.Ignore(file.Close)

	return b.transfer(file)
}

func (b *wgetBackend) Pipe(ctx *output.Context) outcome.Code {
	return b.transfer(os.Stdout)
}

func (b *wgetBackend) transfer(dest io.Writer) outcome.Code {
	resp, err := b.get(http.MethodGet)
	if err != nil {
		b.report.Errorf("Request for %s failed: %v", b.stream.URL, err)
		return outcome.Failed
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		b.report.Errorf("Unexpected status %s for %s", resp.Status, b.stream.URL)
		return outcome.Failed
	}

	if _, err := io.Copy(dest, resp.Body); err != nil {
		// The connection dropped mid-transfer. The bytes copied so far may
		// still be useful, so this is not a hard failure.
		b.report.Warnf("Transfer interrupted: %v", err)
		return outcome.Incomplete
	}

	return outcome.Success
}

// FileExtension derives the extension from the stream URL, because a
// progressive download keeps whatever container the host serves.
func (b *wgetBackend) FileExtension(preferredFormat string) string {
	base := filepath.Base(b.stream.URL)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}

	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
		return ext
	}
	return "mp4"
}

// FullyDownloaded compares the local file size against the Content-Length
// reported by the host.
func (b *wgetBackend) FullyDownloaded(outputFile string, clip *media.Clip, ctx *output.Context) bool {
	info, err := filesystem.API().Stat(outputFile)
	if err != nil {
		return false
	}

	resp, err := b.get(http.MethodHead)
	if err != nil {
		return false
	}
	defer util.Ignore(resp.Body.Close)

	return resp.StatusCode == http.StatusOK &&
		resp.ContentLength > 0 &&
		info.Size() >= resp.ContentLength
}

func (b *wgetBackend) WarnOnUnsupportedFeature(ctx *output.Context) {
	if ctx.Limits.SlicingActive() {
		b.report.Warnf("Slicing is not supported on a progressive download, saving the full stream")
	}
}

func (b *wgetBackend) get(method string) (*http.Response, error) {
	req, err := http.NewRequest(method, b.stream.URL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	for k, v := range b.stream.Headers {
		req.Header.Set(k, v)
	}

	return network.Client.Do(req)
}
