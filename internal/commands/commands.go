// Package commands implements the pngme operations on PNG files: encode a
// message into a new chunk, decode it back, remove it, and print the chunk
// list.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"pngme.adpollak.net/internal/chunk"
	"pngme.adpollak.net/internal/config"
	"pngme.adpollak.net/internal/png"
)

// Runner carries what every command needs.
type Runner struct {
	Logger *slog.Logger
	Config *config.Config
	Stdout io.Writer
}

// NewRunner returns a Runner writing results to stdout.
func NewRunner(logger *slog.Logger, cfg *config.Config, stdout io.Writer) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runner{Logger: logger, Config: cfg, Stdout: stdout}
}

// Encode appends a chunk of chunkType holding message to the PNG at path.
// The result goes to output, or back to path when output is empty.
func (r *Runner) Encode(path string, chunkType chunk.ChunkType, message, output string) error {
	p, err := r.readPng(path)
	if err != nil {
		return err
	}
	c := p.Append(chunkType, []byte(message))
	r.Logger.Info("appended chunk",
		"path", path,
		"type", chunkType.String(),
		"length", c.Length(),
		"crc", c.CRC(),
	)
	if output == "" {
		output = path
	}
	return r.writePng(output, p)
}

// Decode prints the data of the first chunk of chunkType in the PNG at path,
// or the configured not-found message.
func (r *Runner) Decode(path string, chunkType chunk.ChunkType) error {
	p, err := r.readPng(path)
	if err != nil {
		return err
	}
	c, ok := p.ChunkByType(chunkType.String())
	if !ok {
		r.Logger.Debug("chunk type not present", "path", path, "type", chunkType.String())
		_, err := fmt.Fprintln(r.Stdout, r.Config.NotFoundMessage)
		return err
	}
	message, err := c.DataString()
	if err != nil {
		r.Logger.Warn("chunk data is not utf-8, printing lossy text", "type", chunkType.String())
		message = strings.ToValidUTF8(string(c.Data()), "�")
	}
	_, err = fmt.Fprintln(r.Stdout, message)
	return err
}

// Remove deletes the first chunk of chunkType from the PNG at path and
// rewrites the file. A missing chunk type is an error.
func (r *Runner) Remove(path string, chunkType chunk.ChunkType) error {
	p, err := r.readPng(path)
	if err != nil {
		return err
	}
	removed, err := p.RemoveChunk(chunkType.String())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	r.Logger.Info("removed chunk", "path", path, "type", chunkType.String(), "length", removed.Length())
	return r.writePng(path, p)
}

// Print lists every chunk of the PNG at path with its properties.
func (r *Runner) Print(path string) error {
	p, err := r.readPng(path)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(r.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tSIZE\tCRC\tCRITICAL\tPUBLIC\tSAFE-TO-COPY\tVALID\tDETAIL")
	for i, c := range p.Chunks() {
		ct := c.Type()
		fmt.Fprintf(w, "%d\t%s\t%s\t%08x\t%t\t%t\t%t\t%t\t%s\n",
			i, ct, humanize.Bytes(uint64(c.Length())), c.CRC(),
			ct.IsCritical(), ct.IsPublic(), ct.IsSafeToCopy(), ct.IsValid(),
			detail(c),
		)
	}
	return w.Flush()
}

// detail summarises chunks whose content is worth showing in a listing.
func detail(c chunk.Chunk) string {
	switch c.Type() {
	case chunk.ChunkIHDR:
		h, err := chunk.ParseIHDR(c)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("%dx%d, %d-bit %s", h.Width, h.Height, h.BitDepth, h.ColorTypeName())
	}
	if !chunk.IsStandard(c.Type()) {
		if s, err := c.DataString(); err == nil {
			return fmt.Sprintf("%q", truncate(s, 40))
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func (r *Runner) readPng(path string) (*png.Png, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r.Logger.Debug("read file", "path", path, "size", humanize.Bytes(uint64(len(data))))
	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	r.Logger.Debug("parsed png", "path", path, "chunks", len(p.Chunks()))
	return p, nil
}

func (r *Runner) writePng(path string, p *png.Png) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
		if r.Config.Backup {
			if err := backup(path, mode); err != nil {
				return err
			}
			r.Logger.Debug("wrote backup", "path", path+".bak")
		}
	}
	if err := os.WriteFile(path, p.Bytes(), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	r.Logger.Debug("wrote file", "path", path, "size", humanize.Bytes(uint64(p.Len())))
	return nil
}

func backup(path string, mode os.FileMode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s for backup: %w", path, err)
	}
	if err := os.WriteFile(path+".bak", data, mode); err != nil {
		return fmt.Errorf("writing backup of %s: %w", path, err)
	}
	return nil
}
