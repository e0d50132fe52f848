// Package commands implements the pngme operations on top of the chunk codec:
// hiding a message in a PNG, reading it back, removing it and printing the
// chunk structure.
//
// Commands read and write whole buffers through a storage.Storage and report
// to an io.Writer, so they run the same against files and in tests.
package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/backkem/pngme/pkg/chunk"
	"github.com/backkem/pngme/pkg/crypto"
	"github.com/backkem/pngme/pkg/png"
	"github.com/backkem/pngme/pkg/storage"
	"github.com/pion/logging"
)

// Config configures Commands.
type Config struct {
	// Storage loads and saves PNG buffers. Required.
	Storage storage.Storage

	// Output receives user-facing output. If nil, output is discarded.
	Output io.Writer

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Commands runs pngme operations.
type Commands struct {
	storage storage.Storage
	out     io.Writer
	log     logging.LeveledLogger
}

// New creates Commands from config.
func New(config Config) (*Commands, error) {
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}

	c := &Commands{
		storage: config.Storage,
		out:     config.Output,
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if config.LoggerFactory != nil {
		c.log = config.LoggerFactory.NewLogger("commands")
	}
	return c, nil
}

// EncodeArgs are the arguments of Encode.
type EncodeArgs struct {
	Path      string
	ChunkType string
	Message   string

	// OutputPath is where the result is written. Empty means Path.
	OutputPath string

	// Passphrase seals the message when non-empty.
	Passphrase string
}

// Encode hides Message in a new chunk of type ChunkType. The chunk is placed
// before IEND so strict decoders still read the image.
func (c *Commands) Encode(args EncodeArgs) error {
	typ, err := chunk.ParseType(args.ChunkType)
	if err != nil {
		return fmt.Errorf("chunk type %q: %w", args.ChunkType, err)
	}

	p, err := c.load(args.Path)
	if err != nil {
		return err
	}

	payload := []byte(args.Message)
	if args.Passphrase != "" {
		payload, err = crypto.Seal([]byte(args.Passphrase), payload)
		if err != nil {
			return fmt.Errorf("seal message: %w", err)
		}
	}

	ch, err := chunk.New(typ, payload)
	if err != nil {
		return fmt.Errorf("create chunk: %w", err)
	}
	if c.log != nil && !typ.IsValid() {
		c.log.Warnf("chunk type %s has the reserved bit set", typ)
	}
	p.InsertChunk(ch)

	output := args.OutputPath
	if output == "" {
		output = args.Path
	}
	if err := c.storage.Save(output, p.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}

	if c.log != nil {
		c.log.Infof("encoded %d byte message as %s chunk into %s", len(args.Message), typ, output)
	}
	return nil
}

// DecodeArgs are the arguments of Decode.
type DecodeArgs struct {
	Path      string
	ChunkType string

	// Passphrase opens sealed messages.
	Passphrase string
}

// Decode returns the message in the first chunk of type ChunkType and
// prints it.
func (c *Commands) Decode(args DecodeArgs) (string, error) {
	p, err := c.load(args.Path)
	if err != nil {
		return "", err
	}

	ch := p.ChunkByType(args.ChunkType)
	if ch == nil {
		return "", fmt.Errorf("%s: %w", args.ChunkType, png.ErrChunkNotFound)
	}

	var msg string
	if crypto.IsSealed(ch.Data()) {
		if args.Passphrase == "" {
			return "", ErrPassphraseRequired
		}
		data, err := crypto.Open([]byte(args.Passphrase), ch.Data())
		if err != nil {
			return "", fmt.Errorf("%s: %w", args.ChunkType, err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s: %w", args.ChunkType, chunk.ErrInvalidEncoding)
		}
		msg = string(data)
	} else {
		if args.Passphrase != "" && c.log != nil {
			c.log.Warnf("%s chunk in %s is not sealed, passphrase ignored", args.ChunkType, args.Path)
		}
		msg, err = ch.Text()
		if err != nil {
			return "", fmt.Errorf("%s: %w", args.ChunkType, err)
		}
	}

	fmt.Fprintf(c.out, "Message: %s\n", msg)
	return msg, nil
}

// RemoveArgs are the arguments of Remove.
type RemoveArgs struct {
	Path      string
	ChunkType string
}

// Remove deletes the first chunk of type ChunkType and writes the file back.
func (c *Commands) Remove(args RemoveArgs) (*chunk.Chunk, error) {
	p, err := c.load(args.Path)
	if err != nil {
		return nil, err
	}

	removed, err := p.RemoveChunk(args.ChunkType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args.ChunkType, err)
	}
	if err := c.storage.Save(args.Path, p.Bytes()); err != nil {
		return nil, fmt.Errorf("save %s: %w", args.Path, err)
	}

	if c.log != nil {
		c.log.Infof("removed %s chunk from %s", removed.Type(), args.Path)
	}
	fmt.Fprintf(c.out, "Removed chunk: %s\n", removed)
	return removed, nil
}

// PrintArgs are the arguments of Print and List.
type PrintArgs struct {
	Path string
}

// Print writes the debug rendering of the whole container.
func (c *Commands) Print(args PrintArgs) error {
	p, err := c.load(args.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: %s\n", args.Path, p)
	return nil
}

// List writes one line per chunk with its type, length, CRC and property
// flags.
func (c *Commands) List(args PrintArgs) error {
	p, err := c.load(args.Path)
	if err != nil {
		return err
	}

	offset := png.SignatureSize
	for i, ch := range p.Chunks() {
		fmt.Fprintf(c.out, "%3d  offset=%-8d %-4s  length=%-8d crc=0x%08x  %s\n",
			i, offset, ch.Type(), ch.Length(), ch.CRC(), flags(ch.Type()))
		offset += ch.Size()
	}
	return nil
}

// flags renders the type properties.
func flags(t chunk.Type) string {
	parts := make([]string, 0, 4)
	if t.IsCritical() {
		parts = append(parts, "critical")
	} else {
		parts = append(parts, "ancillary")
	}
	if t.IsPublic() {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if !t.IsReservedBitValid() {
		parts = append(parts, "reserved-bit-set")
	}
	if t.IsSafeToCopy() {
		parts = append(parts, "safe-to-copy")
	} else {
		parts = append(parts, "unsafe-to-copy")
	}
	return strings.Join(parts, ",")
}

func (c *Commands) load(path string) (*png.PNG, error) {
	data, err := c.storage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.log != nil {
		c.log.Debugf("parsed %s: %d chunks", path, len(p.Chunks()))
	}
	return p, nil
}
