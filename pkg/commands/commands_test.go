package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/backkem/pngme/pkg/chunk"
	"github.com/backkem/pngme/pkg/crypto"
	"github.com/backkem/pngme/pkg/png"
	"github.com/backkem/pngme/pkg/storage"
	"github.com/pion/logging"
	"github.com/pion/transport/v3/test"
)

// testPNG returns a minimal 1x1 grayscale image.
func testPNG(t *testing.T) []byte {
	t.Helper()
	ihdr, err := chunk.New(chunk.TypeIHDR, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	idat, err := chunk.New(chunk.TypeIDAT, []byte{0x78, 0x9C, 0x63, 0x60, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	iend, err := chunk.New(chunk.TypeIEND, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return png.FromChunks([]*chunk.Chunk{ihdr, idat, iend}).Bytes()
}

func newTestCommands(t *testing.T) (*Commands, *storage.MemoryStorage, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStorage()
	if err := store.Save("in.png", testPNG(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var out bytes.Buffer
	cmds, err := New(Config{
		Storage:       store,
		Output:        &out,
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return cmds, store, &out
}

func TestNewRequiresStorage(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrStorageRequired) {
		t.Errorf("New() error = %v, want %v", err, ErrStorageRequired)
	}
}

func TestEncodeDecode(t *testing.T) {
	defer test.CheckRoutines(t)()

	cmds, store, out := newTestCommands(t)

	err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "hello"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	data, err := store.Load("in.png")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	p, err := png.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	chunks := p.Chunks()
	if got := chunks[len(chunks)-1].Type(); got != chunk.TypeIEND {
		t.Errorf("last chunk = %s, want IEND", got)
	}
	if got := chunks[len(chunks)-2].Type().String(); got != "ruSt" {
		t.Errorf("chunk before IEND = %s, want ruSt", got)
	}

	msg, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt"})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if msg != "hello" {
		t.Errorf("Decode() = %q, want %q", msg, "hello")
	}
	if !strings.Contains(out.String(), "Message: hello") {
		t.Errorf("output = %q, missing message", out.String())
	}
}

func TestEncodeOutputPath(t *testing.T) {
	cmds, store, _ := newTestCommands(t)
	original, _ := store.Load("in.png")

	err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "hi", OutputPath: "out.png"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	unchanged, _ := store.Load("in.png")
	if !bytes.Equal(unchanged, original) {
		t.Error("input file was modified")
	}
	if _, err := cmds.Decode(DecodeArgs{Path: "out.png", ChunkType: "ruSt"}); err != nil {
		t.Errorf("Decode() error: %v", err)
	}
}

func TestEncodeErrors(t *testing.T) {
	cmds, store, _ := newTestCommands(t)
	if err := store.Save("bad.png", []byte("not a png")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	tests := []struct {
		name    string
		args    EncodeArgs
		wantErr error
	}{
		{name: "invalid type", args: EncodeArgs{Path: "in.png", ChunkType: "Ru1t", Message: "x"}, wantErr: chunk.ErrInvalidType},
		{name: "short type", args: EncodeArgs{Path: "in.png", ChunkType: "ab", Message: "x"}, wantErr: chunk.ErrInvalidType},
		{name: "missing file", args: EncodeArgs{Path: "nope.png", ChunkType: "ruSt", Message: "x"}, wantErr: storage.ErrNotFound},
		{name: "not a png", args: EncodeArgs{Path: "bad.png", ChunkType: "ruSt", Message: "x"}, wantErr: png.ErrBadSignature},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := cmds.Encode(tc.args); !errors.Is(err, tc.wantErr) {
				t.Errorf("Encode() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDecodeNotFound(t *testing.T) {
	cmds, _, _ := newTestCommands(t)
	if _, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt"}); !errors.Is(err, png.ErrChunkNotFound) {
		t.Errorf("Decode() error = %v, want %v", err, png.ErrChunkNotFound)
	}
}

func TestDecodeCorruptFile(t *testing.T) {
	cmds, store, _ := newTestCommands(t)
	if err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "hello"}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	data, _ := store.Load("in.png")
	// The message sits just before the 12-byte IEND chunk and its own CRC.
	data[len(data)-12-4-1] ^= 0x01
	if err := store.Save("in.png", data); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt"}); !errors.Is(err, chunk.ErrChecksumMismatch) {
		t.Errorf("Decode() error = %v, want %v", err, chunk.ErrChecksumMismatch)
	}
}

func TestDecodeInvalidText(t *testing.T) {
	cmds, store, _ := newTestCommands(t)
	data, _ := store.Load("in.png")
	p, _ := png.Parse(data)
	bin, err := chunk.New(chunk.MustParseType("biNy"), []byte{0xFF, 0xFE})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	p.InsertChunk(bin)
	if err := store.Save("in.png", p.Bytes()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "biNy"}); !errors.Is(err, chunk.ErrInvalidEncoding) {
		t.Errorf("Decode() error = %v, want %v", err, chunk.ErrInvalidEncoding)
	}
}

func TestEncodeDecodeSealed(t *testing.T) {
	cmds, store, _ := newTestCommands(t)

	err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "secret", Passphrase: "pw"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	data, _ := store.Load("in.png")
	if bytes.Contains(data, []byte("secret")) {
		t.Error("sealed message stored in plain text")
	}
	p, _ := png.Parse(data)
	if !crypto.IsSealed(p.ChunkByType("ruSt").Data()) {
		t.Error("chunk data is not sealed")
	}

	if _, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt"}); !errors.Is(err, ErrPassphraseRequired) {
		t.Errorf("Decode() error = %v, want %v", err, ErrPassphraseRequired)
	}
	if _, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt", Passphrase: "wrong"}); !errors.Is(err, crypto.ErrOpenFailed) {
		t.Errorf("Decode() error = %v, want %v", err, crypto.ErrOpenFailed)
	}

	msg, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt", Passphrase: "pw"})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if msg != "secret" {
		t.Errorf("Decode() = %q, want %q", msg, "secret")
	}
}

func TestRemove(t *testing.T) {
	defer test.CheckRoutines(t)()

	cmds, store, out := newTestCommands(t)
	original, _ := store.Load("in.png")

	if err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "hello"}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	removed, err := cmds.Remove(RemoveArgs{Path: "in.png", ChunkType: "ruSt"})
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if text, _ := removed.Text(); text != "hello" {
		t.Errorf("removed Text() = %q, want %q", text, "hello")
	}
	if !strings.Contains(out.String(), "Removed chunk:") {
		t.Errorf("output = %q", out.String())
	}

	// Encode followed by Remove restores the original bytes.
	data, _ := store.Load("in.png")
	if !bytes.Equal(data, original) {
		t.Error("file differs from original after remove")
	}

	if _, err := cmds.Remove(RemoveArgs{Path: "in.png", ChunkType: "ruSt"}); !errors.Is(err, png.ErrChunkNotFound) {
		t.Errorf("Remove() error = %v, want %v", err, png.ErrChunkNotFound)
	}
}

func TestPrint(t *testing.T) {
	cmds, _, out := newTestCommands(t)
	if err := cmds.Print(PrintArgs{Path: "in.png"}); err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	s := out.String()
	for _, want := range []string{"in.png: PNG {", "Type: IHDR", "Type: IDAT", "Type: IEND"} {
		if !strings.Contains(s, want) {
			t.Errorf("Print() output missing %q", want)
		}
	}
}

func TestList(t *testing.T) {
	cmds, _, out := newTestCommands(t)
	if err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "hello"}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if err := cmds.List(PrintArgs{Path: "in.png"}); err != nil {
		t.Fatalf("List() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("List() printed %d lines, want 4:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "IHDR") || !strings.Contains(lines[0], "offset=8 ") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "ruSt") || !strings.Contains(lines[2], "ancillary,private,safe-to-copy") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.Contains(lines[3], "critical,public,unsafe-to-copy") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "IHDR", want: "critical,public,unsafe-to-copy"},
		{code: "tEXt", want: "ancillary,public,safe-to-copy"},
		{code: "Rust", want: "critical,private,reserved-bit-set,safe-to-copy"},
	}
	for _, tc := range tests {
		if got := flags(chunk.MustParseType(tc.code)); got != tc.want {
			t.Errorf("flags(%s) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestDecodePassphraseOnPlainMessage(t *testing.T) {
	store := storage.NewMemoryStorage()
	if err := store.Save("in.png", testPNG(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var logs bytes.Buffer
	cmds, err := New(Config{
		Storage: store,
		LoggerFactory: &logging.DefaultLoggerFactory{
			Writer:          &logs,
			DefaultLogLevel: logging.LogLevelWarn,
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "plain"}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	msg, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt", Passphrase: "pw"})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if msg != "plain" {
		t.Errorf("Decode() = %q, want %q", msg, "plain")
	}
	if !strings.Contains(logs.String(), "passphrase ignored") {
		t.Errorf("log output = %q, missing warning", logs.String())
	}
}

func TestDecodeOpenErrorNamesChunkType(t *testing.T) {
	cmds, _, _ := newTestCommands(t)
	if err := cmds.Encode(EncodeArgs{Path: "in.png", ChunkType: "ruSt", Message: "secret", Passphrase: "pw"}); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	_, err := cmds.Decode(DecodeArgs{Path: "in.png", ChunkType: "ruSt", Passphrase: "wrong"})
	if !errors.Is(err, crypto.ErrOpenFailed) {
		t.Fatalf("Decode() error = %v, want %v", err, crypto.ErrOpenFailed)
	}
	if !strings.HasPrefix(err.Error(), "ruSt: ") {
		t.Errorf("Decode() error = %q, want chunk type prefix", err.Error())
	}
}
