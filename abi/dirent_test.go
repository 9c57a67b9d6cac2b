package abi

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	qerrors "github.com/qolproject/qnxcompat/errors"
)

// buildHostDirents assembles a synthetic getdents64 buffer.
func buildHostDirents(t *testing.T, names []string) []byte {
	t.Helper()
	var buf []byte
	for i, name := range names {
		reclen := (hostDirentNameOff + len(name) + 1 + 7) &^ 7
		rec := make([]byte, reclen)
		le.PutUint64(rec[0:], uint64(1000+i))
		le.PutUint64(rec[8:], uint64(i+1))
		le.PutUint16(rec[16:], uint16(reclen))
		rec[18] = 8 // DT_REG, dropped by the translation
		copy(rec[hostDirentNameOff:], name)
		buf = append(buf, rec...)
	}
	return buf
}

func TestTranslateDirents(t *testing.T) {
	names := []string{".", "..", "a", "somewhat-longer-name.txt", "x.y"}
	host := buildHostDirents(t, names)
	buf := make([]byte, len(host)+len(host)/3)
	n := copy(buf, host)

	total, err := TranslateDirents(buf, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total > len(buf) {
		t.Fatalf("translated stream %d exceeds buffer %d", total, len(buf))
	}

	off := 0
	for i, want := range names {
		if off >= total {
			t.Fatalf("ran out of records at %d, want %d", i, len(names))
		}
		reclen := int(le.Uint16(buf[off+16:]))
		namelen := int(le.Uint16(buf[off+18:]))
		name := string(buf[off+DirentHeaderSize : off+DirentHeaderSize+namelen])
		if name != want {
			t.Errorf("record %d: name %q, want %q", i, name, want)
		}
		if namelen != len(want) {
			t.Errorf("record %d: namelen %d, want byte length %d", i, namelen, len(want))
		}
		if buf[off+DirentHeaderSize+namelen] != 0 {
			t.Errorf("record %d: name not NUL-terminated", i)
		}
		if ino := le.Uint64(buf[off:]); ino != uint64(1000+i) {
			t.Errorf("record %d: ino %d, want %d", i, ino, 1000+i)
		}
		if reclen < DirentHeaderSize+namelen+1 || reclen%8 != 0 {
			t.Errorf("record %d: inconsistent reclen %d for namelen %d", i, reclen, namelen)
		}
		off += reclen
	}
	if off != total {
		t.Errorf("stream length %d, consumed %d", total, off)
	}
}

func TestTranslateDirentsOverflow(t *testing.T) {
	// A name length that forces the QNX record past the host record's
	// rounded size, in a buffer with no slack.
	names := []string{"abcd", "efgh"}
	host := buildHostDirents(t, names)
	buf := make([]byte, len(host))
	copy(buf, host)

	_, err := TranslateDirents(buf, len(host))
	if err == nil {
		t.Fatal("expected overflow error in a slack-free buffer")
	}
	if !errors.Is(err, qerrors.New(qerrors.PhaseEncode, qerrors.KindOverflow).Build()) {
		t.Errorf("unexpected error shape: %v", err)
	}
	if got := ErrnoFromHost(err); got != EOVERFLOW {
		t.Errorf("errno translation = %d, want EOVERFLOW", got)
	}
}

func TestTranslateDirentsMalformed(t *testing.T) {
	host := buildHostDirents(t, []string{"sane"})
	buf := make([]byte, 4096)
	copy(buf, host)

	// A zeroed reclen cannot describe a record.
	le.PutUint16(buf[hostDirentReclenOff:], 0)
	_, err := TranslateDirents(buf, len(host))
	if err == nil {
		t.Fatal("expected a malformed-record error")
	}
	if !errors.Is(err, qerrors.New(qerrors.PhaseDecode, qerrors.KindMalformed).Build()) {
		t.Errorf("unexpected error shape: %v", err)
	}
	if got := ErrnoFromHost(err); got != EINVAL {
		t.Errorf("errno translation = %d, want EINVAL", got)
	}

	// A reclen pointing past the valid length is equally rejected.
	copy(buf, host)
	le.PutUint16(buf[hostDirentReclenOff:], uint16(len(host)+8))
	if _, err := TranslateDirents(buf, len(host)); err == nil {
		t.Error("expected a malformed-record error for a runaway reclen")
	}
}

func TestDirRead(t *testing.T) {
	tempDir := t.TempDir()
	want := []string{"alpha", "beta", "a-rather-long-file-name-for-a-test.bin"}
	for _, name := range want {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	dir, err := OpenDir(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dir.Close()

	var got []string
	for {
		ent, err := dir.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if ent == nil {
			break
		}
		if ent.Name != "." && ent.Name != ".." {
			got = append(got, ent.Name)
		}
		if ent.Ino == 0 {
			t.Errorf("entry %q has zero inode", ent.Name)
		}
	}
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %d entries %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDirReadEndOfStream(t *testing.T) {
	dir, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dir.Close()

	for {
		ent, err := dir.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if ent == nil {
			break
		}
	}
	// End of stream is sticky and side-effect free.
	ent, err := dir.Read()
	if err != nil || ent != nil {
		t.Errorf("expected nil, nil after end of stream, got %v, %v", ent, err)
	}
}

func TestDirRewind(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "only"), nil, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	dir, err := OpenDir(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dir.Close()

	first := readAllNames(t, dir)
	if err := dir.Rewind(); err != nil {
		t.Fatalf("rewind: %v", err)
	}
	second := readAllNames(t, dir)
	sort.Strings(first)
	sort.Strings(second)
	if len(first) != len(second) {
		t.Fatalf("rewind changed entry count: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs after rewind: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestDirControl(t *testing.T) {
	dir, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dir.Close()
	if got := dir.Control(DGetFlag, 0); got != 0 {
		t.Errorf("dircntl get: got %d, want 0", got)
	}
	if got := dir.Control(DSetFlag, 1); got != 0 {
		t.Errorf("dircntl set: got %d, want 0", got)
	}
}

func readAllNames(t *testing.T, dir *Dir) []string {
	t.Helper()
	var names []string
	for {
		ent, err := dir.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if ent == nil {
			return names
		}
		names = append(names, ent.Name)
	}
}
