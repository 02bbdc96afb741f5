package fsaccess

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

func longName(c byte) string {
	return strings.Repeat(string(c), NameMax+1)
}

func TestMkdir_NameTooLong(t *testing.T) {
	access := New()
	root := fspath.FromAbsolutePath(t.TempDir())

	path := root
	path.AppendWithSeparator(fspath.FromRelativePath(longName('x')), true)

	err := access.Mkdir(path)
	if err == nil {
		t.Fatal("mkdir with an over-long name should fail")
	}
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("mkdir error = %v, want ErrNameTooLong kind", err)
	}

	// A legitimate bad-path failure must not carry the length kind.
	path = root
	path.AppendWithSeparator(fspath.FromRelativePath("x"), true)
	path.AppendWithSeparator(fspath.FromRelativePath("y"), true)

	err = access.Mkdir(path)
	if err == nil {
		t.Fatal("mkdir under a missing parent should fail")
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("missing-parent error should not be ErrNameTooLong: %v", err)
	}
}

func TestRename_NameTooLong(t *testing.T) {
	access := New()
	root := fspath.FromAbsolutePath(t.TempDir())

	src := root
	src.AppendWithSeparator(fspath.FromRelativePath("q"), true)
	if err := access.Mkdir(src); err != nil {
		t.Fatal(err)
	}

	dst := root
	dst.AppendWithSeparator(fspath.FromRelativePath(longName('r')), true)

	err := access.Rename(src, dst)
	if err == nil {
		t.Fatal("rename to an over-long name should fail")
	}
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("rename error = %v, want ErrNameTooLong kind", err)
	}

	dst = root
	dst.AppendWithSeparator(fspath.FromRelativePath("u"), true)
	dst.AppendWithSeparator(fspath.FromRelativePath("v"), true)

	err = access.Rename(src, dst)
	if err == nil {
		t.Fatal("rename into a missing parent should fail")
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("missing-parent error should not be ErrNameTooLong: %v", err)
	}
}

func TestCreate_NameTooLong(t *testing.T) {
	access := New()
	root := fspath.FromAbsolutePath(t.TempDir())

	path := root
	path.AppendWithSeparator(fspath.FromRelativePath(longName('w')), true)

	_, err := access.Create(path)
	if err == nil {
		t.Fatal("create with an over-long name should fail")
	}
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("create error = %v, want ErrNameTooLong kind", err)
	}

	path = root
	path.AppendWithSeparator(fspath.FromRelativePath("x"), true)
	path.AppendWithSeparator(fspath.FromRelativePath("y"), true)

	_, err = access.Create(path)
	if err == nil {
		t.Fatal("create under a missing parent should fail")
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("missing-parent error should not be ErrNameTooLong: %v", err)
	}
}

func TestCopy_NameTooLong(t *testing.T) {
	access := New()
	dir := t.TempDir()
	root := fspath.FromAbsolutePath(dir)

	if err := os.WriteFile(filepath.Join(dir, "s"), []byte{0x21}, 0644); err != nil {
		t.Fatal(err)
	}
	src := root
	src.AppendWithSeparator(fspath.FromRelativePath("s"), true)

	dst := root
	dst.AppendWithSeparator(fspath.FromRelativePath(longName('u')), true)

	err := access.Copy(src, dst)
	if err == nil {
		t.Fatal("copy to an over-long name should fail")
	}
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("copy error = %v, want ErrNameTooLong kind", err)
	}
}

func TestEmptyDir(t *testing.T) {
	access := New()
	dir := t.TempDir()
	root := fspath.FromAbsolutePath(dir)

	for _, name := range []string{"a", "b"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "d"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := access.EmptyDir(root); err != nil {
		t.Fatalf("EmptyDir: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory not emptied, %d entries remain", len(entries))
	}
}

func TestValidateName(t *testing.T) {
	// Over-long escaped spelling is rejected up front.
	err := ValidateName(longName('a'), fspath.NodeFile, fspath.FilesystemUnknown)
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("ValidateName(long) = %v, want ErrNameTooLong", err)
	}

	// Escaping may push a fitting name over the limit.
	borderline := strings.Repeat(":", NameMax/3+1)
	err = ValidateName(borderline, fspath.NodeFile, fspath.FilesystemUnknown)
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("ValidateName(borderline) = %v, want ErrNameTooLong", err)
	}
	// The same name fits where the colon needs no escape.
	if err := ValidateName(borderline, fspath.NodeFile, fspath.FilesystemExt); err != nil {
		t.Errorf("ValidateName(borderline, ext) = %v, want nil", err)
	}

	if err := ValidateName("report.txt", fspath.NodeFile, fspath.FilesystemUnknown); err != nil {
		t.Errorf("ValidateName(report.txt) = %v, want nil", err)
	}

	if err := ValidateName("", fspath.NodeFile, fspath.FilesystemUnknown); err == nil {
		t.Error("empty name should be rejected")
	}
}

func TestValidateName_Reserved(t *testing.T) {
	// Windows family volumes restrict device names on any host.
	err := ValidateName("CON.txt", fspath.NodeFile, fspath.FilesystemNTFS)
	if !errors.Is(err, domain.ErrReservedName) {
		t.Errorf("ValidateName(CON.txt, ntfs) = %v, want ErrReservedName", err)
	}
	err = ValidateName("archive.", fspath.NodeFolder, fspath.FilesystemFAT)
	if !errors.Is(err, domain.ErrReservedName) {
		t.Errorf("ValidateName(archive., fat folder) = %v, want ErrReservedName", err)
	}
	if err := ValidateName("archive.", fspath.NodeFile, fspath.FilesystemFAT); err != nil {
		t.Errorf("ValidateName(archive., fat file) = %v, want nil", err)
	}
}
