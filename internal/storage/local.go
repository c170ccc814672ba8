package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxKeyAttempts bounds the collision retry loop. A v4 UUID collision is
// already negligible; more than a few in a row means something is broken.
const maxKeyAttempts = 3

// diskStore implements BlobStore on the local filesystem. Each owner gets
// a directory under root, created lazily. It is safe for concurrent use:
// writes land in a temp file and are linked into place atomically.
type diskStore struct {
	root string
}

// NewDisk creates a filesystem-backed blob store rooted at root.
// The root is resolved once at construction and immutable thereafter.
func NewDisk(root string) (BlobStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &diskStore{root: abs}, nil
}

func (d *diskStore) Store(ctx context.Context, ownerID string, r io.Reader, originalName, contentType string, size int64) (BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return BlobInfo{}, err
	}
	if r == nil {
		return BlobInfo{}, fmt.Errorf("%w: no content", ErrInvalidName)
	}
	ext, err := safeExtension(originalName)
	if err != nil {
		return BlobInfo{}, err
	}
	if !validSegment(ownerID) {
		return BlobInfo{}, fmt.Errorf("%w: bad owner id", ErrInvalidName)
	}

	dir := filepath.Join(d.root, ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BlobInfo{}, fmt.Errorf("create owner directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return BlobInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return BlobInfo{}, fmt.Errorf("write blob: %w", err)
	}

	// Link the finished temp file into place under a fresh key. Link fails
	// on an existing target, so a colliding key can never overwrite another
	// owner's upload racing on the same name.
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key := ownerID + "_" + uuid.NewString() + ext
		target := filepath.Join(dir, key)
		if err := os.Link(tmpPath, target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return BlobInfo{}, fmt.Errorf("store blob: %w", err)
		}
		return BlobInfo{Key: key, Size: n, ContentType: contentType}, nil
	}
	return BlobInfo{}, ErrKeyCollision
}

func (d *diskStore) Load(ctx context.Context, ownerID, key string) (io.ReadCloser, BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, BlobInfo{}, err
	}
	path, err := d.resolve(ownerID, key)
	if err != nil {
		return nil, BlobInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, BlobInfo{}, ErrNotFound
		}
		return nil, BlobInfo{}, fmt.Errorf("open blob: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, BlobInfo{}, fmt.Errorf("stat blob: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, BlobInfo{Key: key, Size: st.Size(), ContentType: ct}, nil
}

func (d *diskStore) Delete(ctx context.Context, ownerID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := d.resolve(ownerID, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// resolve maps (ownerID, key) to an absolute path strictly inside the
// owner's namespace. Anything that is not a bare filename fails closed
// with ErrNotFound so malformed keys can never leak outside files.
func (d *diskStore) resolve(ownerID, key string) (string, error) {
	if !validSegment(ownerID) || !validSegment(key) {
		return "", ErrNotFound
	}
	path := filepath.Join(d.root, ownerID, key)
	if !strings.HasPrefix(path, d.root+string(os.PathSeparator)) {
		return "", ErrNotFound
	}
	return path, nil
}

// validSegment reports whether s is usable as a single path element.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	if strings.ContainsAny(s, `/\`) {
		return false
	}
	return filepath.Base(s) == s
}

// safeExtension extracts the extension from a client-supplied filename,
// rejecting names that carry parent-directory segments. Only the extension
// ever reaches the generated key.
func safeExtension(originalName string) (string, error) {
	name := strings.ReplaceAll(originalName, `\`, `/`)
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", ErrInvalidName
		}
	}
	ext := filepath.Ext(filepath.Base(name))
	if ext == "." {
		ext = ""
	}
	return ext, nil
}
