package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// NewKey builds a storage key of the form <hashed user>/<uuid>_<name>.
func NewKey(userID, fileName string) (string, error) {
	name, err := cleanName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join(userNamespace(userID), uuid.NewString()+"_"+name), nil
}

// userNamespace keeps raw user IDs out of object keys.
func userNamespace(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

func cleanName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "", fmt.Errorf("empty file name")
	}
	return cleaned, nil
}

// DigestReader counts and hashes everything read through it.
type DigestReader struct {
	r io.Reader
	h hash.Hash
	n int64
}

func NewDigestReader(r io.Reader) *DigestReader {
	return &DigestReader{r: r, h: sha256.New()}
}

func (d *DigestReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.h.Write(p[:n])
		d.n += int64(n)
	}
	return n, err
}

// Info reports the bytes read so far under key.
func (d *DigestReader) Info(key string) Info {
	return Info{Key: key, SizeBytes: d.n, SHA256: hex.EncodeToString(d.h.Sum(nil))}
}
