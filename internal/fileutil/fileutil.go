// Package fileutil implements the file transfer primitives used when
// staging proxies and descriptors into the Dalet hand-off directory.
package fileutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyVerified copies src to dst and confirms the bytes that landed on disk
// match the source. The destination is hashed by reading it back after the
// copy, so a short write on a network mount is caught before the record is
// flagged as staged. On mismatch dst is removed.
func CopyVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	srcHash := sha256.New()
	written, copyErr := io.Copy(out, io.TeeReader(in, srcHash))
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, copyErr)
	}

	sum, size, err := hashFile(dst)
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("verify %s: %w", dst, err)
	}
	if size != written {
		_ = os.Remove(dst)
		return fmt.Errorf("verify %s: wrote %d bytes, destination holds %d", dst, written, size)
	}
	if sum != fmt.Sprintf("%x", srcHash.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("verify %s: checksum mismatch after copy", dst)
	}
	return nil
}

// Move renames src to dst. When the rename fails, which it does whenever the
// Dalet tmp directory sits on a different filesystem, it falls back to a
// verified copy followed by removal of the source.
func Move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyVerified(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func hashFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	hash := sha256.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), size, nil
}
