package packager

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// excludedNames are never copied into the processed resource tree.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// ProcessResources verifies staging and mirrors the resource directory into
// ResourcesOutputDir, replacing any previous output.
func (p *Packager) ProcessResources(ctx context.Context) (string, error) {
	if _, err := p.requireStaged(); err != nil {
		return "", err
	}

	dst := p.ResourcesOutputDir()
	if err := os.RemoveAll(dst); err != nil {
		return "", fmt.Errorf("removing previous resources at %s: %w", dst, err)
	}

	count := 0
	if err := copyDir(ctx, p.Layout.ResourcesDir, dst, &count); err != nil {
		return "", fmt.Errorf("copying %s to %s: %w", p.Layout.ResourcesDir, dst, err)
	}

	p.Log.WithFields(log.Fields{"dest": dst, "files": count}).Info("resources processed")
	return dst, nil
}

// copyDir recursively copies src to dst, skipping excludedNames and
// anything that is neither a directory nor a regular file.
func copyDir(ctx context.Context, src, dst string, count *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(ctx, srcPath, dstPath, count); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			*count++
		}
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
