package util

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// CreateCBZ packs files into a comic archive at output. Entries are named by
// base name and stored in sorted order, which is the reading order for the
// page_NNN names the exporter writes.
func CreateCBZ(files []string, output string) (err error) {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}
	defer func() { err = errors.Join(err, out.Close()) }()

	z := zip.NewWriter(out)
	defer func() { err = errors.Join(err, z.Close()) }()

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, file := range sorted {
		if err := addFileToZip(z, file); err != nil {
			return fmt.Errorf("cbz: %s: %w", filepath.Base(file), err)
		}
	}

	return nil
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(file)
	header.Method = zip.Deflate

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
