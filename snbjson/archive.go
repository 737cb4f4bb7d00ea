/*
 * archive.go, part of gosnb.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package snbjson

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	snb "github.com/rmera/gosnb"
)

// Compression is the format in which an archive is compressed.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

// CompressionFor returns the compression given by the extension of name:
// ".zst" or ".zstd" for zstd, ".gz" for gzip, none otherwise.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	}
	return None
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter returns a writer compressing to w with c. Closing it does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	}
	return nopCloser{w}, nil
}

// NewReader returns a reader decompressing r with c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case Gzip:
		return gzip.NewReader(r)
	}
	return io.NopCloser(r), nil
}

// WriteArchive writes the record sets as JSON to the file name, compressed
// according to its extension.
func WriteArchive(name string, sets ...*snb.DistortionRecordSet) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w, err := NewWriter(f, CompressionFor(name))
	if err != nil {
		return err
	}
	if err := Encode(w, sets...); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadArchive reads the record sets in the file name, written by WriteArchive.
func ReadArchive(name string) ([]*snb.DistortionRecordSet, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := NewReader(f, CompressionFor(name))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r)
}
