// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iox provides boilerplate wrapper functions for opening and
// saving data to files using serialization formats, with format-specific
// implementations in the jsonx, tomlx, and yamlx sub-packages.
package iox

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"os"
)

// Decoder is an interface for standard decoder types.
type Decoder interface {
	// Decode decodes from io.Reader specified at creation.
	Decode(v any) error
}

// DecoderFunc is a function that creates a new Decoder for the given reader.
type DecoderFunc func(r io.Reader) Decoder

// Open reads the given object from the given filename
// using the given [DecoderFunc].
func Open(v any, filename string, f DecoderFunc) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// OpenFS reads the given object from the given filename
// in the given filesystem, using the given [DecoderFunc].
func OpenFS(v any, fsys fs.FS, filename string, f DecoderFunc) error {
	fp, err := fsys.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, bufio.NewReader(fp), f)
}

// Read reads the given object from the given reader,
// using the given [DecoderFunc].
func Read(v any, reader io.Reader, f DecoderFunc) error {
	d := f(reader)
	return d.Decode(v)
}

// ReadBytes reads the given object from the given bytes,
// using the given [DecoderFunc].
func ReadBytes(v any, data []byte, f DecoderFunc) error {
	b := bytes.NewBuffer(data)
	return Read(v, b, f)
}

// Encoder is an interface for standard encoder types.
type Encoder interface {
	// Encode encodes to io.Writer specified at creation.
	Encode(v any) error
}

// EncoderFunc is a function that creates a new Encoder for the given writer.
type EncoderFunc func(w io.Writer) Encoder

// Save writes the given object to the given filename
// using the given [EncoderFunc].
func Save(v any, filename string, f EncoderFunc) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	err = Write(v, bw, f)
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the given object using the given [EncoderFunc].
func Write(v any, writer io.Writer, f EncoderFunc) error {
	e := f(writer)
	return e.Encode(v)
}

// WriteBytes writes the given object, returning bytes of the encoding,
// using the given [EncoderFunc].
func WriteBytes(v any, f EncoderFunc) ([]byte, error) {
	var b bytes.Buffer
	err := Write(v, &b, f)
	return b.Bytes(), err
}
