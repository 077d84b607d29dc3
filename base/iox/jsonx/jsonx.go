// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx provides JSON-based input / output methods.
package jsonx

import (
	"encoding/json"
	"io"
	"io/fs"

	"worldkit.dev/core/base/iox"
)

// Open reads the given object from the given filename using JSON encoding.
func Open(v any, filename string) error {
	return iox.Open(v, filename, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// OpenFS reads the given object from the given filename
// in the given filesystem, using JSON encoding.
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// Read reads the given object from the given reader using JSON encoding.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// ReadBytes reads the given object from the given bytes using JSON encoding.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, func(r io.Reader) iox.Decoder {
		return json.NewDecoder(r)
	})
}

// Save writes the given object to the given filename using JSON encoding.
func Save(v any, filename string) error {
	return iox.Save(v, filename, func(w io.Writer) iox.Encoder {
		return json.NewEncoder(w)
	})
}

// SaveIndent writes the given object to the given filename
// using JSON encoding, with indentation.
func SaveIndent(v any, filename string) error {
	return iox.Save(v, filename, indentEncoderFunc)
}

// Write writes the given object using JSON encoding.
func Write(v any, writer io.Writer) error {
	return iox.Write(v, writer, func(w io.Writer) iox.Encoder {
		return json.NewEncoder(w)
	})
}

// WriteIndent writes the given object using JSON encoding,
// with indentation.
func WriteIndent(v any, writer io.Writer) error {
	return iox.Write(v, writer, indentEncoderFunc)
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, func(w io.Writer) iox.Encoder {
		return json.NewEncoder(w)
	})
}

func indentEncoderFunc(w io.Writer) iox.Encoder {
	e := json.NewEncoder(w)
	e.SetIndent("", "\t")
	return e
}
