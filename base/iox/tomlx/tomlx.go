// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides TOML-based input / output methods.
package tomlx

import (
	"io"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"worldkit.dev/core/base/iox"
)

// Open reads the given object from the given filename using TOML encoding.
func Open(v any, filename string) error {
	return iox.Open(v, filename, func(r io.Reader) iox.Decoder {
		return toml.NewDecoder(r)
	})
}

// OpenFS reads the given object from the given filename
// in the given filesystem, using TOML encoding.
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, func(r io.Reader) iox.Decoder {
		return toml.NewDecoder(r)
	})
}

// Read reads the given object from the given reader using TOML encoding.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, func(r io.Reader) iox.Decoder {
		return toml.NewDecoder(r)
	})
}

// ReadBytes reads the given object from the given bytes using TOML encoding.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, func(r io.Reader) iox.Decoder {
		return toml.NewDecoder(r)
	})
}

// Save writes the given object to the given filename using TOML encoding.
func Save(v any, filename string) error {
	return iox.Save(v, filename, func(w io.Writer) iox.Encoder {
		return toml.NewEncoder(w)
	})
}

// Write writes the given object using TOML encoding.
func Write(v any, writer io.Writer) error {
	return iox.Write(v, writer, func(w io.Writer) iox.Encoder {
		return toml.NewEncoder(w)
	})
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, func(w io.Writer) iox.Encoder {
		return toml.NewEncoder(w)
	})
}
