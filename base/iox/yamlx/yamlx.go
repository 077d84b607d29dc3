// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides YAML-based input / output methods.
package yamlx

import (
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
	"worldkit.dev/core/base/iox"
)

// Open reads the given object from the given filename using YAML encoding.
func Open(v any, filename string) error {
	return iox.Open(v, filename, func(r io.Reader) iox.Decoder {
		return yaml.NewDecoder(r)
	})
}

// OpenFS reads the given object from the given filename
// in the given filesystem, using YAML encoding.
func OpenFS(v any, fsys fs.FS, filename string) error {
	return iox.OpenFS(v, fsys, filename, func(r io.Reader) iox.Decoder {
		return yaml.NewDecoder(r)
	})
}

// Read reads the given object from the given reader using YAML encoding.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, func(r io.Reader) iox.Decoder {
		return yaml.NewDecoder(r)
	})
}

// ReadBytes reads the given object from the given bytes using YAML encoding.
func ReadBytes(v any, data []byte) error {
	return iox.ReadBytes(v, data, func(r io.Reader) iox.Decoder {
		return yaml.NewDecoder(r)
	})
}

// Save writes the given object to the given filename using YAML encoding.
func Save(v any, filename string) error {
	return iox.Save(v, filename, func(w io.Writer) iox.Encoder {
		return yaml.NewEncoder(w)
	})
}

// Write writes the given object using YAML encoding.
func Write(v any, writer io.Writer) error {
	return iox.Write(v, writer, func(w io.Writer) iox.Encoder {
		return yaml.NewEncoder(w)
	})
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	return iox.WriteBytes(v, func(w io.Writer) iox.Encoder {
		return yaml.NewEncoder(w)
	})
}
