// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists a database to a single binary file: a
// fixed-layout Header (so a mismatched version can be rejected without
// decoding the rest of the file) followed by a single gzip-compressed gob
// stream carrying the registry, relation store, and justification DAG.
// Modeled directly on the teacher's pkg/binfile.
package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/rmzoo-go/rmzoo/pkg/zoo/justify"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/registry"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/store"
)

// MagicIdentifier is the 8-byte identifier every snapshot file begins
// with, so a corrupted or unrelated file is rejected before any version
// check is even attempted.
var MagicIdentifier = [8]byte{'r', 'm', 'z', 'o', 'o', '0', '0', '2'}

// MajorVersion and MinorVersion follow the teacher's binfile convention:
// an exact match on major is required, and a minor version no greater
// than the current one remains readable.
const (
	MajorVersion uint16 = 1
	MinorVersion uint16 = 0
)

// Header is the fixed-layout, hand-rolled (not gob) prefix of every
// snapshot file: the identifier, version numbers, and an optional JSON
// metadata blob (e.g. source corpus path, build timestamp).
type Header struct {
	Identifier         [8]byte
	MajorVersion       uint16
	MinorVersion       uint16
	MetaData           []byte
}

// IsCompatible reports whether h can be decoded by this build: the magic
// identifier must match, the major version must match exactly, and the
// minor version must be no greater than MinorVersion.
func (h *Header) IsCompatible() bool {
	return h.Identifier == MagicIdentifier &&
		h.MajorVersion == MajorVersion &&
		h.MinorVersion <= MinorVersion
}

// VersionError reports that a snapshot's version does not match the
// version this build of the engine understands.
type VersionError struct {
	ExpectedMajor, ExpectedMinor uint16
	FoundMajor, FoundMinor       uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("snapshot was written as v%d.%d, but this build expects v%d.%d",
		e.FoundMajor, e.FoundMinor, e.ExpectedMajor, e.ExpectedMinor)
}

// Payload is the gob-encoded body of a snapshot, following spec's
// persisted-snapshot shape: principals, the relation tables, and the
// justification DAG.
type Payload struct {
	Registry registry.Snapshot
	Store    store.Snapshot
	Justify  justify.Snapshot
}

// marshalHeader renders h in the teacher's hand-rolled big-endian layout.
func marshalHeader(h Header) []byte {
	var majorBytes, minorBytes [2]byte
	var metaLength [4]byte

	binary.BigEndian.PutUint16(majorBytes[:], h.MajorVersion)
	binary.BigEndian.PutUint16(minorBytes[:], h.MinorVersion)
	binary.BigEndian.PutUint32(metaLength[:], uint32(len(h.MetaData)))

	out := make([]byte, 0, 8+2+2+4+len(h.MetaData))
	out = append(out, h.Identifier[:]...)
	out = append(out, majorBytes[:]...)
	out = append(out, minorBytes[:]...)
	out = append(out, metaLength[:]...)
	out = append(out, h.MetaData...)

	return out
}

func unmarshalHeader(r io.Reader) (Header, error) {
	var h Header

	if _, err := io.ReadFull(r, h.Identifier[:]); err != nil {
		return h, fmt.Errorf("reading snapshot identifier: %w", err)
	}

	if h.Identifier != MagicIdentifier {
		return h, errors.New("not a rmzoo snapshot file")
	}

	var majorBytes, minorBytes, metaLengthBytes [2]byte
	var metaLength4 [4]byte

	if _, err := io.ReadFull(r, majorBytes[:]); err != nil {
		return h, fmt.Errorf("reading snapshot major version: %w", err)
	}

	if _, err := io.ReadFull(r, minorBytes[:]); err != nil {
		return h, fmt.Errorf("reading snapshot minor version: %w", err)
	}

	if _, err := io.ReadFull(r, metaLength4[:]); err != nil {
		return h, fmt.Errorf("reading snapshot metadata length: %w", err)
	}

	_ = metaLengthBytes
	h.MajorVersion = binary.BigEndian.Uint16(majorBytes[:])
	h.MinorVersion = binary.BigEndian.Uint16(minorBytes[:])

	metaLength := binary.BigEndian.Uint32(metaLength4[:])
	if metaLength > 0 {
		h.MetaData = make([]byte, metaLength)
		if _, err := io.ReadFull(r, h.MetaData); err != nil {
			return h, fmt.Errorf("reading snapshot metadata: %w", err)
		}
	}

	return h, nil
}

// Encode serializes db into a snapshot: a Header, followed by a single
// gzip-compressed gob stream carrying the Payload. metadata is an
// optional caller-supplied JSON blob stored verbatim in the header (pass
// nil for none).
func Encode(db *kernel.Database, metadata []byte) ([]byte, error) {
	var raw bytes.Buffer

	payload := Payload{
		Registry: db.Registry.Export(),
		Store:    db.Store.Export(),
		Justify:  db.Justify.Export(),
	}

	if err := gob.NewEncoder(&raw).Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding snapshot payload: %w", err)
	}

	var out bytes.Buffer
	out.Write(marshalHeader(Header{
		Identifier:   MagicIdentifier,
		MajorVersion: MajorVersion,
		MinorVersion: MinorVersion,
		MetaData:     metadata,
	}))

	compressor := gzip.NewWriter(&out)

	if _, err := compressor.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compressing snapshot payload: %w", err)
	}

	if err := compressor.Close(); err != nil {
		return nil, fmt.Errorf("closing snapshot compressor: %w", err)
	}

	return out.Bytes(), nil
}

// Decode rebuilds a database from data previously produced by Encode. It
// returns a *VersionError, wrapped for errors.As, if the snapshot's
// version is not one this build is compatible with.
func Decode(data []byte) (*kernel.Database, error) {
	r := bytes.NewReader(data)

	h, err := unmarshalHeader(r)
	if err != nil {
		return nil, err
	}

	if !h.IsCompatible() {
		return nil, &VersionError{
			ExpectedMajor: MajorVersion, ExpectedMinor: MinorVersion,
			FoundMajor: h.MajorVersion, FoundMinor: h.MinorVersion,
		}
	}

	decompressor, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot decompressor: %w", err)
	}
	defer decompressor.Close()

	var payload Payload
	if err := gob.NewDecoder(decompressor).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding snapshot payload: %w", err)
	}

	return &kernel.Database{
		Registry: registry.Import(payload.Registry),
		Store:    store.Import(payload.Store),
		Justify:  justify.Import(payload.Justify),
	}, nil
}
