// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binx implements the little-endian binary encoding used for scene
// snapshots: fixed-width numbers, u32-length-prefixed strings and byte
// slices, and u32-count-prefixed vector arrays. Writer and Reader carry a
// sticky error so call sites can encode a whole record and check once.
package binx

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxSliceLen bounds any single length or count prefix read from the wire,
// so corrupt input cannot trigger enormous allocations.
const maxSliceLen = 1 << 28

// Writer encodes values to an underlying [io.Writer].
// The first write error is retained and all subsequent writes are no-ops;
// check [Writer.Err] after encoding.
type Writer struct {
	w   io.Writer
	err error
	buf [64]byte
}

// NewWriter returns a Writer encoding to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

func (w *Writer) U32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

func (w *Writer) U64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	w.write(w.buf[:8])
}

func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

func (w *Writer) Bool(v bool) {
	w.buf[0] = 0
	if v {
		w.buf[0] = 1
	}
	w.write(w.buf[:1])
}

// String writes a u32 length prefix followed by the raw bytes of s.
func (w *Writer) String(s string) {
	w.U32(uint32(len(s)))
	w.write([]byte(s))
}

// Bytes writes a u32 length prefix followed by b.
func (w *Writer) Bytes(b []byte) {
	w.U32(uint32(len(b)))
	w.write(b)
}

func (w *Writer) Vec2(v mgl32.Vec2) {
	w.F32(v[0])
	w.F32(v[1])
}

func (w *Writer) Vec3(v mgl32.Vec3) {
	w.F32(v[0])
	w.F32(v[1])
	w.F32(v[2])
}

func (w *Writer) Vec4(v mgl32.Vec4) {
	w.F32(v[0])
	w.F32(v[1])
	w.F32(v[2])
	w.F32(v[3])
}

// Quat writes the vector part followed by the scalar part.
func (w *Writer) Quat(q mgl32.Quat) {
	w.Vec3(q.V)
	w.F32(q.W)
}

func (w *Writer) Mat4(m mgl32.Mat4) {
	if w.err != nil {
		return
	}
	for i, v := range m {
		binary.LittleEndian.PutUint32(w.buf[i*4:], math.Float32bits(v))
	}
	w.write(w.buf[:64])
}

func (w *Writer) F32s(vs []float32) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.F32(v)
	}
}

func (w *Writer) I32s(vs []int32) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.I32(v)
	}
}

func (w *Writer) Vec2s(vs []mgl32.Vec2) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.Vec2(v)
	}
}

func (w *Writer) Vec3s(vs []mgl32.Vec3) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.Vec3(v)
	}
}

func (w *Writer) Vec4s(vs []mgl32.Vec4) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.Vec4(v)
	}
}

// Reader decodes values from an underlying [io.Reader], mirroring [Writer]
// field for field. The first read error is retained, subsequent reads
// return zero values, and [Reader.Err] reports it.
type Reader struct {
	r   io.Reader
	err error
	buf [64]byte
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered while reading, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) read(b []byte) bool {
	if r.err != nil {
		return false
	}
	_, r.err = io.ReadFull(r.r, b)
	return r.err == nil
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) U32() uint32 {
	if !r.read(r.buf[:4]) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf[:4])
}

func (r *Reader) U64() uint64 {
	if !r.read(r.buf[:8]) {
		return 0
	}
	return binary.LittleEndian.Uint64(r.buf[:8])
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

func (r *Reader) Bool() bool {
	if !r.read(r.buf[:1]) {
		return false
	}
	return r.buf[0] != 0
}

// length reads and bounds-checks a u32 length or count prefix.
func (r *Reader) length() int {
	n := r.U32()
	if n > maxSliceLen {
		r.fail(fmt.Errorf("binx: length prefix %d exceeds limit", n))
		return 0
	}
	return int(n)
}

func (r *Reader) String() string {
	n := r.length()
	if n == 0 || r.err != nil {
		return ""
	}
	b := make([]byte, n)
	if !r.read(b) {
		return ""
	}
	return string(b)
}

func (r *Reader) Bytes() []byte {
	n := r.length()
	if n == 0 || r.err != nil {
		return nil
	}
	b := make([]byte, n)
	if !r.read(b) {
		return nil
	}
	return b
}

func (r *Reader) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{r.F32(), r.F32()}
}

func (r *Reader) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{r.F32(), r.F32(), r.F32()}
}

func (r *Reader) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{r.F32(), r.F32(), r.F32(), r.F32()}
}

func (r *Reader) Quat() mgl32.Quat {
	v := r.Vec3()
	return mgl32.Quat{V: v, W: r.F32()}
}

func (r *Reader) Mat4() mgl32.Mat4 {
	var m mgl32.Mat4
	if !r.read(r.buf[:64]) {
		return m
	}
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(r.buf[i*4:]))
	}
	return m
}

func (r *Reader) F32s() []float32 {
	n := r.length()
	if n == 0 || r.err != nil {
		return nil
	}
	vs := make([]float32, n)
	for i := range vs {
		vs[i] = r.F32()
	}
	return vs
}

func (r *Reader) I32s() []int32 {
	n := r.length()
	if n == 0 || r.err != nil {
		return nil
	}
	vs := make([]int32, n)
	for i := range vs {
		vs[i] = r.I32()
	}
	return vs
}

func (r *Reader) Vec2s() []mgl32.Vec2 {
	n := r.length()
	if n == 0 || r.err != nil {
		return nil
	}
	vs := make([]mgl32.Vec2, n)
	for i := range vs {
		vs[i] = r.Vec2()
	}
	return vs
}

func (r *Reader) Vec3s() []mgl32.Vec3 {
	n := r.length()
	if n == 0 || r.err != nil {
		return nil
	}
	vs := make([]mgl32.Vec3, n)
	for i := range vs {
		vs[i] = r.Vec3()
	}
	return vs
}

func (r *Reader) Vec4s() []mgl32.Vec4 {
	n := r.length()
	if n == 0 || r.err != nil {
		return nil
	}
	vs := make([]mgl32.Vec4, n)
	for i := range vs {
		vs[i] = r.Vec4()
	}
	return vs
}
