// SPDX-License-Identifier: EPL-2.0

// Package utils holds scalar sample conversions shared by the codecs.
//
// Float samples are float32 in [-1.0, 1.0]. Integer PCM is decoded by dividing
// by the full-scale magnitude (128, 32768, 8388608, 2147483648) and encoded by
// multiplying by the positive maximum and rounding, so both directions stay in
// range without overflow.
package utils

import (
	"encoding/binary"
	"math"
)

const (
	fullScale8  = 128.0
	fullScale16 = 32768.0
	fullScale24 = 8388608.0
	fullScale32 = 2147483648.0

	max8  = 127.0
	max16 = 32767.0
	max24 = 8388607.0
	max32 = 2147483647.0
)

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 converts a float sample to 16-bit PCM, rounding to nearest.
// Out-of-range input is clamped first.
func Float32ToInt16(x float32) int16 {
	return int16(math.Round(float64(Clamp(x)) * max16))
}

// Int16ToFloat32 converts a 16-bit PCM sample to float.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / fullScale16
}

// Uint8ToFloat32 converts unsigned 8-bit PCM (silence at 128) to float.
func Uint8ToFloat32(v uint8) float32 {
	return float32(int(v)-128) / fullScale8
}

// Float32ToUint8 converts a float sample to unsigned 8-bit PCM.
func Float32ToUint8(x float32) uint8 {
	return uint8(int(math.Round(float64(Clamp(x))*max8)) + 128)
}

// Int24ToFloat32 reads a little-endian signed 24-bit sample from b[0:3].
func Int24ToFloat32(b []byte) float32 {
	v := int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16)
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF // sign extend
	}
	return float32(float64(v) / fullScale24)
}

// PutFloat32AsInt24 writes x as a little-endian signed 24-bit sample into b[0:3].
func PutFloat32AsInt24(b []byte, x float32) {
	v := int32(math.Round(float64(Clamp(x)) * max24))
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// Int32ToFloat32 converts a 32-bit PCM sample to float.
func Int32ToFloat32(v int32) float32 {
	return float32(float64(v) / fullScale32)
}

// Float32ToInt32 converts a float sample to 32-bit PCM.
func Float32ToInt32(x float32) int32 {
	return int32(math.Round(float64(Clamp(x)) * max32))
}

// ReadFloat32LE reads an IEEE-754 float sample from b[0:4].
func ReadFloat32LE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// PutFloat32LE writes x as an IEEE-754 float sample into b[0:4].
func PutFloat32LE(b []byte, x float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(x))
}
