// Package polyline implements the encoded polyline algorithm format used by
// Google, OSRM and Mapbox to ship route geometry as a compact ASCII string.
package polyline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

// DefaultPrecision is the number of decimal digits kept by the standard format.
const DefaultPrecision = 5

const (
	asciiOffset  = 63
	chunkMask    = 0x1f
	continueBit  = 0x20
	chunkBits    = 5
	maxChunks    = 7 // 35 bits, well above what a WGS84 delta needs at precision 6.
	maxASCIIByte = 126
)

// ErrMalformed is returned when the input is not a well-formed encoded polyline.
var ErrMalformed = errors.New("malformed polyline")

// Decode converts an encoded polyline with 5-digit precision into coordinates.
func Decode(encoded string) ([]models.Coordinates, error) {
	return DecodeWithPrecision(encoded, DefaultPrecision)
}

// Encode converts coordinates into an encoded polyline with 5-digit precision.
func Encode(points []models.Coordinates) string {
	return EncodeWithPrecision(points, DefaultPrecision)
}

// DecodeWithPrecision decodes a polyline whose values were scaled by 10^precision.
// A truncated continuation sequence, a latitude without its longitude or a byte
// outside the encoding alphabet fail the whole decode; partial paths are never returned.
func DecodeWithPrecision(encoded string, precision int) ([]models.Coordinates, error) {
	factor := math.Pow10(precision)
	points := make([]models.Coordinates, 0, len(encoded)/4)
	var lat, lng int64

	for idx := 0; idx < len(encoded); {
		dLat, next, err := decodeValue(encoded, idx)
		if err != nil {
			return nil, err
		}
		if next >= len(encoded) {
			return nil, fmt.Errorf("%w: latitude at offset %d has no longitude", ErrMalformed, idx)
		}

		dLng, after, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}

		lat += dLat
		lng += dLng
		points = append(points, models.Coordinates{
			Latitude:  float64(lat) / factor,
			Longitude: float64(lng) / factor,
		})
		idx = after
	}

	return points, nil
}

// decodeValue reads one zig-zag encoded varint starting at idx and returns the
// signed delta together with the offset of the following byte.
func decodeValue(encoded string, idx int) (int64, int, error) {
	var result int64
	shift := 0

	for chunks := 0; ; chunks++ {
		if idx >= len(encoded) {
			return 0, idx, fmt.Errorf("%w: truncated value at end of input", ErrMalformed)
		}
		if chunks >= maxChunks {
			return 0, idx, fmt.Errorf("%w: value at offset %d is too long", ErrMalformed, idx)
		}

		raw := encoded[idx]
		if raw < asciiOffset || raw > maxASCIIByte {
			return 0, idx, fmt.Errorf("%w: invalid byte %q at offset %d", ErrMalformed, raw, idx)
		}

		chunk := int64(raw) - asciiOffset
		idx++
		result |= (chunk & chunkMask) << shift
		shift += chunkBits

		if chunk&continueBit == 0 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), idx, nil
	}

	return result >> 1, idx, nil
}

// EncodeWithPrecision encodes coordinates scaling each value by 10^precision.
func EncodeWithPrecision(points []models.Coordinates, precision int) string {
	factor := math.Pow10(precision)
	var builder strings.Builder
	var prevLat, prevLng int64

	for _, point := range points {
		lat := int64(math.Round(point.Latitude * factor))
		lng := int64(math.Round(point.Longitude * factor))

		encodeValue(&builder, lat-prevLat)
		encodeValue(&builder, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return builder.String()
}

func encodeValue(builder *strings.Builder, delta int64) {
	value := delta << 1
	if delta < 0 {
		value = ^value
	}

	for value >= continueBit {
		builder.WriteByte(byte((continueBit | (value & chunkMask)) + asciiOffset))
		value >>= chunkBits
	}
	builder.WriteByte(byte(value + asciiOffset))
}
