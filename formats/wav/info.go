// SPDX-License-Identifier: EPL-2.0

package wav

import "encoding/binary"

// Details summarizes a WAV buffer for display.
type Details struct {
	Format    Format
	Frames    int
	DataBytes int
	Duration  float64
	// Chunks lists chunk ids in file order, as far as the walk could follow.
	Chunks []string
	// Scanned is set when fmt/data were found by the byte scan rather than
	// the chunk walk.
	Scanned bool
}

// Info decodes b with truncation tolerated and reports what was found.
func Info(b []byte) (Details, error) {
	clip, scanned, err := decode(b, []ParseOption{Tolerate(true)})
	if err != nil {
		return Details{}, err
	}

	return Details{
		Format:    clip.Format,
		Frames:    clip.Frames(),
		DataBytes: len(clip.Data),
		Duration:  clip.Duration(),
		Chunks:    chunkIDs(b),
		Scanned:   scanned,
	}, nil
}

func chunkIDs(b []byte) []string {
	var ids []string
	offset := riffHeaderSize
	for offset+chunkHeaderSize <= len(b) {
		ids = append(ids, string(b[offset:offset+4]))
		size := int(binary.LittleEndian.Uint32(b[offset+4 : offset+8]))
		next := offset + chunkHeaderSize + size + size&1
		if next > len(b) || next <= offset {
			break
		}
		offset = next
	}
	return ids
}
