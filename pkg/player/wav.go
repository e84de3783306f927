package player

import "encoding/binary"

// encodeWAV interleaves stereo float32 samples into a 16-bit PCM
// little-endian RIFF/WAVE buffer.
func encodeWAV(left, right []float32, sampleRate int) []byte {
	const (
		channels      = 2
		bitsPerSample = 16
	)
	frames := len(left)
	dataLen := frames * channels * bitsPerSample / 8

	buf := make([]byte, 0, 44+dataLen)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataLen))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, channels)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate*channels*bitsPerSample/8))
	buf = binary.LittleEndian.AppendUint16(buf, channels*bitsPerSample/8)
	buf = binary.LittleEndian.AppendUint16(buf, bitsPerSample)

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataLen))
	for i := 0; i < frames; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(clampSample(left[i])))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(clampSample(right[i])))
	}
	return buf
}

func clampSample(v float32) int16 {
	switch {
	case v > 1:
		return 32767
	case v < -1:
		return -32768
	}
	return int16(v * 32767)
}
