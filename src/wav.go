package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	Minimal RIFF/WAVE reader, just enough to feed PCM
 *		samples to the cassette decoder.
 *
 *		Only the structure we need is parsed: the 12-byte
 *		RIFF header, one "fmt " subchunk, and the "data"
 *		subchunk, skipping anything else along the way.
 *		Recordings of 40-year-old tapes come from all sorts
 *		of tools, so header oddities are warned about rather
 *		than rejected when we can keep going.
 *
 *		The reader borrows the stream; it must stay open and
 *		unmoved by others for as long as samples are wanted.
 *
 *--------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
)

var riff_sig = TagToInt("RIFF")
var wave_sig = TagToInt("WAVE")
var fmt_sig = TagToInt("fmt ")
var data_sig = TagToInt("data")

const wav_format_pcm = 1

var ErrMalformedWav = errors.New("malformed WAV container")

type WavFile struct {
	FormatTag      uint16
	Channels       int
	SamplesPerSec  int
	AvgBytesPerSec int
	BlockAlign     int
	BitsPerSample  int

	DataOffset int64 /* file offset of the sample data */
	DataLength int64 /* sample data length, whole frames only */

	stream    io.ReadSeeker /* borrowed */
	remaining int64         /* data bytes not yet consumed */
}

/*-------------------------------------------------------------
 *
 * Name:	OpenWav
 *
 * Purpose:	Parse the headers and position the stream at the
 *		first sample frame.
 *
 * Inputs:	stream	- Borrowed seekable stream of the whole file.
 *
 * Returns:	Descriptor, or nil and an error wrapping
 *		ErrMalformedWav if the container is broken.
 *
 *--------------------------------------------------------------*/

func OpenWav(stream io.ReadSeeker) (*WavFile, error) {
	var stream_len, err = stream.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = stream.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var header [12]byte
	if _, err = io.ReadFull(stream, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short RIFF header", ErrMalformedWav)
	}
	if GetU32BE(header[:], 0) != riff_sig || GetU32BE(header[:], 8) != wave_sig {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrMalformedWav)
	}
	var riff_len = int64(GetU32LE(header[:], 4))
	if riff_len+8 > stream_len {
		return nil, fmt.Errorf("%w: declared size %d exceeds stream", ErrMalformedWav, riff_len)
	}

	var wf = &WavFile{stream: stream}

	/* The fmt subchunk is expected first. */
	var tag, chunk_len, chunkErr = read_chunk_header(stream)
	if chunkErr != nil {
		return nil, chunkErr
	}
	if tag != fmt_sig || chunk_len < 16 || chunk_len > 128 {
		return nil, fmt.Errorf("%w: bad fmt subchunk (tag 0x%08x len %d)", ErrMalformedWav, tag, chunk_len)
	}
	var fmt_buf = make([]byte, chunk_len)
	if _, err = io.ReadFull(stream, fmt_buf); err != nil {
		return nil, fmt.Errorf("%w: short fmt subchunk", ErrMalformedWav)
	}
	wf.FormatTag = GetU16LE(fmt_buf, 0)
	wf.Channels = int(GetU16LE(fmt_buf, 2))
	wf.SamplesPerSec = int(GetU32LE(fmt_buf, 4))
	wf.AvgBytesPerSec = int(GetU32LE(fmt_buf, 8))
	wf.BlockAlign = int(GetU16LE(fmt_buf, 12))
	if wf.Channels <= 0 || wf.SamplesPerSec <= 0 {
		return nil, fmt.Errorf("%w: zero channels or sample rate", ErrMalformedWav)
	}

	if wf.FormatTag == wav_format_pcm {
		wf.BitsPerSample = int(GetU16LE(fmt_buf, 14))
		if wf.BitsPerSample < 1 || wf.BitsPerSample > 256 {
			return nil, fmt.Errorf("%w: bits/sample %d", ErrMalformedWav, wf.BitsPerSample)
		}
		var expect_rate = wf.SamplesPerSec * wf.Channels * wf.BitsPerSample / 8
		var expect_align = wf.Channels * wf.BitsPerSample / 8
		if wf.AvgBytesPerSec != expect_rate || wf.BlockAlign != expect_align {
			text_color_set(CM_COLOR_WARN)
			cm_printf("WAV rate/align fields disagree with format (rate %d want %d, align %d want %d)\n",
				wf.AvgBytesPerSec, expect_rate, wf.BlockAlign, expect_align)
			text_color_set(CM_COLOR_INFO)
		}
	}

	/* Walk subchunks until "data". */
	for {
		var pos int64
		if pos, err = stream.Seek(0, io.SeekCurrent); err != nil {
			return nil, err
		}
		if pos >= stream_len {
			return nil, fmt.Errorf("%w: no data subchunk", ErrMalformedWav)
		}
		tag, chunk_len, chunkErr = read_chunk_header(stream)
		if chunkErr != nil {
			return nil, chunkErr
		}
		if tag == data_sig {
			wf.DataOffset = pos + 8
			wf.DataLength = int64(chunk_len)
			break
		}
		if _, err = stream.Seek(int64(chunk_len), io.SeekCurrent); err != nil {
			return nil, err
		}
	}

	if wf.DataOffset+wf.DataLength > stream_len {
		wf.DataLength = stream_len - wf.DataOffset
	}
	if wf.FormatTag == wav_format_pcm {
		var frame_size = int64(wf.BlockAlign)
		if frame_size > 0 {
			wf.DataLength -= wf.DataLength % frame_size
		}
	}
	wf.remaining = wf.DataLength

	return wf, nil
}

func read_chunk_header(stream io.Reader) (uint32, uint32, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(stream, hdr[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: short subchunk header", ErrMalformedWav)
	}
	return GetU32BE(hdr[:], 0), GetU32LE(hdr[:], 4), nil
}

/*-------------------------------------------------------------
 *
 * Name:	GetSamples
 *
 * Purpose:	Read PCM frames from the current position, convert
 *		channel 0 to normalized floats, and store them into
 *		the output buffer.
 *
 * Inputs:	out	- Output buffer.
 *		offset	- First element of out to fill.
 *
 * Returns:	Number of samples stored; 0 at end of data; -1 if the
 *		format isn't one we can convert (non-PCM, or a bit
 *		depth other than 8, 16, or 32).
 *
 * Description:	8-bit samples are unsigned, 16- and 32-bit are signed
 *		little-endian.  Results land in [-1, 1).
 *
 *--------------------------------------------------------------*/

func (wf *WavFile) GetSamples(out []float32, offset int) int {
	if wf.FormatTag != wav_format_pcm {
		return -1
	}
	switch wf.BitsPerSample {
	case 8, 16, 32:
	default:
		return -1
	}

	var frame_size = wf.BlockAlign
	var want = len(out) - offset
	var avail = int(wf.remaining / int64(frame_size))
	if avail == 0 || want <= 0 {
		return 0
	}
	if want > avail {
		want = avail
	}

	var raw = make([]byte, want*frame_size)
	var n, err = io.ReadFull(wf.stream, raw)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0
	}
	var frames = n / frame_size
	if frames == 0 {
		wf.remaining = 0
		return 0
	}
	wf.remaining -= int64(frames * frame_size)

	for i := 0; i < frames; i++ {
		var base = i * frame_size
		switch wf.BitsPerSample {
		case 8:
			out[offset+i] = float32(int(raw[base])-128) / 128.0
		case 16:
			var v = int16(GetU16LE(raw, base))
			out[offset+i] = float32(v) / 32768.0
		case 32:
			var v = int32(GetU32LE(raw, base))
			out[offset+i] = float32(float64(v) / 2147483648.0)
		}
	}
	return frames
}
