package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	Decode Apple II cassette recordings from sampled
 *		audio.
 *
 *		The tape format is simple frequency coding: about a
 *		second of 770 Hz lead-in tone, one short half-cycle
 *		marking the end of the lead-in, then one full cycle
 *		per bit, 2 kHz for a 0 and 1 kHz for a 1.  The payload
 *		is whatever the ROM's WRITE routine sent: data bytes
 *		followed by a one-byte XOR checksum.
 *
 *		Samples go through one of two low-level extractors
 *		that turn the waveform into timed half-cycle events:
 *		zero-crossing, which is what the Apple II hardware
 *		itself responds to, and peak-to-peak, which copes
 *		better with recordings whose DC level drifts.  The
 *		events drive an outer state machine that finds the
 *		lead-in, syncs on the short zero, and shifts bits into
 *		bytes.
 *
 *		Damaged audio never raises an error.  A chunk with a
 *		checksum mismatch or a ragged ending is still emitted,
 *		flagged, and the consumer decides what it's worth.
 *
 *--------------------------------------------------------------*/

type CassetteAlgorithm int

const (
	AlgZeroCross CassetteAlgorithm = iota
	AlgSharpPeak
	AlgRoundPeak
	AlgShallowPeak
)

func (a CassetteAlgorithm) String() string {
	switch a {
	case AlgZeroCross:
		return "zero-crossing"
	case AlgSharpPeak:
		return "sharp peak"
	case AlgRoundPeak:
		return "round peak"
	case AlgShallowPeak:
		return "shallow peak"
	default:
		return "unknown"
	}
}

/* Half-cycle widths in microseconds, and their tolerances. */
const (
	lead_in_half_us    = 650.0 /* 770 Hz */
	lead_in_half_tol   = 108.0
	short_zero_half_us = 200.0
	short_zero_tol     = 150.0
	zero_bit_half_us   = 250.0 /* 2 kHz */
	one_bit_half_us    = 500.0 /* 1 kHz */
	bit_half_tol       = 94.0
)

/* Full cycles of lead-in tone required before we trust it; half of
   the traditional 1540 half-cycle threshold, about one second. */
const lead_in_cycles_needed = 1540 / 2

/* Lead-in runs shorter than this reset without comment. */
const lead_in_short_run = 5

/* Amplitude change that ends an AtPeak state.  Shallow mode divides
   by four to chase weak recordings. */
const peak_threshold = 0.20

/* Reference sample width for transition threshold scaling; one
   22.05 kHz sample, give or take calibration.  The slack has to stay
   below the per-sample slope of a clean 770 Hz lead-in or rounded
   peaks get detected everywhere. */
const round_peak_ref_us = 43.35
const round_peak_slack = 0.05

/* A decode that produces this much output has lost its mind. */
const max_chunk_output = 512 * 1024

/* Outer decode state. */
type cassette_state int

const (
	scan_for_770_start cassette_state = iota
	scanning_770
	scan_for_short0
	short0_b
	read_data
	end_reached
)

/* Low-level bit extraction state. */
type extract_mode int

const (
	mode_initial0 extract_mode = iota
	mode_initial1
	mode_in_transition
	mode_at_peak
	mode_running
)

// CassetteChunk is one decoded tape file.  Data excludes the
// trailing checksum byte.
type CassetteChunk struct {
	Data         []byte
	ReadChecksum byte /* checksum byte stored on tape */
	CalcChecksum byte /* zero when everything XORs out */
	BadEnd       bool /* stream didn't end on a byte boundary */
	StartSample  int
	EndSample    int
}

// BadChecksum reports whether the stored checksum failed to cancel.
func (c *CassetteChunk) BadChecksum() bool {
	return c.CalcChecksum != 0
}

type CassetteDecoder struct {
	wav       *WavFile
	algorithm CassetteAlgorithm

	us_per_sample    float32
	trans_threshold  float32 /* peak algorithms: slack before AtPeak */
	peak_threshold   float32 /* peak algorithms: amplitude to leave AtPeak */

	/* extractor state */
	mode        extract_mode
	positive    bool /* current trend is rising */
	prev_sample float32
	peak_value  float32
	last_event  int /* sample index of previous half-cycle event */

	/* outer state */
	state        cassette_state
	prev_half_us float32 /* pending half, zero when starting a full cycle */
	lead_in_run  int
	data_start   int
	data_end     int

	/* bit and byte assembly */
	accumulator int /* sentinel 1 bit plus decoded bits */
	checksum    byte
	output      []byte

	chunks []*CassetteChunk
}

/*-------------------------------------------------------------
 *
 * Name:	NewCassetteDecoder
 *
 * Purpose:	Set up a decoder for one recording.
 *
 * Inputs:	wav		- Open sample source.
 *		algorithm	- Extractor choice.
 *
 *--------------------------------------------------------------*/

func NewCassetteDecoder(wav *WavFile, algorithm CassetteAlgorithm) *CassetteDecoder {
	var d = &CassetteDecoder{
		wav:           wav,
		algorithm:     algorithm,
		us_per_sample: 1e6 / float32(wav.SamplesPerSec),
	}

	switch algorithm {
	case AlgSharpPeak:
		d.trans_threshold = 0
		d.peak_threshold = peak_threshold
	case AlgRoundPeak:
		d.trans_threshold = round_peak_slack * (d.us_per_sample / round_peak_ref_us)
		d.peak_threshold = peak_threshold
	case AlgShallowPeak:
		d.trans_threshold = round_peak_slack * (d.us_per_sample / round_peak_ref_us)
		d.peak_threshold = peak_threshold / 4
	}

	d.reset_chunk_state()
	return d
}

// reset_chunk_state prepares for scanning the next chunk.  The
// extractor state carries across chunks; the waveform doesn't care
// about our framing.
func (d *CassetteDecoder) reset_chunk_state() {
	d.state = scan_for_770_start
	d.prev_half_us = 0
	d.lead_in_run = 0
	d.accumulator = 1
	d.checksum = 0xff
	d.output = nil
}

/*-------------------------------------------------------------
 *
 * Name:	Decode
 *
 * Purpose:	Run the whole recording through the decoder.
 *
 * Inputs:	first_only	- Stop after the first chunk; callers
 *				  use this to bound long scans.
 *
 * Returns:	All chunks found, in tape order.  Never an error;
 *		unreadable audio just yields no chunks.
 *
 *--------------------------------------------------------------*/

func (d *CassetteDecoder) Decode(first_only bool) []*CassetteChunk {
	var buf [4096]float32
	var sample_index = 0

	for {
		var count = d.wav.GetSamples(buf[:], 0)
		if count <= 0 {
			break
		}
		for i := 0; i < count; i++ {
			d.process_sample(buf[i], sample_index)
			sample_index++
			if first_only && len(d.chunks) != 0 {
				return d.chunks
			}
		}
	}

	/* Ran off the end mid-chunk?  Keep what we have. */
	if d.state == read_data {
		d.data_end = sample_index
		d.finish_chunk()
	}
	return d.chunks
}

// process_sample routes one sample to the selected extractor.
func (d *CassetteDecoder) process_sample(sample float32, index int) {
	if d.algorithm == AlgZeroCross {
		d.process_sample_zero_cross(sample, index)
	} else {
		d.process_sample_peak(sample, index)
	}
}

/*-------------------------------------------------------------
 *
 * Name:	process_sample_zero_cross
 *
 * Purpose:	Half-cycle extraction on sign changes, the same rule
 *		the Apple II cassette input circuit applies.
 *
 * Description:	The event lands on whichever sample sits nearer the
 *		axis, which halves the jitter at low sample rates.
 *
 *--------------------------------------------------------------*/

func (d *CassetteDecoder) process_sample_zero_cross(sample float32, index int) {
	if d.mode == mode_initial0 {
		d.prev_sample = sample
		d.mode = mode_running
		return
	}

	var crossed = (d.prev_sample < 0 && sample >= 0) || (d.prev_sample >= 0 && sample < 0)
	if crossed {
		var event = index
		if abs32(d.prev_sample) < abs32(sample) {
			event = index - 1
		}
		var half_us = float32(event-d.last_event) * d.us_per_sample
		d.last_event = event
		d.process_half_cycle(half_us, event)
	}
	d.prev_sample = sample
}

/*-------------------------------------------------------------
 *
 * Name:	process_sample_peak
 *
 * Purpose:	Half-cycle extraction on amplitude peaks.  Survives
 *		recordings with a wandering DC offset, which zero
 *		crossing does not.
 *
 * Description:	While a transition is running, a sample that fails to
 *		push the trend further (beyond the transition slack)
 *		marks the peak.  The event is placed on the previous
 *		sample, which is where the peak actually was; that
 *		matters at low sample rates.  We then sit AtPeak until
 *		the signal has moved far enough the other way to be
 *		believed.
 *
 *--------------------------------------------------------------*/

func (d *CassetteDecoder) process_sample_peak(sample float32, index int) {
	switch d.mode {
	case mode_initial0:
		d.prev_sample = sample
		d.mode = mode_initial1

	case mode_initial1:
		d.positive = sample > d.prev_sample
		d.prev_sample = sample
		d.mode = mode_in_transition

	case mode_in_transition:
		var stalled bool
		if d.positive {
			stalled = sample <= d.prev_sample+d.trans_threshold
		} else {
			stalled = sample >= d.prev_sample-d.trans_threshold
		}
		if stalled {
			/* The previous sample was the peak. */
			var event = index - 1
			var half_us = float32(event-d.last_event) * d.us_per_sample
			d.last_event = event
			d.peak_value = d.prev_sample
			d.mode = mode_at_peak
			d.process_half_cycle(half_us, event)
		}
		d.prev_sample = sample

	case mode_at_peak:
		if abs32(sample-d.peak_value) > d.peak_threshold {
			d.positive = sample > d.peak_value
			d.prev_sample = sample
			d.mode = mode_in_transition
		}

	default:
		Assertf(false, "peak extractor in mode %d", d.mode)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

/*-------------------------------------------------------------
 *
 * Name:	process_half_cycle
 *
 * Purpose:	Feed one timed half-cycle into the outer state
 *		machine.
 *
 * Description:	Full-cycle durations are formed by pairing this half
 *		with the previous one.  After each event the pending
 *		half is either stored or cleared, so measurement
 *		alternates rather than sliding.
 *
 *--------------------------------------------------------------*/

func (d *CassetteDecoder) process_half_cycle(half_us float32, index int) {
	var full_us float32
	if d.prev_half_us != 0 {
		full_us = d.prev_half_us + half_us
	}

	var is_770 = full_us != 0 &&
		full_us > 2*(lead_in_half_us-lead_in_half_tol) &&
		full_us < 2*(lead_in_half_us+lead_in_half_tol)

	switch d.state {
	case scan_for_770_start:
		if is_770 {
			d.state = scanning_770
			d.lead_in_run = 1
		}

	case scanning_770:
		if is_770 {
			d.lead_in_run++
			if d.lead_in_run > lead_in_cycles_needed {
				d.state = scan_for_short0
			}
		} else if full_us != 0 {
			if d.lead_in_run >= lead_in_short_run {
				text_color_set(CM_COLOR_DEBUG)
				cm_printf("lead-in broke after %d cycles at sample %d\n", d.lead_in_run, index)
				text_color_set(CM_COLOR_INFO)
			}
			d.state = scan_for_770_start
			d.lead_in_run = 0
		}

	case scan_for_short0:
		if half_us > short_zero_half_us-short_zero_tol &&
			half_us < short_zero_half_us+short_zero_tol {
			/* Clear the pending half so this short half anchors
			   the start cycle measurement. */
			d.state = short0_b
			d.prev_half_us = 0
		} else if is_770 {
			d.lead_in_run++
		} else if full_us != 0 {
			d.state = scan_for_770_start
			d.lead_in_run = 0
		}

	case short0_b:
		/* Second half of the start cycle: short zero plus a
		   normal zero half, roughly 450 us total. */
		var want float32 = short_zero_half_us + zero_bit_half_us
		if full_us > want-2*bit_half_tol && full_us < want+2*bit_half_tol {
			d.state = read_data
			d.data_start = index
			d.accumulator = 1
			d.checksum = 0xff
			d.output = nil
		} else {
			d.state = scan_for_770_start
			d.lead_in_run = 0
		}

	case read_data:
		if full_us != 0 {
			if full_us > 2*(zero_bit_half_us-bit_half_tol) &&
				full_us < 2*(zero_bit_half_us+bit_half_tol) {
				d.emit_bit(0)
			} else if full_us > 2*(one_bit_half_us-bit_half_tol) &&
				full_us < 2*(one_bit_half_us+bit_half_tol) {
				d.emit_bit(1)
			} else {
				d.data_end = index
				d.state = end_reached
				d.finish_chunk()
				d.reset_chunk_state()
				break
			}
			if len(d.output) > max_chunk_output {
				/* Runaway decode; call it a day. */
				d.data_end = index
				d.state = end_reached
				d.finish_chunk()
				d.reset_chunk_state()
			}
		}

	default:
		Assertf(false, "decoder in state %d", d.state)
	}

	/* Alternate the full-cycle pairing. */
	if d.state == short0_b {
		/* prev_half_us was pinned above. */
		if d.prev_half_us == 0 {
			d.prev_half_us = half_us
		}
	} else if d.prev_half_us != 0 {
		d.prev_half_us = 0
	} else {
		d.prev_half_us = half_us
	}
}

// emit_bit shifts a decoded bit into the accumulator, flushing a
// byte whenever the sentinel bit pushes past eight.
func (d *CassetteDecoder) emit_bit(bit int) {
	d.accumulator = d.accumulator<<1 | bit
	if d.accumulator > 0xff {
		var b = byte(d.accumulator)
		d.output = append(d.output, b)
		d.checksum ^= b
		d.accumulator = 1
	}
}

// finish_chunk captures the decode in progress as a chunk.  The last
// output byte is the stored checksum, not data.
func (d *CassetteDecoder) finish_chunk() {
	if len(d.output) == 0 {
		return
	}
	var n = len(d.output)
	var chunk = &CassetteChunk{
		Data:         d.output[:n-1],
		ReadChecksum: d.output[n-1],
		CalcChecksum: d.checksum,
		BadEnd:       d.accumulator != 1,
		StartSample:  d.data_start,
		EndSample:    d.data_end,
	}
	d.chunks = append(d.chunks, chunk)
}
