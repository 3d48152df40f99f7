package movie

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/curated"
	"github.com/retrotas/tas-engine/logger"
)

// header is the first line of every .ctm file.
const header = "CTM1"

// Metadata is the subset of a movie's metadata that survives a round trip
// through the text format. MovieMode and MovieRecordPolicy are
// deliberately absent: they are runtime properties written for
// compatibility but always ignored on import (see design notes).
type Metadata struct {
	Loop                   bool
	DeterministicScheduler bool
	DeterministicTime      bool
	RerecordCount          uint32
	MovieHash              uint64
	TitleID                uint64
}

// ExportOptions carries the two fields that are written to the file for
// compatibility but never read back: the mode and policy the movie was in
// at the moment of export.
type ExportOptions struct {
	Metadata
	MovieMode         uint32
	MovieRecordPolicy uint32
}

// ExportText writes the '.ctm' text representation of s to w.
func ExportText(w io.Writer, s *Store, opt ExportOptions) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, header); err != nil {
		return curated.Errorf("movie: export: %v", err)
	}

	meta := [][2]string{
		{"loop", boolDigit(opt.Loop)},
		{"deterministic_scheduler", boolDigit(opt.DeterministicScheduler)},
		{"deterministic_time", boolDigit(opt.DeterministicTime)},
		{"movie_mode", strconv.FormatUint(uint64(opt.MovieMode), 10)},
		{"movie_record_policy", strconv.FormatUint(uint64(opt.MovieRecordPolicy), 10)},
		{"input_timing", "frame"},
		{"rerecord_count", strconv.FormatUint(uint64(opt.RerecordCount), 10)},
		{"movie_hash", strconv.FormatUint(opt.MovieHash, 10)},
		{"title_id", strconv.FormatUint(opt.TitleID, 10)},
	}
	for _, kv := range meta {
		if _, err := fmt.Fprintf(bw, "M,%s,%s\n", kv[0], kv[1]); err != nil {
			return curated.Errorf("movie: export: %v", err)
		}
	}

	for p := range s.players {
		for _, f := range s.players[p].frames {
			_, err := fmt.Fprintf(bw, "F,%d,%d,%s,%s,%s,%s,%s,%s,%s,%d,%d\n",
				f.Frame, p,
				formatFloat(f.LX), formatFloat(f.LY),
				formatFloat(f.RX), formatFloat(f.RY),
				formatFloat(f.ZL), formatFloat(f.ZR),
				f.Buttons.String(), f.Signature, f.VpadHold)
			if err != nil {
				return curated.Errorf("movie: export: %v", err)
			}
		}
	}

	return bw.Flush()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ImportText parses a '.ctm' file, or a legacy headerless CSV movie, into a
// fresh Store and Metadata. On any parse failure the partially built store
// is discarded and the error is returned; the caller's existing engine
// state is untouched.
func ImportText(r io.Reader) (*Store, Metadata, error) {
	store := &Store{}
	var meta Metadata

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	sawHeader := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !sawHeader {
			sawHeader = true
			if line == header {
				continue
			}
			// no recognised header: fall through and try to parse this line
			// as a legacy headerless CSV frame line.
		}

		switch {
		case strings.HasPrefix(line, "M,"):
			if err := parseMetaLine(line, lineNo, &meta); err != nil {
				return nil, Metadata{}, err
			}
		case strings.HasPrefix(line, "F,"):
			f, player, err := parseTaggedFrameLine(line, lineNo)
			if err != nil {
				return nil, Metadata{}, err
			}
			if player < 0 || player >= MaxPlayers {
				return nil, Metadata{}, curated.Errorf(ErrPlayerOutOfRange, player)
			}
			store.Upsert(player, f)
		default:
			f, player, err := parseLegacyCSVLine(line, lineNo)
			if err != nil {
				return nil, Metadata{}, err
			}
			if player < 0 || player >= MaxPlayers {
				return nil, Metadata{}, curated.Errorf(ErrPlayerOutOfRange, player)
			}
			store.Upsert(player, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Metadata{}, curated.Errorf("movie: import: %v", err)
	}

	return store, meta, nil
}

func parseMetaLine(line string, lineNo int, meta *Metadata) error {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return curated.Errorf(ErrBadMetaLine, lineNo, line)
	}
	key, value := parts[1], parts[2]

	switch key {
	case "loop":
		meta.Loop = value == "1"
	case "deterministic_scheduler":
		meta.DeterministicScheduler = value == "1"
	case "deterministic_time":
		meta.DeterministicTime = value == "1"
	case "movie_mode", "movie_record_policy":
		// written for compatibility, always ignored on load
	case "input_timing":
		if value == "poll" {
			logger.Log("movie", "input_timing=poll is not supported, coercing to frame")
		} else if value != "frame" && value != "0" && value != "1" {
			return curated.Errorf(ErrBadMetaLine, lineNo, line)
		}
	case "rerecord_count":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return curated.Errorf(ErrBadMetaLine, lineNo, err)
		}
		meta.RerecordCount = uint32(n)
	case "movie_hash":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return curated.Errorf(ErrBadMetaLine, lineNo, err)
		}
		meta.MovieHash = n
	case "title_id":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return curated.Errorf(ErrBadMetaLine, lineNo, err)
		}
		meta.TitleID = n
	default:
		// unrecognised keys are ignored for forward compatibility
	}
	return nil
}

func parseTaggedFrameLine(line string, lineNo int) (FrameInput, int, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 12 {
		return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, line)
	}
	return parseFrameFields(fields[1:], lineNo)
}

// parseLegacyCSVLine parses the headerless CSV form: 8 columns for a
// single-player movie, or 9 columns with the player index at index 1.
func parseLegacyCSVLine(line string, lineNo int) (FrameInput, int, error) {
	fields := strings.Split(line, ",")
	switch len(fields) {
	case 8:
		f, _, err := parseFrameFields(append([]string{fields[0], "0"}, fields[1:]...), lineNo)
		return f, 0, err
	case 9:
		return parseFrameFields(fields, lineNo)
	default:
		return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, line)
	}
}

// parseFrameFields parses {frame, player, lx, ly, rx, ry, zl, zr, buttons,
// signature, vpadHold} (the last two optional, defaulting to zero) into a
// FrameInput and player index.
func parseFrameFields(fields []string, lineNo int) (FrameInput, int, error) {
	if len(fields) < 9 {
		return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, strings.Join(fields, ","))
	}

	frame, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, err)
	}
	player, err := strconv.Atoi(fields[1])
	if err != nil {
		return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, err)
	}

	var f FrameInput
	f.Frame = frame

	floats := make([]float32, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(fields[2+i], 32)
		if err != nil {
			return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, err)
		}
		floats[i] = float32(v)
	}
	f.LX, f.LY, f.RX, f.RY, f.ZL, f.ZR = floats[0], floats[1], floats[2], floats[3], floats[4], floats[5]

	mask, err := parseButtonsField(fields[8], lineNo)
	if err != nil {
		return FrameInput{}, 0, err
	}
	f.Buttons = mask

	if len(fields) > 9 {
		n, err := strconv.ParseUint(fields[9], 10, 32)
		if err != nil {
			return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, err)
		}
		f.Signature = uint32(n)
	}
	if len(fields) > 10 {
		n, err := strconv.ParseUint(fields[10], 10, 32)
		if err != nil {
			return FrameInput{}, 0, curated.Errorf(ErrBadFrameLine, lineNo, err)
		}
		f.VpadHold = uint32(n)
	}

	f.Clamp()
	return f, player, nil
}

func parseButtonsField(field string, lineNo int) (buttons.Mask, error) {
	if n, err := strconv.ParseUint(field, 10, 32); err == nil {
		return buttons.Mask(n), nil
	}
	m, ok := buttons.ParseList(field)
	if !ok {
		return 0, curated.Errorf(ErrUnknownButton, field, lineNo)
	}
	return m, nil
}
