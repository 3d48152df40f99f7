package movie

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/retrotas/tas-engine/buttons"
	"github.com/retrotas/tas-engine/curated"
)

func buttonsFromU32(v uint32) buttons.Mask {
	return buttons.Mask(v)
}

const (
	blobMagic        uint32 = 0x424D5443 // "CTMB"
	blobVersion      uint32 = 3
	blobMaxVersion   uint32 = 3
	blobFrameRecordV3Size = 8 + 6*4 + 4 + 4 + 4 // frame, 6 floats, buttons, signature, vpadHold
)

// BlobData is the non-timeline state carried alongside a Store inside a
// savestate blob.
type BlobData struct {
	MovieMode              uint32
	MovieRecordPolicy      uint32
	Loop                   bool
	DeterministicScheduler bool
	DeterministicTime      bool
	RerecordCount          uint32
	MovieHash              uint64
	LastRecordedFrame      uint64
	InputTiming            uint32

	// Cursors holds MaxPlayers entries: recordCursor if MovieMode indicates
	// Record, else playbackCursor. Empty for version < 2 blobs.
	Cursors []uint64
}

type binWriter struct {
	w   io.Writer
	err error
}

func (b *binWriter) write(v interface{}) {
	if b.err != nil {
		return
	}
	b.err = binary.Write(b.w, binary.LittleEndian, v)
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// SerializeBlob writes the version-3 binary savestate payload for s and
// data to w.
func SerializeBlob(w io.Writer, s *Store, data BlobData) error {
	bw := bufio.NewWriter(w)
	out := &binWriter{w: bw}

	out.write(blobMagic)
	out.write(blobVersion)
	out.write(data.MovieMode)
	out.write(data.MovieRecordPolicy)
	out.write(boolU32(data.Loop))
	out.write(boolU32(data.DeterministicScheduler))
	out.write(boolU32(data.DeterministicTime))
	out.write(data.RerecordCount)
	out.write(data.MovieHash)
	out.write(data.LastRecordedFrame)
	out.write(uint32(MaxPlayers))

	for p := 0; p < MaxPlayers; p++ {
		t := &s.players[p]
		out.write(t.maxFrame)
		out.write(uint32(len(t.frames)))
		for _, f := range t.frames {
			out.write(f.Frame)
			out.write(math.Float32bits(f.LX))
			out.write(math.Float32bits(f.LY))
			out.write(math.Float32bits(f.RX))
			out.write(math.Float32bits(f.RY))
			out.write(math.Float32bits(f.ZL))
			out.write(math.Float32bits(f.ZR))
			out.write(uint32(f.Buttons))
			out.write(f.Signature)
			out.write(f.VpadHold)
		}
	}

	out.write(data.InputTiming)

	cursors := data.Cursors
	if len(cursors) < MaxPlayers {
		cursors = append(append([]uint64{}, cursors...), make([]uint64, MaxPlayers-len(cursors))...)
	}
	for i := 0; i < MaxPlayers; i++ {
		out.write(cursors[i])
	}

	if out.err != nil {
		return curated.Errorf("movie: serialize blob: %v", out.err)
	}
	return bw.Flush()
}

type binReader struct {
	r   io.Reader
	err error
}

func (b *binReader) read(v interface{}) {
	if b.err != nil {
		return
	}
	b.err = binary.Read(b.r, binary.LittleEndian, v)
}

// DeserializeBlob reads a binary savestate payload written by SerializeBlob.
// Tolerates any version <= 3; fields absent from older versions are left at
// their zero value.
func DeserializeBlob(r io.Reader) (*Store, BlobData, error) {
	in := &binReader{r: r}

	var magic, version uint32
	in.read(&magic)
	in.read(&version)
	if in.err != nil {
		return nil, BlobData{}, curated.Errorf(ErrBlobTooShort, in.err)
	}
	if magic != blobMagic {
		return nil, BlobData{}, curated.Errorf(ErrBlobBadMagic, magic)
	}
	if version > blobMaxVersion {
		return nil, BlobData{}, curated.Errorf(ErrBlobBadVersion, version)
	}

	var data BlobData
	var mode, policy, loop, detSched, detTime uint32
	in.read(&mode)
	in.read(&policy)
	in.read(&loop)
	in.read(&detSched)
	in.read(&detTime)
	in.read(&data.RerecordCount)
	in.read(&data.MovieHash)
	in.read(&data.LastRecordedFrame)

	data.MovieMode = mode
	data.MovieRecordPolicy = policy
	data.Loop = loop != 0
	data.DeterministicScheduler = detSched != 0
	data.DeterministicTime = detTime != 0

	var playerCount uint32
	in.read(&playerCount)
	if in.err != nil {
		return nil, BlobData{}, curated.Errorf(ErrBlobTooShort, in.err)
	}
	if playerCount > MaxPlayers {
		playerCount = MaxPlayers
	}

	store := &Store{}
	for p := uint32(0); p < playerCount; p++ {
		var maxFrame uint64
		var frameCount uint32
		in.read(&maxFrame)
		in.read(&frameCount)
		if in.err != nil {
			return nil, BlobData{}, curated.Errorf(ErrBlobTooShort, in.err)
		}

		frames := make([]FrameInput, 0, frameCount)
		for i := uint32(0); i < frameCount; i++ {
			var f FrameInput
			var lx, ly, rx, ry, zl, zr, btn uint32
			in.read(&f.Frame)
			in.read(&lx)
			in.read(&ly)
			in.read(&rx)
			in.read(&ry)
			in.read(&zl)
			in.read(&zr)
			in.read(&btn)
			in.read(&f.Signature)
			if version >= 3 {
				in.read(&f.VpadHold)
			}
			if in.err != nil {
				return nil, BlobData{}, curated.Errorf(ErrBlobTooShort, in.err)
			}
			f.LX = math.Float32frombits(lx)
			f.LY = math.Float32frombits(ly)
			f.RX = math.Float32frombits(rx)
			f.RY = math.Float32frombits(ry)
			f.ZL = math.Float32frombits(zl)
			f.ZR = math.Float32frombits(zr)
			f.Buttons = buttonsFromU32(btn)
			f.Clamp()
			frames = append(frames, f)
		}
		store.players[p].Replace(frames)
	}

	in.read(&data.InputTiming)
	if version >= 2 {
		cursors := make([]uint64, MaxPlayers)
		for i := range cursors {
			in.read(&cursors[i])
		}
		if in.err != nil {
			return nil, BlobData{}, curated.Errorf(ErrBlobTooShort, in.err)
		}
		data.Cursors = cursors
	}

	if in.err != nil && in.err != io.EOF {
		return nil, BlobData{}, curated.Errorf(ErrBlobTooShort, in.err)
	}

	return store, data, nil
}
