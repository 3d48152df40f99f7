package movie

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/retrotas/tas-engine/digest"
)

// SignatureSalt seeds the per-frame signature hash. Matches the host's own
// salt so that a movie recorded against that host and replayed against this
// engine produces identical signatures.
const SignatureSalt uint32 = 0xC3D2F1A5

// ComputeSignature hashes (runtimeFrame, gpuFrameCounter) into the 32-bit
// signature carried in FrameInput.Signature and used for resync.
//
// This is NOT the same construction as a plain hash/fnv.New32a() over the
// concatenated bytes: the source engine seeds the running hash with
// SignatureSalt instead of FNV's usual offset basis, so the two running
// Write()-style folds below are hand-rolled to allow a non-standard seed.
func ComputeSignature(runtimeFrame uint64, gpuFrameCounter uint64) uint32 {
	h := fnv1a32Seeded(SignatureSalt, runtimeFrame)
	h = fnv1a32Seeded(h, gpuFrameCounter)
	return h
}

func fnv1a32Seeded(seed uint32, v uint64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h := seed
	for _, b := range buf {
		h ^= uint32(b)
		h *= 16777619
	}
	return h
}

// ComputeHash produces the 64-bit FNV-1a movie hash used for cross-savestate
// sync validation: the title id, then for each player its index byte
// followed by each of its FrameInput samples as raw little-endian bytes.
func (s *Store) ComputeHash(titleID uint64) uint64 {
	h := fnv.New64a()

	var buf8 [8]byte
	binary.LittleEndian.PutUint64(buf8[:], titleID)
	h.Write(buf8[:])

	for p := range s.players {
		h.Write([]byte{byte(p)})
		for _, f := range s.players[p].frames {
			writeFrameInputBytes(h, f)
		}
	}

	return h.Sum64()
}

func writeFrameInputBytes(w interface{ Write([]byte) (int, error) }, f FrameInput) {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:8], f.Frame)
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(f.LX))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(f.LY))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(f.RX))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(f.RY))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(f.ZL))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(f.ZR))
	binary.LittleEndian.PutUint32(buf[32:36], uint32(f.Buttons))
	binary.LittleEndian.PutUint32(buf[36:40], f.Signature)
	w.Write(buf[:])
	var buf4 [4]byte
	binary.LittleEndian.PutUint32(buf4[:], f.VpadHold)
	w.Write(buf4[:])
}

// HashDigest adapts a Store's ComputeHash to the digest.Digest interface
// used elsewhere in the module for cryptographic-hash-style comparisons.
type HashDigest struct {
	Store   *Store
	TitleID uint64

	cached string
}

var _ digest.Digest = (*HashDigest)(nil)

// Hash returns the current movie hash, formatted as 16 lowercase hex
// digits.
func (d *HashDigest) Hash() string {
	d.cached = fmt.Sprintf("%016x", d.Store.ComputeHash(d.TitleID))
	return d.cached
}

// ResetDigest clears the cached hash. The next call to Hash recomputes it
// from the store's current contents.
func (d *HashDigest) ResetDigest() {
	d.cached = ""
}
