package bn

// Endian selects the byte order of a buffer encoding.
type Endian int

const (
	// BigEndian puts the most significant byte first.  It is the default.
	BigEndian Endian = iota

	// LittleEndian puts the least significant byte first.
	LittleEndian
)

// String returns the name of the byte order.
func (e Endian) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// BufferOpts controls Buffer.  The zero value produces the natural big-endian
// encoding.
type BufferOpts struct {
	// Size, when positive, forces the result to exactly this many bytes by
	// zero padding or by dropping the most significant bytes.
	Size int

	// Endian selects the byte order of the result.
	Endian Endian
}

// Reverse returns a reversed copy of buf.
func Reverse(buf []byte) []byte {
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[len(buf)-1-i] = b
	}
	return out
}

// FromBuffer interprets buf as an unsigned magnitude in the given byte order.
func FromBuffer(buf []byte, endian Endian) *Int {
	if endian == LittleEndian {
		buf = Reverse(buf)
	}
	x := new(Int)
	x.v.SetBytes(buf)
	return x
}

// Buffer returns the magnitude of x as bytes.  Zero encodes as a single zero
// byte so the natural encoding is never empty.
func (x *Int) Buffer(opts BufferOpts) []byte {
	buf := x.v.Bytes()
	if len(buf) == 0 {
		buf = []byte{0x00}
	}

	switch natlen := len(buf); {
	case opts.Size <= 0 || natlen == opts.Size:
	case natlen > opts.Size:
		buf = buf[natlen-opts.Size:]
	default:
		padded := make([]byte, opts.Size)
		copy(padded[opts.Size-natlen:], buf)
		buf = padded
	}

	if opts.Endian == LittleEndian {
		return Reverse(buf)
	}
	return buf
}

// Bytes32 returns x as a 32-byte big-endian buffer.
func (x *Int) Bytes32() []byte {
	return x.Buffer(BufferOpts{Size: 32})
}

// smBigEndian returns the big-endian sign-magnitude encoding of x.  Zero is a
// single zero byte.
func (x *Int) smBigEndian() []byte {
	mag := x.Abs().Buffer(BufferOpts{})
	switch {
	case x.Sign() < 0 && mag[0]&0x80 != 0:
		mag = append([]byte{0x80}, mag...)
	case x.Sign() < 0:
		mag[0] |= 0x80
	case mag[0]&0x80 != 0:
		mag = append([]byte{0x00}, mag...)
	}
	return mag
}

// SM returns the sign-magnitude encoding of x in the given byte order: the top
// bit of the most significant byte is the sign.  Zero encodes as an empty
// slice.
func (x *Int) SM(endian Endian) []byte {
	buf := x.smBigEndian()
	if len(buf) == 1 && buf[0] == 0 {
		return []byte{}
	}
	if endian == LittleEndian {
		return Reverse(buf)
	}
	return buf
}

// FromSM decodes a sign-magnitude buffer produced by SM.  An empty buffer is
// zero.
func FromSM(buf []byte, endian Endian) *Int {
	if len(buf) == 0 {
		return new(Int)
	}
	be := make([]byte, len(buf))
	if endian == LittleEndian {
		be = Reverse(buf)
	} else {
		copy(be, buf)
	}

	neg := be[0]&0x80 != 0
	be[0] &= 0x7f
	x := FromBuffer(be, BigEndian)
	if neg {
		x.v.Neg(&x.v)
	}
	return x
}
