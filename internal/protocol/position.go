package protocol

// EncodePosition packs a map tile coordinate and facing direction
// into the 3-byte representation used throughout the map protocol:
// 10 bits for x, 10 bits for y, 4 bits for direction.
func EncodePosition(x, y int, dir uint8) [3]byte {
	return [3]byte{
		byte(x >> 2),
		byte(((x & 3) << 6) | (y >> 4)),
		byte(((y & 15) << 4) | int(dir)),
	}
}

// DecodePosition unpacks a 3-byte position back into x, y, direction.
func DecodePosition(b [3]byte) (x, y int, dir uint8) {
	x = int(b[0])<<2 | int(b[1])>>6
	y = (int(b[1])&0x3F)<<4 | int(b[2])>>4
	dir = b[2] & 0x0F
	return x, y, dir
}
