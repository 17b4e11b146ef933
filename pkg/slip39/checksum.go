package slip39

// Checksum customization strings. Extendable backups use a distinct string
// so that their mnemonics never validate as non-extendable ones.
const (
	customizationNonExtendable = "shamir"
	customizationExtendable    = "shamir_extendable"
)

// ChecksumWords is the number of trailing RS1024 checksum words.
const ChecksumWords = 3

// rs1024Gen holds the generator coefficients of the RS1024 code over GF(1024).
var rs1024Gen = [10]uint32{
	0xe0e040, 0x1c1c080, 0x3838100, 0x7070200, 0xe0e0009,
	0x1c0c2412, 0x38086c24, 0x3090fc48, 0x21b1f890, 0x3f3f120,
}

// customization returns the checksum customization string.
func customization(extendable bool) string {
	if extendable {
		return customizationExtendable
	}
	return customizationNonExtendable
}

// rs1024Polymod computes the RS1024 polynomial modulus over 10-bit values.
func rs1024Polymod(values []int) uint32 {
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 20
		chk = (chk&0xfffff)<<10 ^ uint32(v)
		for i := 0; i < 10; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= rs1024Gen[i]
			}
		}
	}
	return chk
}

// prefixed returns the customization string bytes followed by data.
func prefixed(extendable bool, data []int) []int {
	cs := customization(extendable)
	values := make([]int, 0, len(cs)+len(data)+ChecksumWords)
	for i := 0; i < len(cs); i++ {
		values = append(values, int(cs[i]))
	}
	return append(values, data...)
}

// rs1024CreateChecksum returns the three checksum words for data.
func rs1024CreateChecksum(extendable bool, data []int) [ChecksumWords]int {
	values := append(prefixed(extendable, data), 0, 0, 0)
	polymod := rs1024Polymod(values) ^ 1
	var out [ChecksumWords]int
	for i := 0; i < ChecksumWords; i++ {
		out[i] = int(polymod>>uint(10*(ChecksumWords-1-i))) & (Radix - 1)
	}
	return out
}

// rs1024VerifyChecksum reports whether data, including its trailing
// checksum words, is a valid codeword.
func rs1024VerifyChecksum(extendable bool, data []int) bool {
	return rs1024Polymod(prefixed(extendable, data)) == 1
}
