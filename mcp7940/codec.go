package mcp7940

// bcdToDec converts a BCD register value to int. Only the tens bits selected
// by tensMask take part; the ones digit is always the low nibble.
func bcdToDec(bcd, tensMask uint8) uint8 {
	return ((bcd&tensMask)>>4)*10 + bcd&0x0F
}

// decToBcd converts int to BCD. The result is not masked to the width of any
// particular field.
func decToBcd(dec uint8) uint8 {
	return (dec/10)<<4 | dec%10
}
