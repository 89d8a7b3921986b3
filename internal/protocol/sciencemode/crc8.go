package sciencemode

// CRC8 计算载荷块校验和（CRC-8，多项式0x07，初值0x00，不反转，无异或输出）
// 覆盖范围：填充后的 seq+cmd+data 载荷块
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
