package sciencemode

// reservedBytes 需要填充转义的保留字节：start、stop、填充标记、填充键、0x0A
var reservedBytes = [...]byte{0xF0, 0x0F, 0x81, 0x55, 0x0A}

// isReserved 判断字节是否属于保留集
func isReserved(b byte) bool {
	for _, r := range reservedBytes {
		if b == r {
			return true
		}
	}
	return false
}

// Stuff 填充变换：自逆（Stuff(Stuff(b)) == b）
func Stuff(b byte) byte { return b ^ StuffingKey }

// stuffHeaderByte 头部字节（seq/cmd）的原地填充：命中保留集时直接替换，
// 不插入填充标记。与数据区的“标记+变换值”双字节填充不对称，线路格式如此约定。
func stuffHeaderByte(b byte) byte {
	if isReserved(b) {
		return Stuff(b)
	}
	return b
}

// unstuffHeaderByte 原地填充的逆变换。由于没有填充标记可供判别，
// 只能按“值是否为保留字节的像”还原：0x00↔0x55、0x5A↔0x0F 等取值存在歧义
// （0x5A 同时是 MotomedError 命令码）。该还原仅用于诊断展示，不参与分发。
func unstuffHeaderByte(b byte) byte {
	if isReserved(Stuff(b)) {
		return Stuff(b)
	}
	return b
}
