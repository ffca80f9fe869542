package domain

import (
	"crypto/sha256"
	"encoding/binary"
)

// SeedFromCharacterID はキャラクターIDから決定論的なシード値を生成します。
// 同じキャラクターなら常に同じシードが使われ、ページ間の画風ブレを抑えます。
func SeedFromCharacterID(id string) int64 {
	hash := sha256.Sum256([]byte(id))
	// ハッシュの最初の4バイトを int32 に変換
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	// Geminiのシード値は正の数が望ましいため、最上位ビットを落とします
	return int64(seed & 0x7FFFFFFF)
}
