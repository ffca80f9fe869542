package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"
)

// Pages は StoryPage のスライスにページ順の操作を提供します。
type Pages []StoryPage

// SortByPageNumber はページ番号の昇順に並べ替えます。
// 並列生成では完了順とページ順が一致しないため、組み立ての最後に必ず呼びます。
func (ps Pages) SortByPageNumber() {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].PageNumber < ps[j].PageNumber
	})
}

// NewStoryID は生成時刻とシードテキストの FNV-1a ハッシュからストーリーIDを生成します。
// 同一入力の再組み立てでも衝突しないよう、時刻成分を含めています。
func NewStoryID(seedText string) string {
	h := fnv.New32a()
	h.Write([]byte(seedText))
	return fmt.Sprintf("story-%d-%08x", time.Now().UnixMilli(), h.Sum32())
}
