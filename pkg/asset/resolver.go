package asset

import (
	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成されたページ画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultStoryJSONName は組み立て済みストーリーのデフォルト JSON ファイル名です。
	DefaultStoryJSONName = "story.json"
	// DefaultStorybookName は閲覧用 Markdown のデフォルトファイル名です。
	DefaultStorybookName = "storybook.md"
	// DefaultPageFileName はページ画像の共通のベースファイル名です。
	DefaultPageFileName = "story_page.png"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/story_page.png", 1 -> "path/to/story_page_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}
