package assembler

import (
	"strings"
)

// SegmentByParagraph は本文を段落境界で最大 pageCount 個のセグメントに分割します。
// 空段落は除外されるため、実ページ数は要求値以下になることがあります。
// 段落数が要求値を超える場合は均等に束ね、末尾セグメントが余りを吸収します。
func SegmentByParagraph(text string, pageCount int) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 || pageCount <= 0 {
		return nil
	}

	if len(paragraphs) <= pageCount {
		return paragraphs
	}

	perSegment := len(paragraphs) / pageCount
	segments := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		start := i * perSegment
		end := start + perSegment
		if i == pageCount-1 {
			end = len(paragraphs)
		}
		segments = append(segments, strings.Join(paragraphs[start:end], "\n\n"))
	}
	return segments
}

func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, block := range strings.Split(normalized, "\n\n") {
		if trimmed := strings.TrimSpace(block); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
