package generator

import (
	"context"
	"io"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// mockTier は GenerationTier のテスト用実装です。
type mockTier struct {
	name   string
	result *domain.GeneratedImageResult
	err    error
	called int
}

func (m *mockTier) Name() string {
	return m.name
}

func (m *mockTier) TryGenerate(_ context.Context, _ GenerationRequest) (*domain.GeneratedImageResult, error) {
	m.called++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockImageGenerator は gemini-image-kit の ImageGenerator のテスト用実装です。
type mockImageGenerator struct {
	resp    *imagedom.ImageResponse
	err     error
	called  int
	lastReq imagedom.ImageGenerationRequest
}

func (m *mockImageGenerator) GenerateMangaPanel(_ context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	m.called++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockImageGenerator) GenerateMangaPage(_ context.Context, _ imagedom.ImagePageRequest) (*imagedom.ImageResponse, error) {
	return m.resp, m.err
}

// mockWriter は remoteio.OutputWriter のテスト用実装です。
type mockWriter struct {
	paths []string
	err   error
}

func (m *mockWriter) Write(_ context.Context, path string, _ io.Reader, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.paths = append(m.paths, path)
	return nil
}
