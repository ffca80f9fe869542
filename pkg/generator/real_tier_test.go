package generator

import (
	"context"
	"fmt"
	"testing"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

func TestRealTier_TryGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("生成した画像を保存しそのパスをロケーターとして返す", func(t *testing.T) {
		imgGen := &mockImageGenerator{resp: &imagedom.ImageResponse{
			Data:     []byte("png-bytes"),
			MimeType: "image/png",
		}}
		writer := &mockWriter{}

		tier := NewRealTier(imgGen, writer, nil, "output/images")
		require.NotNil(t, tier)

		res, err := tier.TryGenerate(ctx, testRequest("a fox reading a book", 2))
		require.NoError(t, err)

		assert.Equal(t, domain.TierReal, res.SourceTier)
		assert.Equal(t, RealTierScore, res.ConsistencyScore)
		require.Len(t, writer.paths, 1)
		assert.Equal(t, writer.paths[0], res.ImageLocator)
	})

	t.Run("参照画像とシードがバックエンドへ引き継がれる", func(t *testing.T) {
		imgGen := &mockImageGenerator{resp: &imagedom.ImageResponse{
			Data:     []byte("png-bytes"),
			MimeType: "image/png",
		}}

		tier := NewRealTier(imgGen, &mockWriter{}, nil, "output/images")
		req := testRequest("a fox reading a book", 1)

		_, err := tier.TryGenerate(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, req.Profile.ImageLocator, imgGen.lastReq.ReferenceURL)
		require.NotNil(t, imgGen.lastReq.Seed)
		assert.Equal(t, domain.SeedFromCharacterID(req.Profile.CharacterID), *imgGen.lastReq.Seed)
	})

	t.Run("バックエンドの失敗はエラーとして返す", func(t *testing.T) {
		imgGen := &mockImageGenerator{err: fmt.Errorf("quota exceeded")}

		tier := NewRealTier(imgGen, &mockWriter{}, nil, "output/images")
		_, err := tier.TryGenerate(ctx, testRequest("anything", 1))

		assert.Error(t, err)
	})

	t.Run("空の画像データはエラーとして扱う", func(t *testing.T) {
		imgGen := &mockImageGenerator{resp: &imagedom.ImageResponse{MimeType: "image/png"}}

		tier := NewRealTier(imgGen, &mockWriter{}, nil, "output/images")
		_, err := tier.TryGenerate(ctx, testRequest("anything", 1))

		assert.Error(t, err)
	})

	t.Run("依存が欠けた構成ではnilになる", func(t *testing.T) {
		assert.Nil(t, NewRealTier(nil, &mockWriter{}, nil, "output/images"))
		assert.Nil(t, NewRealTier(&mockImageGenerator{}, nil, nil, "output/images"))
	})
}
