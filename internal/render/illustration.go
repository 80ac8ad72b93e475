package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/yungbote/studycards-backend/internal/clients/gemini"
	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

// IllustrationClient is the outbound image-generation call.
type IllustrationClient interface {
	GenerateImage(ctx context.Context, prompt string) (gemini.ImageGeneration, error)
}

const defaultIllustrationTimeout = 30 * time.Second

// Per-subject prompt fragments for the illustration request.
var subjectPromptHints = map[domain.Subject]string{
	domain.SubjectMath:      "数学图表，坐标系，函数图像，几何图形",
	domain.SubjectPhysics:   "物理实验装置，力学图示，波形图，能量转换",
	domain.SubjectChemistry: "分子结构，化学反应，实验器材，周期表",
	domain.SubjectBiology:   "细胞结构，生物体系统，生态关系，进化过程",
	domain.SubjectHistory:   "历史时间线，地图，历史人物，重要事件",
	domain.SubjectGeneral:   "学习概念图，知识结构，思维导图",
}

// Illustrator fetches an AI-generated illustration for a card. Any
// failure on the remote path (error, timeout, undecodable bytes, no
// image in the response) results in a nil image and the composer falls
// back to the procedural diagram. Illustrate never returns an error.
type Illustrator struct {
	log     *logger.Logger
	client  IllustrationClient
	timeout time.Duration
}

// NewIllustrator builds an illustrator. A nil client disables
// illustrations entirely.
func NewIllustrator(log *logger.Logger, client IllustrationClient, timeout time.Duration) *Illustrator {
	if timeout <= 0 {
		timeout = defaultIllustrationTimeout
	}
	return &Illustrator{
		log:     log.With("component", "Illustrator"),
		client:  client,
		timeout: timeout,
	}
}

func (il *Illustrator) Illustrate(ctx context.Context, content string, cls domain.Classification) image.Image {
	if il.client == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, il.timeout)
	defer cancel()

	gen, err := il.client.GenerateImage(callCtx, illustrationPrompt(content, cls))
	if err != nil {
		il.log.Warn("illustration unavailable, using procedural diagram", "error", err)
		return nil
	}
	if len(gen.Bytes) == 0 {
		il.log.Warn("illustration response carried no image")
		return nil
	}

	img, _, err := image.Decode(bytes.NewReader(gen.Bytes))
	if err != nil {
		il.log.Warn("illustration bytes undecodable", "mime", gen.MimeType, "error", err)
		return nil
	}
	return img
}

func illustrationPrompt(content string, cls domain.Classification) string {
	hint, ok := subjectPromptHints[cls.Subject]
	if !ok {
		hint = subjectPromptHints[domain.SubjectGeneral]
	}
	return fmt.Sprintf(`创建一个教育性的插图，用于学习笔记卡片。

主题：%s
学科：%s
风格要求：简洁明了的教育插图，适合学习材料
元素：%s
视觉描述：%s

要求：
- 清晰易懂的教育插图
- 适合作为学习辅助材料
- 简洁的线条和配色
- 突出重点概念`, firstRunes(content, 100), cls.Subject, hint, cls.VisualizationDescription)
}
