package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/pkg/jsonx"
)

// TextClient is the outbound AI text call. The remote side enforces no
// schema, so everything it returns is treated as untrusted free text.
type TextClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

const defaultClassifyTimeout = 20 * time.Second

const analysisPrompt = `请分析以下学习内容，确定学科类型并建议最佳的可视化方案：

内容：%s

请以JSON格式返回分析结果：
{
    "subject": "学科类型(math/physics/chemistry/biology/history/language/general)",
    "subject_confidence": "置信度(0-1)",
    "visualization_type": "可视化类型",
    "visualization_description": "图片内容描述，说明应该画什么来帮助理解这个知识点",
    "key_elements": ["关键元素1", "关键元素2", "关键元素3"]
}

学科分类标准：
- math: 数学相关（函数、几何、代数、微积分等）
- physics: 物理相关（力学、电磁学、热学、光学等）
- chemistry: 化学相关（分子、反应、元素、化学键等）
- biology: 生物相关（细胞、基因、生态、生理等）
- history: 历史相关（事件、人物、朝代、社会发展等）
- language: 语言文学相关（语法、文学、写作、语言学等）
- general: 通用或其他学科

可视化建议：根据具体内容提出有助于理解的图片描述`

// Classifier infers the subject domain and visualization intent of a
// piece of study content. The primary path asks the remote model; the
// model is non-deterministic and can fail, time out, or return garbage,
// so any problem on that path drops to a deterministic keyword fallback.
// Classify never returns an error.
type Classifier struct {
	log     *logger.Logger
	client  TextClient
	vocab   KeywordVocab
	timeout time.Duration
}

// NewClassifier builds a classifier. A nil client is allowed and means
// fallback-only operation (offline mode). A non-positive timeout gets the
// default bound.
func NewClassifier(log *logger.Logger, client TextClient, vocab KeywordVocab, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}
	return &Classifier{
		log:     log.With("component", "Classifier"),
		client:  client,
		vocab:   vocab,
		timeout: timeout,
	}
}

func (c *Classifier) Classify(ctx context.Context, content string) domain.Classification {
	if c.client != nil {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		raw, err := c.client.GenerateText(callCtx, fmt.Sprintf(analysisPrompt, content))
		if err != nil {
			c.log.Warn("remote classification failed, using heuristic", "error", err)
		} else if cls, ok := c.parseResponse(raw); ok {
			return cls
		} else {
			c.log.Warn("remote classification unparsable, using heuristic")
		}
	}
	return c.heuristic(content)
}

// parseResponse digs the first top-level JSON object out of the model
// output and validates it. A missing subject counts as a parse failure.
func (c *Classifier) parseResponse(raw string) (domain.Classification, bool) {
	block, ok := jsonx.ExtractObject(raw)
	if !ok {
		return domain.Classification{}, false
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return domain.Classification{}, false
	}

	subjectStr, _ := payload["subject"].(string)
	if strings.TrimSpace(subjectStr) == "" {
		return domain.Classification{}, false
	}

	vizType, _ := payload["visualization_type"].(string)
	if vizType == "" {
		vizType = "文本展示"
	}
	vizDesc, _ := payload["visualization_description"].(string)
	if vizDesc == "" {
		vizDesc = "显示文本内容"
	}

	var elements []string
	if rawElems, ok := payload["key_elements"].([]any); ok {
		for _, e := range rawElems {
			if s, ok := e.(string); ok {
				elements = append(elements, s)
			}
		}
	}

	return domain.Classification{
		Subject:                  domain.ParseSubject(subjectStr),
		Confidence:               parseConfidence(payload["subject_confidence"]),
		VisualizationType:        vizType,
		VisualizationDescription: vizDesc,
		KeyElements:              elements,
	}, true
}

// parseConfidence accepts a JSON number or a numeric string; anything
// else becomes the 0.5 default. Values are clamped to [0, 1].
func parseConfidence(v any) float64 {
	conf := 0.5
	switch t := v.(type) {
	case float64:
		conf = t
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			conf = parsed
		}
	}
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

// heuristic is the deterministic offline fallback: keyword membership
// against the configured vocabularies. Math is checked before physics;
// the first match wins, there is no cross-category scoring.
func (c *Classifier) heuristic(content string) domain.Classification {
	lower := strings.ToLower(content)

	if containsAny(lower, c.vocab.Math) {
		return domain.Classification{
			Subject:                  domain.SubjectMath,
			Confidence:               0.8,
			VisualizationType:        "数学图形",
			VisualizationDescription: "绘制函数图像、几何图形或数学公式示意图",
			KeyElements:              []string{"坐标系", "函数曲线", "数学符号"},
		}
	}
	if containsAny(lower, c.vocab.Physics) {
		return domain.Classification{
			Subject:                  domain.SubjectPhysics,
			Confidence:               0.8,
			VisualizationType:        "物理现象图",
			VisualizationDescription: "绘制物理现象、力的作用或能量转换示意图",
			KeyElements:              []string{"物理图形", "力的方向", "能量流动"},
		}
	}
	return domain.Classification{
		Subject:                  domain.SubjectGeneral,
		Confidence:               0.6,
		VisualizationType:        "概念图",
		VisualizationDescription: "绘制概念关系图或重点内容框架",
		KeyElements:              []string{"关键概念", "连接线", "层次结构"},
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}
