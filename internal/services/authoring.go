package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/pkg/jsonx"
	"github.com/yungbote/studycards-backend/internal/render"
)

// NoteAuthor turns raw study material into the structured payload of one
// card. It never fails: every degradation path ends in a usable, if
// plainer, note.
type NoteAuthor interface {
	AuthorNote(ctx context.Context, material string, index int) domain.NoteData
}

const authoringPrompt = `请基于以下学习材料，生成一张精华笔记卡片的内容。这是第%d张卡片，请聚焦材料中的一个核心知识点。

学习材料：
%s

请以JSON格式返回卡片内容：
{
    "title": "知识点标题（简短，不超过15字）",
    "concepts": [
        {"term": "概念名称", "definition": "概念的简明定义"}
    ],
    "formulas": [
        {"name": "公式名称", "formula": "公式表达式", "description": "公式说明"}
    ],
    "detailed_content": "这个知识点的核心内容讲解，200字以内",
    "steps": ["步骤1", "步骤2", "步骤3"],
    "notes": ["注意事项1", "注意事项2"],
    "examples": "一个简短的应用示例"
}

要求：
- 标题简洁准确
- 概念最多3个，定义精炼
- 没有公式的知识点可以省略formulas
- 步骤和注意事项贴合材料内容`

const maxTitleRunes = 20

type noteAuthor struct {
	log    *logger.Logger
	client render.TextClient
}

// NewNoteAuthor builds the authoring service. A nil client means every
// note is the offline skeleton.
func NewNoteAuthor(log *logger.Logger, client render.TextClient) NoteAuthor {
	return &noteAuthor{
		log:    log.With("service", "NoteAuthor"),
		client: client,
	}
}

func (a *noteAuthor) AuthorNote(ctx context.Context, material string, index int) domain.NoteData {
	if a.client == nil {
		return a.skeleton(material, index)
	}

	raw, err := a.client.GenerateText(ctx, fmt.Sprintf(authoringPrompt, index+1, material))
	if err != nil {
		a.log.Warn("note authoring failed, using skeleton", "index", index, "error", err)
		return a.skeleton(material, index)
	}

	block, ok := jsonx.ExtractObject(raw)
	if !ok {
		a.log.Warn("note authoring returned no JSON, using plain note", "index", index)
		return a.plainNote(raw, index)
	}
	var note domain.NoteData
	if err := json.Unmarshal([]byte(block), &note); err != nil {
		a.log.Warn("note authoring JSON unparsable, using plain note", "index", index, "error", err)
		return a.plainNote(raw, index)
	}

	note.Title = normalizeTitle(note.Title, index)
	return note
}

// plainNote salvages a non-JSON model response: the first short line
// becomes the title, the body becomes the content.
func (a *noteAuthor) plainNote(raw string, index int) domain.NoteData {
	title := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len([]rune(line)) <= 30 {
			title = line
			break
		}
	}
	return domain.NoteData{
		Title:           normalizeTitle(title, index),
		DetailedContent: truncateRunes(strings.TrimSpace(raw), 300),
	}
}

// skeleton is the fully offline fallback card.
func (a *noteAuthor) skeleton(material string, index int) domain.NoteData {
	return domain.NoteData{
		Title: fmt.Sprintf("学习笔记-%d", index+1),
		Concepts: []domain.Concept{
			{Term: "核心知识点", Definition: "材料中的重点内容"},
		},
		DetailedContent: truncateRunes(strings.TrimSpace(material), 200),
		Steps:           []string{"阅读材料", "理解要点", "练习巩固"},
		Notes:           []string{"注意复习", "及时总结"},
	}
}

func normalizeTitle(title string, index int) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Sprintf("学习笔记-%d", index+1)
	}
	runes := []rune(title)
	if len(runes) > maxTitleRunes {
		return string(runes[:maxTitleRunes]) + "..."
	}
	return title
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
